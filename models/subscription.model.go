package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// Subscription tracks a user's paid access to the course catalog
type Subscription struct {
	gorm.Model
	UserID       uint             `json:"user_id" gorm:"index;not null"`
	PlanID       uint             `json:"plan_id" gorm:"index;not null"`
	Plan         SubscriptionPlan `json:"plan" gorm:"foreignKey:PlanID"`
	Status       string           `json:"status" gorm:"default:'ACTIVE'"`
	StartedAt    time.Time        `json:"started_at"`
	ExpiresAt    *time.Time       `json:"expires_at"`
	ReminderSent bool             `json:"reminder_sent" gorm:"default:false"`
	PaymentRef   string           `json:"payment_ref"`
	IsDeleted    bool             `gorm:"default:false"`
}
