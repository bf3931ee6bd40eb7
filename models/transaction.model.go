package models

import "gorm.io/gorm"

// PaymentTransaction records a payment attempt against a subscription plan
type PaymentTransaction struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	PlanID    uint   `json:"plan_id" gorm:"index;not null"`
	Amount    uint   `json:"amount"`
	PaymentID string `json:"payment_id" gorm:"index"` // gateway payment id
	Receipt   string `json:"receipt" gorm:"uniqueIndex"`
	Status    string `json:"status" gorm:"default:'PENDING'"` // PENDING, SUCCESS, FAILED
	IsDeleted bool   `gorm:"default:false"`
}
