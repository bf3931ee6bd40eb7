package models

import "gorm.io/gorm"

// SubscriptionPlan is a sellable access plan for the course catalog
type SubscriptionPlan struct {
	gorm.Model
	Name         string `json:"name" gorm:"not null"`
	Slug         string `json:"slug" gorm:"uniqueIndex;not null"`
	Description  string `json:"description"`
	Price        uint   `json:"price" gorm:"default:0"` // in paise
	DurationDays int    `json:"duration_days" gorm:"default:30"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	IsDeleted    bool   `gorm:"default:false"`
}
