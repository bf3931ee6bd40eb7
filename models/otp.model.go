package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores one-time codes sent for email verification
type OTP struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Code      string    `gorm:"not null"`
	Purpose   string    `gorm:"default:'EMAIL_VERIFICATION'"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"default:false"`
}
