package middleware

import (
	"time"

	"lms/database"
	"lms/models"
)

// HasActiveSubscription reports whether the user currently holds an
// unexpired, active subscription. The lecture handler applies this gate
// itself so preview lectures can bypass it.
func HasActiveSubscription(userID uint) bool {
	var subscription models.Subscription
	err := database.Database.Db.
		Where("user_id = ? AND status = ? AND is_deleted = ?", userID, models.SubscriptionActive, false).
		Where("expires_at IS NOT NULL AND expires_at > ?", time.Now()).
		First(&subscription).Error
	return err == nil
}
