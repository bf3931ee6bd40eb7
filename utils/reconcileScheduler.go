package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
	"lms/reconciler"

	"github.com/robfig/cron/v3"
)

// InitializeScheduler sets up the daily maintenance jobs: subscription expiry
// processing and the catalog-wide content reconciliation pass
func InitializeScheduler(adminEmail string) {
	log.Println("[SCHEDULER] Initializing maintenance scheduler...")

	c := cron.New()

	// Run daily at 2 AM: content linking pass over all published courses.
	// This is also what converges any update lost to a concurrent reconcile.
	c.AddFunc("0 2 * * *", func() {
		log.Println("[SCHEDULER] Running nightly content reconciliation...")
		RunNightlyReconcile(adminEmail)
	})

	// Run daily at 9 AM: subscription reminders and expiry
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SCHEDULER] Maintenance scheduler started")
}

// RunNightlyReconcile reconciles every published course and mails a summary
func RunNightlyReconcile(adminEmail string) {
	bulk, err := reconciler.ReconcileAllCourses(database.Database.Db)
	if err != nil {
		log.Printf("[SCHEDULER] Reconciliation pass failed: %v", err)
		return
	}

	skipped := 0
	for _, res := range bulk.Results {
		skipped += len(res.Skipped)
		if res.ChangesMade > 0 {
			log.Printf("[SCHEDULER] Course %d (%s): %d changes, %d lectures",
				res.CourseID, res.CourseTitle, res.ChangesMade, res.FinalLectureCount)
		}
	}
	log.Printf("[SCHEDULER] Reconciliation complete: %d processed, %d successful, %d failed, %d skipped records",
		bulk.Processed, bulk.Successful, bulk.Failed, skipped)

	if adminEmail != "" && (bulk.Failed > 0 || skipped > 0) {
		SendReconcileReportEmail(adminEmail, bulk.Processed, bulk.Successful, bulk.Failed, skipped)
	}
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	// Find subscriptions expiring in ~2 days that haven't received a reminder
	var expiringSubscriptions []models.Subscription
	if err := db.
		Where("status = ? AND reminder_sent = false AND expires_at IS NOT NULL", models.SubscriptionActive).
		Where("expires_at BETWEEN ? AND ?", now, twoDaysFromNow).
		Preload("Plan").
		Find(&expiringSubscriptions).Error; err != nil {
		log.Printf("[SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SCHEDULER] Found %d subscriptions expiring soon", len(expiringSubscriptions))

	for _, sub := range expiringSubscriptions {
		// Get user details
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Printf("[SCHEDULER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		// Send reminder email
		SendSubscriptionExpiryReminder(user.Email, user.Name, sub.Plan.Name, sub.ExpiresAt)

		// Mark reminder as sent
		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, user.Email)
	}
}

// ExpireSubscriptions marks expired subscriptions as EXPIRED
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	// Update expired subscriptions
	result := db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionActive, now).
		Updates(map[string]interface{}{"status": models.SubscriptionExpired})

	if result.Error != nil {
		log.Printf("[SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[SCHEDULER] Expired %d subscriptions", result.RowsAffected)

		// Send expiry notification emails
		var expiredSubscriptions []models.Subscription
		db.Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionExpired, now).
			Where("updated_at > ?", now.Add(-time.Hour)). // Only recently expired
			Preload("Plan").
			Find(&expiredSubscriptions)

		for _, sub := range expiredSubscriptions {
			var user models.User
			if err := db.Where("id = ?", sub.UserID).First(&user).Error; err == nil {
				SendSubscriptionExpiredEmail(user.Email, user.Name, sub.Plan.Name)
			}
		}
	}
}
