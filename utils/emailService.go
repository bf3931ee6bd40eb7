package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through Sendgrid
func SendEmail(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)

	for _, recipient := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", recipient), "", htmlBody)
		response, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email to %s: %v", recipient, err)
			return err
		}
		if response.StatusCode >= 400 {
			log.Printf("Sendgrid rejected email to %s: %d %s", recipient, response.StatusCode, response.Body)
			return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
		}
	}
	return nil
}

// HTML wrapper shared by all outgoing emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B1F3A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0B1F3A; line-height: 1.6; }
			.content h2 { color: #0B1F3A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2BB673; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #2BB673; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>SKILLFORGE ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Skillforge Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Skillforge Academy"
	body := getEmailTemplate("Welcome Aboard!", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account has been created. Pick a subscription plan to unlock the full course catalog and start learning.</p>
		<a class="btn" href="https://skillforge.io/plans">Browse Plans</a>
	`, name))

	go SendEmail([]string{email}, subject, body)
}

// SendOTPEmail delivers the email verification code
func SendOTPEmail(email, otp string) {
	subject := "Your Skillforge Academy Verification Code"
	body := getEmailTemplate("Email Verification", fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<div class="info-box" style="text-align:center;"><h1 style="margin:0;">%s</h1></div>
		<p>The code is valid for 10 minutes. Do not share it with anyone.</p>
	`, otp))

	go SendEmail([]string{email}, subject, body)
}

// SendSubscriptionReceiptEmail confirms a successful subscription purchase
func SendSubscriptionReceiptEmail(email, name, planName, receipt string, expiresAt *time.Time) {
	expiryStr := "your plan's end date"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	subject := "Subscription Confirmed - Skillforge Academy"
	body := getEmailTemplate("Subscription Confirmed", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your subscription to <strong>%s</strong> is now active until <strong>%s</strong>.</p>
		<div class="info-box">Receipt: <strong>%s</strong></div>
		<p>All published courses are now available to you.</p>
		<a class="btn" href="https://skillforge.io/courses">Start Learning</a>
	`, name, planName, expiryStr, receipt))

	go SendEmail([]string{email}, subject, body)
}

// SendSubscriptionExpiryReminder reminds a user before their subscription expires
func SendSubscriptionExpiryReminder(email, name, planName string, expiresAt *time.Time) {
	expiryStr := "soon"
	if expiresAt != nil {
		expiryStr = expiresAt.Format("January 2, 2006")
	}

	subject := "Your Skillforge Academy Subscription is Expiring Soon"
	body := getEmailTemplate("Subscription Expiring Soon", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your subscription to <strong>%s</strong> expires on <strong>%s</strong>.</p>
		<p>Renew now to keep access to all your courses.</p>
		<a class="btn" href="https://skillforge.io/plans">Renew Now</a>
	`, name, planName, expiryStr))

	go SendEmail([]string{email}, subject, body)
}

// SendSubscriptionExpiredEmail notifies a user their subscription has lapsed
func SendSubscriptionExpiredEmail(email, name, planName string) {
	subject := "Your Skillforge Academy Subscription Has Expired"
	body := getEmailTemplate("Subscription Expired", fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your subscription to <strong>%s</strong> has expired. Course content is locked until you renew.</p>
		<a class="btn" href="https://skillforge.io/plans">Renew Subscription</a>
	`, name, planName))

	go SendEmail([]string{email}, subject, body)
}

// SendReconcileReportEmail mails the nightly content reconciliation summary to the operations inbox
func SendReconcileReportEmail(email string, processed, successful, failed, skipped int) {
	subject := "Nightly Content Reconciliation Report"
	body := getEmailTemplate("Content Reconciliation Report", fmt.Sprintf(`
		<p>The nightly content linking pass has completed.</p>
		<div class="info-box">
			Courses processed: <strong>%d</strong><br>
			Successful: <strong>%d</strong><br>
			Failed: <strong>%d</strong><br>
			Content records skipped: <strong>%d</strong>
		</div>
		<p>Skipped records need a category fix in the admin panel before they can be linked.</p>
	`, processed, successful, failed, skipped))

	go SendEmail([]string{email}, subject, body)
}
