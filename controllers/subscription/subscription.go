package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetPlans lists active subscription plans
func GetPlans(c *fiber.Ctx) error {
	var plans []models.SubscriptionPlan
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("price ASC").
		Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// Subscribe verifies a gateway payment and activates a subscription
func Subscribe(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSubscribe").(*struct {
		PlanID    uint   `json:"plan_id"`
		PaymentID string `json:"payment_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var plan models.SubscriptionPlan
	if err := database.Database.Db.
		Where("id = ? AND is_active = ? AND is_deleted = ?", reqData.PlanID, true, false).
		First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	// Reject double subscription
	if middleware.HasActiveSubscription(user.ID) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have an active subscription!", nil)
	}

	receipt := "SUB-" + uuid.NewString()
	transaction := models.PaymentTransaction{
		UserID:    user.ID,
		PlanID:    plan.ID,
		Amount:    plan.Price,
		PaymentID: reqData.PaymentID,
		Receipt:   receipt,
	}
	if err := database.Database.Db.Create(&transaction).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record transaction!", nil)
	}

	// Confirm capture with the gateway before granting access
	if _, err := utils.VerifyPayment(reqData.PaymentID, plan.Price); err != nil {
		database.Database.Db.Model(&transaction).Update("status", "FAILED")
		return middleware.JsonResponse(c, fiber.StatusPaymentRequired, false, "Payment verification failed!", err.Error())
	}
	database.Database.Db.Model(&transaction).Update("status", "SUCCESS")

	now := time.Now()
	expiresAt := now.AddDate(0, 0, plan.DurationDays)
	subscription := models.Subscription{
		UserID:     user.ID,
		PlanID:     plan.ID,
		Status:     models.SubscriptionActive,
		StartedAt:  now,
		ExpiresAt:  &expiresAt,
		PaymentRef: receipt,
	}
	if err := database.Database.Db.Create(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subscription!", nil)
	}

	utils.SendSubscriptionReceiptEmail(user.Email, user.Name, plan.Name, receipt, &expiresAt)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription activated!", fiber.Map{
		"subscription": subscription,
		"receipt":      receipt,
	})
}

// MySubscription returns the caller's current subscription state
func MySubscription(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var subscription models.Subscription
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("created_at DESC").
		Preload("Plan").
		First(&subscription).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No subscription found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched!", subscription)
}

// AdminCreatePlan creates a subscription plan
func AdminCreatePlan(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedPlan").(*struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		Price        uint   `json:"price"`
		DurationDays int    `json:"duration_days"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	plan := models.SubscriptionPlan{
		Name:         reqData.Name,
		Slug:         utils.Slugify(reqData.Name),
		Description:  reqData.Description,
		Price:        reqData.Price,
		DurationDays: reqData.DurationDays,
	}
	if err := database.Database.Db.Create(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created successfully!", plan)
}
