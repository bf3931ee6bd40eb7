package subscriptionRoutes

import (
	controllers "lms/controllers/subscription"
	"lms/middleware"
	validators "lms/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

// SetupSubscriptionRoutes sets up subscription and plan routes
func SetupSubscriptionRoutes(app *fiber.App) {
	subGroup := app.Group("/subscription")

	subGroup.Get("/plans", controllers.GetPlans)
	subGroup.Post("/subscribe", middleware.JWTMiddleware, validators.Subscribe(), controllers.Subscribe)
	subGroup.Get("/my", middleware.JWTMiddleware, controllers.MySubscription)

	adminGroup := app.Group("/admin/plan")
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreatePlan(), controllers.AdminCreatePlan)
}
