package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the user-facing course catalog routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", validators.CourseList(), controllers.GetPublishedCourses)
	courseGroup.Get("/:slug", controllers.GetCourseBySlug)

	// Lecture content requires authentication; the handler enforces the
	// subscription gate except for preview lectures
	courseGroup.Get("/:slug/lecture/:category/:order", middleware.JWTMiddleware, controllers.GetLectureContent)
}
