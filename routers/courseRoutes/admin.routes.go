package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin content management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminPublishCourse)

	// Standalone category management
	categoryGroup := app.Group("/admin/category")
	categoryGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCategory(), controllers.AdminCreateCategory)
	categoryGroup.Get("/list", middleware.JWTMiddleware, controllers.AdminListCategories)
	categoryGroup.Delete("/:category_id", middleware.JWTMiddleware, validators.CategoryIDParam(), controllers.AdminDeleteCategory)

	// Content upload and management
	contentGroup := app.Group("/admin/content")
	contentGroup.Post("/upload", middleware.JWTMiddleware, validators.UploadContent(), controllers.AdminUploadContent)
	contentGroup.Get("/list", middleware.JWTMiddleware, controllers.AdminListContent)
	contentGroup.Delete("/:content_id", middleware.JWTMiddleware, validators.ContentIDParam(), controllers.AdminDeleteContent)

	// Reconciliation triggers and reports
	reconcileGroup := app.Group("/admin/reconcile")
	reconcileGroup.Post("/course/:id", middleware.JWTMiddleware, validators.CourseIDParam(), controllers.AdminReconcileCourse)
	reconcileGroup.Post("/all", middleware.JWTMiddleware, controllers.AdminReconcileAllCourses)
	reconcileGroup.Get("/unlinked", middleware.JWTMiddleware, controllers.AdminUnlinkedContentReport)
}
