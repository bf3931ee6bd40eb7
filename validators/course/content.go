package courseValidator

import (
	"path/filepath"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UploadContent validates the multipart content upload form
func UploadContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		file, err := c.FormFile("file")
		if err != nil {
			errors["file"] = "An HTML file is required!"
		} else if ext := strings.ToLower(filepath.Ext(file.Filename)); ext != ".html" && ext != ".htm" {
			errors["file"] = "Only .html files are accepted!"
		}

		courseID, err := strconv.Atoi(c.FormValue("course_id"))
		if err != nil || courseID < 1 {
			errors["course_id"] = "A valid course_id is required!"
		}

		categoryID, err := strconv.Atoi(c.FormValue("category_id"))
		if err != nil || categoryID < 1 {
			errors["category_id"] = "A valid category_id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("uploadCourseID", courseID)
		c.Locals("uploadCategoryID", categoryID)
		return c.Next()
	}
}

// ContentIDParam validates the :content_id path parameter
func ContentIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := parseIDParam(c, "content_id", "contentID"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
		}
		return c.Next()
	}
}
