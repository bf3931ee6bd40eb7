package controllers

import (
	"io"
	"log"

	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/reconciler"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminUploadContent stores an uploaded HTML file, creates its Content record
// assigned to the target course, and immediately links it into the course's
// embedded structure. The link result is merged into the response so the
// admin UI can report "linked to lecture X" or "created new lecture Y".
func AdminUploadContent(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	courseID := uint(c.Locals("uploadCourseID").(int))
	categoryID := uint(c.Locals("uploadCategoryID").(int))

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var category courseModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	// Read the HTML body for storage alongside the file on disk
	src, err := file.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}
	htmlBody, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read uploaded file!", nil)
	}

	storedName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save uploaded file!", nil)
	}

	content := courseModels.Content{
		Filename:    storedName,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		HTMLBody:    string(htmlBody),
		CategoryID:  category.ID,
		CourseID:    &course.ID,
		IsAssigned:  true,
	}
	if err := database.Database.Db.Create(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content record!", nil)
	}

	linkResult, err := reconciler.LinkSingleUpload(database.Database.Db, course.ID, content.ID)
	if err != nil {
		// The upload itself succeeded; report the linking failure so the
		// admin can trigger a manual reconcile
		log.Printf("[CONTENT] Linking content %d into course %d failed: %v", content.ID, course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content uploaded, but linking failed. Run reconcile.", fiber.Map{
			"content": content,
			"url":     utils.GetFileURL(content.Filename),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content uploaded and linked!", fiber.Map{
		"content": content,
		"url":     utils.GetFileURL(content.Filename),
		"link":    linkResult,
	})
}

// AdminListContent lists content records, optionally only unassigned ones
func AdminListContent(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	query := database.Database.Db.Where("is_deleted = ?", false)
	if c.Query("unassigned") == "true" {
		query = query.Where("is_assigned = ?", false)
	}

	var contents []courseModels.Content
	if err := query.Order("created_at DESC").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched!", contents)
}

// AdminDeleteContent soft-deletes a content record
func AdminDeleteContent(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	contentID := c.Locals("contentID").(int)

	var content courseModels.Content
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	database.Database.Db.Model(&content).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted! Stubs referencing it will appear in the unlinked report.", nil)
}
