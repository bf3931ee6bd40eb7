package controllers

import (
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPublishedCourses lists the published course catalog
func GetPublishedCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset, limit := utils.Paginate(*reqData.Page, *reqData.Limit)

	var courses []courseModels.Course
	var total int64

	database.Database.Db.Model(&courseModels.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false).Count(&total)
	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	// Catalog view: structure sizes only, no lecture stubs
	type catalogCourse struct {
		ID            uint   `json:"id"`
		Title         string `json:"title"`
		Slug          string `json:"slug"`
		Description   string `json:"description"`
		Author        string `json:"author"`
		ThumbnailURL  string `json:"thumbnail_url"`
		TotalLectures int    `json:"total_lectures"`
		Categories    int    `json:"categories"`
	}
	list := make([]catalogCourse, 0, len(courses))
	for i := range courses {
		list = append(list, catalogCourse{
			ID:            courses[i].ID,
			Title:         courses[i].Title,
			Slug:          courses[i].Slug,
			Description:   courses[i].Description,
			Author:        courses[i].Author,
			ThumbnailURL:  courses[i].ThumbnailURL,
			TotalLectures: courses[i].TotalLectures,
			Categories:    len(courses[i].Categories),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", fiber.Map{
		"courses": list,
		"total":   total,
	})
}

// GetCourseBySlug returns a published course's category/lecture structure
func GetCourseBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var course courseModels.Course
	if err := database.Database.Db.
		Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", course)
}

// GetLectureContent resolves a lecture stub's content reference and returns
// the HTML body. Preview lectures are open to any authenticated user; the
// rest require an active subscription.
func GetLectureContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Params("slug")
	categorySlug := c.Params("category")
	order, err := strconv.Atoi(c.Params("order"))
	if err != nil || order < 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture position!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.
		Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var stub *courseModels.CourseLecture
	var categoryName string
	for ci := range course.Categories {
		if course.Categories[ci].Slug != categorySlug {
			continue
		}
		for li := range course.Categories[ci].Lectures {
			if course.Categories[ci].Lectures[li].OrderIndex == order {
				stub = &course.Categories[ci].Lectures[li]
				categoryName = course.Categories[ci].Name
				break
			}
		}
		break
	}
	if stub == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	if !stub.IsPreview {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}
		if user.Role != "ADMIN" && !middleware.HasActiveSubscription(userID) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Active subscription required!", nil)
		}
	}

	if stub.ContentRef == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture content is not available yet!", nil)
	}

	content, err := courseModels.ResolveContentRef(database.Database.Db, stub.ContentRef)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture content is not available yet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched!", fiber.Map{
		"course":   course.Title,
		"category": categoryName,
		"lecture": fiber.Map{
			"title":            stub.Title,
			"subtitle":         stub.Subtitle,
			"duration_minutes": stub.DurationMinutes,
			"is_preview":       stub.IsPreview,
		},
		"html": content.HTMLBody,
		"url":  utils.GetFileURL(content.Filename),
	})
}
