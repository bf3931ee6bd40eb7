package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCategory creates a standalone category
func AdminCreateCategory(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	slug := utils.Slugify(reqData.Name)
	var existing courseModels.Category
	if err := database.Database.Db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A category with this name already exists!", nil)
	}

	category := courseModels.Category{
		Name:        reqData.Name,
		Slug:        slug,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// AdminListCategories lists all standalone categories
func AdminListCategories(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	var categories []courseModels.Category
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("order_index ASC").
		Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}

// AdminDeleteCategory soft-deletes a standalone category. Content records
// referencing it will surface as category_mismatch skips on the next
// reconciliation pass.
func AdminDeleteCategory(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	categoryID := c.Locals("categoryID").(int)

	var category courseModels.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	database.Database.Db.Model(&category).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
