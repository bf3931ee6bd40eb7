package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/reconciler"

	"github.com/gofiber/fiber/v2"
)

// reconcileBeforePublish runs a single-course reconciliation pass
func reconcileBeforePublish(courseID uint) (*reconciler.Result, error) {
	return reconciler.ReconcileCourse(database.Database.Db, courseID)
}

// AdminReconcileCourse runs the content linking reconciler for one course and
// returns the structured report
func AdminReconcileCourse(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	courseID := c.Locals("courseID").(int)

	result, err := reconciler.ReconcileCourse(database.Database.Db, uint(courseID))
	if err != nil {
		if errors.Is(err, reconciler.ErrCourseNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Reconciliation failed!", err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course reconciled!", result)
}

// AdminReconcileAllCourses runs the reconciler over every published course
func AdminReconcileAllCourses(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	result, err := reconciler.ReconcileAllCourses(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Bulk reconciliation failed!", err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reconciliation pass complete!", result)
}

// AdminUnlinkedContentReport lists lecture stubs whose content reference is
// missing or unresolvable, per course, for manual follow-up
func AdminUnlinkedContentReport(c *fiber.Ctx) error {
	if requireAdmin(c) == nil {
		return nil
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type brokenStub struct {
		CourseID   uint   `json:"course_id"`
		CourseSlug string `json:"course_slug"`
		Category   string `json:"category"`
		Lecture    string `json:"lecture"`
		ContentRef string `json:"content_ref,omitempty"`
		Problem    string `json:"problem"` // missing_ref, unresolvable_ref
	}

	var report []brokenStub
	for i := range courses {
		for _, cat := range courses[i].Categories {
			for _, lecture := range cat.Lectures {
				if lecture.ContentRef == "" {
					report = append(report, brokenStub{
						CourseID:   courses[i].ID,
						CourseSlug: courses[i].Slug,
						Category:   cat.Name,
						Lecture:    lecture.Title,
						Problem:    "missing_ref",
					})
					continue
				}
				if _, err := courseModels.ResolveContentRef(database.Database.Db, lecture.ContentRef); err != nil {
					report = append(report, brokenStub{
						CourseID:   courses[i].ID,
						CourseSlug: courses[i].Slug,
						Category:   cat.Name,
						Lecture:    lecture.Title,
						ContentRef: lecture.ContentRef,
						Problem:    "unresolvable_ref",
					})
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unlinked content report generated!", fiber.Map{
		"broken": report,
		"count":  len(report),
	})
}
