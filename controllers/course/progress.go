package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// GetCourseProgress returns the learner's completion snapshot for one
// course, computing it on the spot if missing.
func GetCourseProgress(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	svc := services.NewProgressService(database.Database.Db)
	summary, err := svc.GetCourseProgress(user.ID, courseID)
	if err != nil {
		return serviceError(c, err, "Failed to fetch course progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course progress fetched successfully!", summary)
}

// GetAllProgress returns snapshots for many courses in one round trip,
// keyed by course ID. This is what dashboard and course-list views call.
func GetAllProgress(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseIDs := c.Locals("courseIDs").([]uint)

	svc := services.NewProgressService(database.Database.Db)
	progress, err := svc.GetAllCoursesProgress(user.ID, courseIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
