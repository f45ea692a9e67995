package controllers

import (
	"time"

	"learnhub/database"
	"learnhub/middleware"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// GetStudyStats lists the learner's daily study time and community score
// over a date range.
func GetStudyStats(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	from := c.Locals("statsFrom").(time.Time)
	to := c.Locals("statsTo").(time.Time)

	svc := services.NewEngagementService(database.Database.Db)
	stats, err := svc.ListStudyStats(user.ID, from, to)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch study stats!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Study stats fetched successfully!", stats)
}
