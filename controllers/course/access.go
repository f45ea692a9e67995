package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// CheckAccess reports whether the learner may open a content unit of the
// course: ALLOWED, LOCKED, or NOT_ENROLLED.
func CheckAccess(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	unit := c.Locals("contentUnit").(services.ContentUnit)

	svc := services.NewAccessService(database.Database.Db)
	decision, err := svc.EvaluateAccess(user.ID, courseID, unit)
	if err != nil {
		return serviceError(c, err, "Failed to evaluate access!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Access evaluated successfully!", fiber.Map{
		"decision": decision,
	})
}
