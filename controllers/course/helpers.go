package controllers

import (
	"errors"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// requireUser resolves the authenticated user set by the JWT middleware.
func requireUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}

// serviceError maps the service error taxonomy onto HTTP status codes.
func serviceError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusUnprocessableEntity
	}
	return middleware.JsonResponse(c, status, false, message, nil)
}
