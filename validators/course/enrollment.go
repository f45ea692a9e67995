package courseValidator

import (
	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// EnrollmentList validates optional pagination for the enrollment listing.
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		// Pagination is optional; when absent the controller uses defaults.
		if reqData.Page == nil && reqData.Limit == nil {
			return c.Next()
		}

		errors := make(map[string]string)
		if reqData.Page == nil || *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// PaymentConfirm validates the payment collaborator's confirmation payload.
func PaymentConfirm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID    uint   `json:"user_id" validate:"required"`
			CourseID  uint   `json:"course_id" validate:"required"`
			Amount    uint   `json:"amount" validate:"required"`
			Reference string `json:"reference" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "Failed validation: " + fieldErr.Tag()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentConfirm", reqData)
		return c.Next()
	}
}
