package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	services "learnhub/services/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the learner in a free course, or hands back a
// payment reference for a paid one.
func EnrollInCourse(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	svc := services.NewEnrollmentService(database.Database.Db)
	result, err := svc.Enroll(user.ID, courseID)
	if err != nil {
		return serviceError(c, err, "Failed to enroll in course!")
	}

	if result.PaymentRequired {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment required to complete enrollment.", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", result)
}

// ConfirmPayment is the payment collaborator's webhook. It is the only path
// that turns a paid course's enrollment premium.
func ConfirmPayment(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPaymentConfirm").(*struct {
		UserID    uint   `json:"user_id" validate:"required"`
		CourseID  uint   `json:"course_id" validate:"required"`
		Amount    uint   `json:"amount" validate:"required"`
		Reference string `json:"reference" validate:"required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewEnrollmentService(database.Database.Db)
	enrollment, err := svc.ConfirmPremiumEnrollment(reqData.UserID, reqData.CourseID, reqData.Amount, reqData.Reference)
	if err != nil {
		return serviceError(c, err, "Failed to confirm enrollment!")
	}

	// Fire-and-forget: the confirmation email never blocks or fails the webhook.
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err == nil {
		go utils.SendEnrollmentConfirmed(user.Email, user.Name, enrollment.CourseID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment confirmed!", enrollment)
}

// WithdrawFromCourse removes the learner's enrollment. Completion history is
// preserved.
func WithdrawFromCourse(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	svc := services.NewEnrollmentService(database.Database.Db)
	if err := svc.Withdraw(user.ID, courseID); err != nil {
		return serviceError(c, err, "Failed to withdraw from course!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Withdrawn from course successfully!", nil)
}

// GetEnrollments lists the learner's enrollments with pagination.
func GetEnrollments(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := 1
	limit := 10
	if reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	}); ok {
		page = *reqData.Page
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	svc := services.NewEnrollmentService(database.Database.Db)
	enrollments, total, err := svc.ListEnrollments(user.ID, offset, limit)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	response := map[string]interface{}{
		"enrollments": enrollments,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}
