package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records a lesson completion and returns the updated
// course progress. Safe to call twice for the same lesson.
func MarkLessonComplete(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(uint)

	svc := services.NewLedgerService(database.Database.Db)
	summary, err := svc.RecordLessonCompletion(user.ID, lessonID)
	if err != nil {
		return serviceError(c, err, "Failed to mark lesson as completed!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", summary)
}

// SubmitAssignment marks the learner's submission as handed in so a teacher
// can grade it.
func SubmitAssignment(c *fiber.Ctx) error {
	user, ok := requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(uint)

	svc := services.NewLedgerService(database.Database.Db)
	submission, err := svc.SubmitAssignment(user.ID, assignmentID)
	if err != nil {
		return serviceError(c, err, "Failed to submit assignment!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment submitted successfully!", submission)
}

// GradeAssignment stores a grade for a learner's submission and returns the
// learner's updated course progress. Staff only.
func GradeAssignment(c *fiber.Ctx) error {
	if _, ok := requireUser(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(uint)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		LearnerID uint   `json:"learner_id" validate:"required"`
		Grade     *uint  `json:"grade" validate:"required"`
		Feedback  string `json:"feedback" validate:"max=2000"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	svc := services.NewLedgerService(database.Database.Db)
	summary, err := svc.RecordAssignmentGrade(reqData.LearnerID, assignmentID, *reqData.Grade, reqData.Feedback)
	if err != nil {
		return serviceError(c, err, "Failed to grade assignment!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment graded successfully!", summary)
}
