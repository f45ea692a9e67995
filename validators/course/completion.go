package courseValidator

import (
	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// LessonID validates the :lesson_id route parameter.
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID, ok := parseID(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// AssignmentID validates the :assignment_id route parameter.
func AssignmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentID, ok := parseID(c, "assignment_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}
		c.Locals("assignmentID", assignmentID)
		return c.Next()
	}
}

// GradeAssignment validates the :assignment_id parameter and the grading
// payload.
func GradeAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		assignmentID, ok := parseID(c, "assignment_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Assignment ID!", nil)
		}

		reqData := new(struct {
			LearnerID uint   `json:"learner_id" validate:"required"`
			Grade     *uint  `json:"grade" validate:"required"`
			Feedback  string `json:"feedback" validate:"max=2000"`
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

		c.Locals("assignmentID", assignmentID)
		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
