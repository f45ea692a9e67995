package courseValidator

import (
	"strconv"
	"strings"

	"learnhub/middleware"
	services "learnhub/services/course"

	"github.com/gofiber/fiber/v2"
)

// parseID validates a positive integer route parameter.
func parseID(c *fiber.Ctx, param string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(param))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// CourseID validates the :id route parameter.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// AccessQuery validates the :id parameter plus the unit_type / lesson_id
// query parameters of an access check.
func AccessQuery() fiber.Handler {
	validKinds := map[string]bool{
		services.UnitLesson:     true,
		services.UnitAssignment: true,
		services.UnitResource:   true,
		services.UnitDiscussion: true,
		services.UnitAttendance: true,
	}

	return func(c *fiber.Ctx) error {
		courseID, ok := parseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		kind := strings.ToUpper(strings.TrimSpace(c.Query("unit_type")))
		if !validKinds[kind] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid unit_type!", nil)
		}

		unit := services.ContentUnit{Kind: kind}
		if kind == services.UnitLesson {
			lessonID, err := strconv.Atoi(c.Query("lesson_id"))
			if err != nil || lessonID <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "lesson_id is required for LESSON access checks!", nil)
			}
			unit.LessonID = uint(lessonID)
		}

		c.Locals("courseID", courseID)
		c.Locals("contentUnit", unit)
		return c.Next()
	}
}

// BatchProgress validates the course_ids query parameter: a comma-separated
// list of course IDs.
func BatchProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Query("course_ids"))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "course_ids is required!", nil)
		}

		parts := strings.Split(raw, ",")
		courseIDs := make([]uint, 0, len(parts))
		for _, part := range parts {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || id <= 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID in course_ids!", nil)
			}
			courseIDs = append(courseIDs, uint(id))
		}

		c.Locals("courseIDs", courseIDs)
		return c.Next()
	}
}
