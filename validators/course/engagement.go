package courseValidator

import (
	"time"

	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// StudyStatsRange validates the from/to query parameters of the study-stat
// listing. Defaults to the last 30 days.
func StudyStatsRange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -30)

		if raw := c.Query("from"); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid from date, expected YYYY-MM-DD!", nil)
			}
			from = parsed
		}
		if raw := c.Query("to"); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid to date, expected YYYY-MM-DD!", nil)
			}
			to = parsed
		}

		if to.Before(from) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "to must not be before from!", nil)
		}

		c.Locals("statsFrom", from)
		c.Locals("statsTo", to)
		return c.Next()
	}
}
