package middleware

import (
	"igram/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// RequestContext copies the id set by the requestid middleware into the
// user context so service logs can be matched to access log lines.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
			c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
