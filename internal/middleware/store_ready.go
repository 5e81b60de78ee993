package middleware

import (
	"strings"

	"igram/internal/common"

	"github.com/gofiber/fiber/v2"
)

type ReadinessChecker interface {
	Ready() bool
}

// RequireStore answers 503 while the document store has not been reached.
// The health endpoints and the API docs stay available.
func RequireStore(r ReadinessChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch p := c.Path(); {
		case p == "/", p == "/api", p == "/api/", p == "/health", strings.HasPrefix(p, "/docs"):
			return c.Next()
		}
		if !r.Ready() {
			return common.NewError(common.ErrStoreUnavailable, "Database not connected. Please wait a moment and try again.")
		}
		return c.Next()
	}
}
