package controllers

import (
	"errors"

	"igram/internal/common"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the request body. A request without a body (or without a
// content type) leaves out untouched so required-field checks report it.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) {
			return nil
		}
		return common.Validation("Invalid request body")
	}
	return nil
}
