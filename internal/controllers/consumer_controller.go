package controllers

import (
	"igram/dto"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ConsumerHandler struct {
	Consumers *services.ConsumerService
}

// @Summary      Register or sign in a consumer
// @Description  Claims a display name. An existing exact name signs back in (200); a new name is created (201).
// @Tags         consumers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterConsumerRequest  true  "Display name"
// @Success      200   {object}  dto.RegisterConsumerResponse
// @Success      201   {object}  dto.RegisterConsumerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/consumers/register [post]
func (h *ConsumerHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterConsumerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	resp, created, err := h.Consumers.Register(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	if created {
		c.Status(fiber.StatusCreated)
	}
	return c.JSON(resp)
}
