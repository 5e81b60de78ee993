package controllers

import (
	"igram/dto"

	"github.com/gofiber/fiber/v2"
)

type StoreStatus interface {
	Ready() bool
	Status() string
}

type HealthHandler struct {
	Store StoreStatus
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("igram backend running")
}

// @Summary      API banner
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api [get]
func (h *HealthHandler) API(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true, Message: "API running"})
}

// @Summary      Liveness and store status
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{OK: true, DB: h.Store.Status()})
}
