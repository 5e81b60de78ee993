package controllers

import (
	"strings"

	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
)

type LikeHandler struct {
	Likes *services.LikeService
}

// @Summary      Toggle like
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID (hex ObjectID)"
// @Success      200     {object}  dto.LikeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/likes/{postId} [post]
func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	return h.toggle(c, actor)
}

// @Summary      Toggle like as a consumer
// @Tags         likes
// @Accept       json
// @Produce      json
// @Param        postId  path      string               true  "Post ID (hex ObjectID)"
// @Param        body    body      dto.ConsumerNameReq  true  "consumerName"
// @Success      200     {object}  dto.LikeResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/likes/public/{postId} [post]
func (h *LikeHandler) TogglePublic(c *fiber.Ctx) error {
	var body dto.ConsumerNameReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return h.toggle(c, accessctx.NamedActor{Name: strings.TrimSpace(body.ConsumerName)})
}

func (h *LikeHandler) toggle(c *fiber.Ctx, actor accessctx.Actor) error {
	resp, err := h.Likes.Toggle(c.UserContext(), actor, c.Params("postId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// @Summary      Like status
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path      string  true  "Post ID (hex ObjectID)"
// @Success      200     {object}  dto.LikeResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/likes/{postId}/status [get]
func (h *LikeHandler) Status(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	resp, err := h.Likes.Status(c.UserContext(), actor, c.Params("postId"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
