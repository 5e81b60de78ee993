package controllers

import (
	"strings"

	"igram/config"
	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HeaderNextCursor carries the cursor of the next comment page.
const HeaderNextCursor = "X-Next-Cursor"

type CommentHandler struct {
	Comments *services.CommentService
}

// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateCommentReq  true  "postId and text"
// @Success      201   {object}  dto.CommentView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return h.create(c, actor, body)
}

// @Summary      Comment as a consumer
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCommentReq  true  "postId, text and consumerName"
// @Success      201   {object}  dto.CommentView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/comments/public [post]
func (h *CommentHandler) CreatePublic(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return h.create(c, accessctx.NamedActor{Name: strings.TrimSpace(body.ConsumerName)}, body)
}

func (h *CommentHandler) create(c *fiber.Ctx, actor accessctx.Actor, body dto.CreateCommentReq) error {
	com, err := h.Comments.Create(c.UserContext(), actor, body.PostID, body.Text)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// @Summary      List comments of a post
// @Description  Newest first. Without limit every comment is returned; with limit the next page cursor is sent in X-Next-Cursor.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        postId  path   string  true   "Post ID (hex ObjectID)"
// @Param        limit   query  int     false  "Max items per page" minimum(1) maximum(100)
// @Param        cursor  query  string  false  "Opaque next-page cursor"
// @Success      200     {array}   dto.CommentView
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/comments/post/{postId} [get]
func (h *CommentHandler) ListForPost(c *fiber.Ctx) error {
	var limit int64
	if c.Query("limit") != "" {
		limit = int64(c.QueryInt("limit", config.DefaultLimitComments))
		if limit <= 0 {
			limit = config.DefaultLimitComments
		}
		if limit > config.MaxLimitComments {
			limit = config.MaxLimitComments
		}
	}

	page, err := h.Comments.ListForPost(c.UserContext(), c.Params("postId"), c.Query("cursor"), limit)
	if err != nil {
		return err
	}
	if page.NextCursor != nil {
		c.Set(HeaderNextCursor, *page.NextCursor)
	}
	return c.JSON(page.Comments)
}

// @Summary      Delete own comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Comment ID (hex ObjectID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	return h.delete(c, actor)
}

// @Summary      Delete own comment as a consumer
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Comment ID (hex ObjectID)"
// @Param        body  body      dto.ConsumerNameReq  true  "consumerName"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/comments/public/{id} [delete]
func (h *CommentHandler) DeletePublic(c *fiber.Ctx) error {
	var body dto.ConsumerNameReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	return h.delete(c, accessctx.NamedActor{Name: strings.TrimSpace(body.ConsumerName)})
}

func (h *CommentHandler) delete(c *fiber.Ctx, actor accessctx.Actor) error {
	if err := h.Comments.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Comment deleted successfully"})
}
