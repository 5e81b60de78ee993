package controllers

import (
	"io"
	"mime/multipart"
	"strings"

	"igram/dto"
	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	Posts *services.PostService
}

// @Summary      Public feed
// @Description  All posts newest first, with creator, comments and comment authors
// @Tags         posts
// @Produce      json
// @Success      200  {array}   dto.PostView
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/posts/public [get]
func (h *PostHandler) ListPublic(c *fiber.Ctx) error {
	return h.list(c)
}

// @Summary      Feed
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.PostView
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	return h.list(c)
}

func (h *PostHandler) list(c *fiber.Ctx) error {
	posts, err := h.Posts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex ObjectID)"
// @Success      200  {object}  dto.PostView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	p, err := h.Posts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// @Summary      Publish a post
// @Description  Creator only. Either a caption or an image/video file is required.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image     formData  file    false  "Image or video"
// @Param        title     formData  string  false  "Title"
// @Param        caption   formData  string  false  "Caption"
// @Param        location  formData  string  false  "Location"
// @Param        people    formData  string  false  "Comma separated names"
// @Success      201  {object}  dto.PostView
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	if err := accessctx.CanPublish(actor); err != nil {
		return err
	}

	var req dto.CreatePostReq
	if err := parseBody(c, &req); err != nil {
		return err
	}

	in := services.NewPost{
		Title:    req.Title,
		Caption:  req.Caption,
		Location: req.Location,
		People:   services.SplitPeople(req.People),
	}

	if fh, err := c.FormFile("image"); err == nil {
		media, err := readUpload(fh)
		if err != nil {
			return err
		}
		in.Media = media
	}

	p, err := h.Posts.Create(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func readUpload(fh *multipart.FileHeader) (*services.MediaUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, common.Validation("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, common.Validation("Could not read uploaded file")
	}
	return &services.MediaUpload{
		Filename:    fh.Filename,
		ContentType: strings.TrimSpace(fh.Header.Get(fiber.HeaderContentType)),
		Data:        data,
	}, nil
}

// @Summary      Delete a post
// @Description  Creator and owner only. Removes the media and every comment on the post.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post ID (hex ObjectID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	actor, ok := accessctx.Authenticated(c)
	if !ok {
		return common.Unauthenticated("No token, authorization denied")
	}
	if err := h.Posts.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Post deleted successfully"})
}
