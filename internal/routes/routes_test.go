package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"igram/database"
	"igram/dto"
	"igram/internal/auth"
	"igram/internal/logging"
	"igram/internal/models"
	"igram/internal/repository/memstore"
	"igram/internal/routes"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	app       *fiber.App
	readiness *database.Readiness
	sink      *memstore.Sink
	store     *memstore.Store
	tokens    *auth.TokenManager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memstore.New()
	sink := memstore.NewSink()
	log := logging.Discard()
	tokens := auth.NewTokenManager("routes-secret", time.Hour)
	authSvc := services.NewAuthService(store.Users(), tokens, log)

	_, err := authSvc.EnsureCreator(context.Background(), services.CreatorSeed{
		Username: "creator",
		Name:     "Omer",
		Email:    "creator@igram.com",
		Password: "creator123",
	})
	require.NoError(t, err)

	readiness := &database.Readiness{}
	readiness.MarkReady()

	app := routes.New(routes.Deps{
		Log:         log,
		Readiness:   readiness,
		Tokens:      tokens,
		Auth:        authSvc,
		Consumers:   services.NewConsumerService(store.Consumers(), log),
		Posts:       services.NewPostService(store.Posts(), store.Comments(), store.Users(), sink, log),
		Comments:    services.NewCommentService(store.Comments(), store.Posts(), store.Users(), log),
		Likes:       services.NewLikeService(store.Posts(), log),
		MaxUploadMB: 10,
	})
	return &env{app: app, readiness: readiness, sink: sink, store: store, tokens: tokens}
}

func (e *env) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func (e *env) json(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return e.do(t, req)
}

func (e *env) login(t *testing.T) string {
	t.Helper()
	resp, b := e.json(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "creator@igram.com", Password: "creator123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(b, &out))
	return out.Token
}

// member stores a registered non-creator account and returns its token.
func (e *env) member(t *testing.T, username string) string {
	t.Helper()
	u := &models.User{
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Role:     models.RoleConsumer,
	}
	require.NoError(t, e.store.Users().Create(context.Background(), u))
	token, err := e.tokens.Issue(u.ID.Hex(), u.Role)
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func message(t *testing.T, b []byte) string {
	return decode[dto.ErrorResponse](t, b).Message
}

func TestHealthRoutesIgnoreReadiness(t *testing.T) {
	e := newEnv(t)
	e.readiness.MarkNotReady()

	resp, b := e.json(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(b), "igram")

	resp, b = e.json(t, http.MethodGet, "/api", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.HealthResponse](t, b).OK)

	resp, b = e.json(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "not_connected", decode[dto.HealthResponse](t, b).DB)

	resp, b = e.json(t, http.MethodGet, "/api/posts/public", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "Database not connected. Please wait a moment and try again.", message(t, b))

	e.readiness.MarkReady()
	resp, b = e.json(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "connected", decode[dto.HealthResponse](t, b).DB)
}

func TestAuthRoutes(t *testing.T) {
	e := newEnv(t)

	resp, b := e.json(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "creator@igram.com", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", message(t, b))

	token := e.login(t)
	resp, b = e.json(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[dto.UserView](t, b)
	assert.Equal(t, "creator", me.Role)
	assert.NotContains(t, string(b), "password")

	resp, _ = e.json(t, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = e.json(t, http.MethodGet, "/api/posts", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConsumerRegisterStatuses(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.json(t, http.MethodPost, "/api/consumers/register", "", dto.RegisterConsumerRequest{Name: "Bob"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, b := e.json(t, http.MethodPost, "/api/consumers/register", "", dto.RegisterConsumerRequest{Name: "Bob"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome back!", decode[dto.RegisterConsumerResponse](t, b).Message)
	resp, _ = e.json(t, http.MethodPost, "/api/consumers/register", "", dto.RegisterConsumerRequest{Name: "BOB"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = e.json(t, http.MethodPost, "/api/consumers/register", "", dto.RegisterConsumerRequest{Name: "R2D2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func multipartPost(t *testing.T, token, caption string, img []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Sunset"))
	require.NoError(t, w.WriteField("caption", caption))
	require.NoError(t, w.WriteField("people", "ann, bob"))
	if img != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="sunset.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/posts", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestCreatePostMultipart(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 640, 480))))

	resp, b := e.do(t, multipartPost(t, token, "golden hour", img.Bytes()))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	p := decode[dto.PostView](t, b)
	assert.Equal(t, "image", p.MediaType)
	assert.Equal(t, []string{"ann", "bob"}, p.People)
	assert.NotEmpty(t, p.ThumbnailURL)
	require.NotNil(t, p.Creator)
	assert.Equal(t, "Omer", p.Creator.Name)
	assert.Equal(t, 2, e.sink.Len())

	resp, b = e.do(t, multipartPost(t, token, "", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Either caption or media file is required", message(t, b))
}

// A consumer and the creator interact with one post end to end.
func TestPostLifecycle(t *testing.T) {
	e := newEnv(t)
	token := e.login(t)

	resp, b := e.json(t, http.MethodPost, "/api/posts", token, dto.CreatePostReq{Title: "Hi", Caption: "hello world"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	created := decode[dto.PostView](t, b)
	assert.Empty(t, created.ImageURL)
	postID := created.ID.Hex()

	resp, _ = e.json(t, http.MethodPost, "/api/consumers/register", "", dto.RegisterConsumerRequest{Name: "Bob"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, b = e.json(t, http.MethodPost, "/api/likes/public/"+postID, "", dto.ConsumerNameReq{ConsumerName: "Bob"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(b))
	like := decode[dto.LikeResponse](t, b)
	assert.True(t, like.IsLiked)
	assert.Equal(t, 1, like.LikesCount)

	resp, b = e.json(t, http.MethodPost, "/api/comments/public", "", dto.CreateCommentReq{PostID: postID, Text: "nice", ConsumerName: " Bob "})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))
	bobComment := decode[dto.CommentView](t, b)
	assert.Equal(t, "Bob", bobComment.ConsumerName)

	resp, b = e.json(t, http.MethodPost, "/api/comments", token, dto.CreateCommentReq{PostID: postID, Text: "thanks"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(b))

	resp, b = e.json(t, http.MethodGet, "/api/posts/public", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	feed := decode[[]dto.PostView](t, b)
	require.Len(t, feed, 1)
	require.Len(t, feed[0].Comments, 2)
	assert.Equal(t, "thanks", feed[0].Comments[0].Text)
	assert.Equal(t, "nice", feed[0].Comments[1].Text)
	assert.Equal(t, 1, feed[0].LikesCount)

	resp, b = e.json(t, http.MethodGet, "/api/comments/post/"+postID+"?limit=1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.CommentView](t, b), 1)
	assert.NotEmpty(t, resp.Header.Get("X-Next-Cursor"))

	// the creator may not remove a consumer's comment
	resp, _ = e.json(t, http.MethodDelete, "/api/comments/"+bobComment.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = e.json(t, http.MethodDelete, "/api/comments/public/"+bobComment.ID.Hex(), "", dto.ConsumerNameReq{ConsumerName: "bob"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, b = e.json(t, http.MethodDelete, "/api/comments/public/"+bobComment.ID.Hex(), "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Consumer name is required", message(t, b))
	resp, _ = e.json(t, http.MethodDelete, "/api/comments/public/"+bobComment.ID.Hex(), "", dto.ConsumerNameReq{ConsumerName: "Bob"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, b = e.json(t, http.MethodPost, "/api/likes/"+postID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.LikeResponse](t, b).LikesCount)

	resp, b = e.json(t, http.MethodGet, "/api/likes/"+postID+"/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decode[dto.LikeResponse](t, b)
	assert.True(t, status.IsLiked)
	assert.Equal(t, 2, status.LikesCount)

	resp, b = e.json(t, http.MethodDelete, "/api/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Post deleted successfully", decode[dto.MessageResponse](t, b).Message)

	resp, _ = e.json(t, http.MethodGet, "/api/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, b = e.json(t, http.MethodGet, "/api/posts/public", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]dto.PostView](t, b))
	resp, _ = e.json(t, http.MethodPost, "/api/likes/public/"+postID, "", dto.ConsumerNameReq{ConsumerName: "Bob"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNonCreatorCannotPublish(t *testing.T) {
	e := newEnv(t)

	resp, _ := e.json(t, http.MethodPost, "/api/posts", "", dto.CreatePostReq{Caption: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := e.member(t, "dana")

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 64, 64))))
	resp, b := e.do(t, multipartPost(t, token, "mine now", img.Bytes()))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only creator can create posts", message(t, b))
	assert.Zero(t, e.sink.Len())

	// rejected before the body is parsed
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewReader([]byte(`{"caption":`)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, b = e.do(t, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Only creator can create posts", message(t, b))
}
