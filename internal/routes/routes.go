package routes

import (
	"io"
	"strings"
	"time"

	_ "igram/docs"

	"igram/internal/controllers"
	"igram/internal/logging"
	"igram/internal/middleware"
	"igram/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Log       logging.Logger
	Readiness controllers.StoreStatus
	Tokens    middleware.TokenVerifier

	Auth      *services.AuthService
	Consumers *services.ConsumerService
	Posts     *services.PostService
	Comments  *services.CommentService
	Likes     *services.LikeService

	CORSOrigins    string
	MaxUploadMB    int
	RequestTimeout time.Duration
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog io.Writer
}

// New builds the application with every route mounted.
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "igram",
		ErrorHandler: controllers.ErrorHandler(d.Log),
		BodyLimit:    d.MaxUploadMB << 20,
		ReadTimeout:  d.RequestTimeout,
		WriteTimeout: d.RequestTimeout,
	})

	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(recover.New())
	if d.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Output: d.AccessLog,
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	origins := strings.TrimSpace(d.CORSOrigins)
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: controllers.HeaderNextCursor,
	}))

	Register(app, d)
	return app
}

// Register mounts all HTTP routes in one place.
func Register(app *fiber.App, d Deps) {
	health := &controllers.HealthHandler{Store: d.Readiness}
	app.Get("/", health.Root)
	app.Get("/api", health.API)
	app.Get("/health", health.Health)

	app.Get("/docs/*", swagger.HandlerDefault)

	app.Use(middleware.RequireStore(d.Readiness))

	authed := middleware.RequireAuth(d.Tokens, d.Auth)
	api := app.Group("/api")

	// ============================================================
	// Auth
	// ============================================================
	ah := &controllers.AuthHandler{Auth: d.Auth}
	api.Post("/auth/login", ah.Login)
	api.Get("/auth/me", authed, ah.Me)

	// ============================================================
	// Consumers
	// ============================================================
	ch := &controllers.ConsumerHandler{Consumers: d.Consumers}
	api.Post("/consumers/register", ch.Register)

	// ============================================================
	// Posts
	// ============================================================
	ph := &controllers.PostHandler{Posts: d.Posts}
	posts := api.Group("/posts")
	posts.Get("/public", ph.ListPublic)
	posts.Get("/", authed, ph.List)
	posts.Get("/:id", authed, ph.Get)
	posts.Post("/", authed, ph.Create)
	posts.Delete("/:id", authed, ph.Delete)

	// ============================================================
	// Comments
	// ============================================================
	cmh := &controllers.CommentHandler{Comments: d.Comments}
	comments := api.Group("/comments")
	comments.Post("/public", cmh.CreatePublic)
	comments.Delete("/public/:id", cmh.DeletePublic)
	comments.Post("/", authed, cmh.Create)
	comments.Get("/post/:postId", authed, cmh.ListForPost)
	comments.Delete("/:id", authed, cmh.Delete)

	// ============================================================
	// Likes
	// ============================================================
	lh := &controllers.LikeHandler{Likes: d.Likes}
	likes := api.Group("/likes")
	likes.Post("/public/:postId", lh.TogglePublic)
	likes.Post("/:postId", authed, lh.Toggle)
	likes.Get("/:postId/status", authed, lh.Status)
}
