// @title igram API
// @version 1.0
// @description Single-creator photo and video sharing backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"igram/bootstrap"
	"igram/config"
	"igram/database"
	"igram/internal/auth"
	"igram/internal/logging"
	"igram/internal/repository"
	"igram/internal/routes"
	"igram/internal/services"
	"igram/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := &database.Readiness{}
	client, err := database.NewClient(cfg.MongoURI, cfg.StoreTimeout, readiness)
	if err != nil {
		log.Fatalf("store client: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Warn(context.Background(), "store disconnect", "error", err)
		}
	}()
	db := client.Database(cfg.MongoDB)

	sink, err := storage.NewS3Sink(ctx, storage.S3Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.MediaPublicBase,
		UsePathStyle:  cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Fatalf("media sink: %v", err)
	}

	users := repository.NewUserRepository(db)
	consumers := repository.NewConsumerRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := services.NewAuthService(users, tokens, logger)

	app := routes.New(routes.Deps{
		Log:            logger,
		Readiness:      readiness,
		Tokens:         tokens,
		Auth:           authSvc,
		Consumers:      services.NewConsumerService(consumers, logger),
		Posts:          services.NewPostService(posts, comments, users, sink, logger),
		Comments:       services.NewCommentService(comments, posts, users, logger),
		Likes:          services.NewLikeService(posts, logger),
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadMB:    cfg.MaxUploadMB,
		RequestTimeout: cfg.RequestTimeout,
		AccessLog:      os.Stdout,
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "port", cfg.Port)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	// the listener comes up first; the store is reached afterwards
	go func() {
		store := &bootstrap.Store{
			Client:    client,
			DB:        db,
			Readiness: readiness,
			Seeder:    authSvc,
			Seed: services.CreatorSeed{
				Username: cfg.CreatorUsername,
				Name:     cfg.CreatorName,
				Email:    cfg.CreatorEmail,
				Password: cfg.CreatorPassword,
			},
			Log: logger,
		}
		if err := store.Run(ctx); err != nil {
			logger.Error(ctx, "store bootstrap failed", "error", err)
		}
	}()

	select {
	case err := <-listenErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(ctx, "server stopped", "error", err)
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error(context.Background(), "shutdown", "error", err)
		}
	}
}
