// Command fixcreator removes every creator account and recreates the one
// configured through CREATOR_* variables.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"igram/config"
	"igram/database"
	"igram/internal/auth"
	"igram/internal/logging"
	"igram/internal/repository"
	"igram/internal/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	client, err := database.NewClient(cfg.MongoURI, cfg.StoreTimeout, nil)
	if err != nil {
		log.Fatalf("store client: %v", err)
	}
	defer func() { _ = database.Disconnect(client) }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()

	if err := database.Ping(ctx, client); err != nil {
		log.Fatalf("store unreachable: %v", err)
	}

	users := repository.NewUserRepository(client.Database(cfg.MongoDB))
	svc := services.NewAuthService(users, auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL), logger)

	deleted, err := svc.ResetCreator(ctx, services.CreatorSeed{
		Username: cfg.CreatorUsername,
		Name:     cfg.CreatorName,
		Email:    cfg.CreatorEmail,
		Password: cfg.CreatorPassword,
	})
	if err != nil {
		log.Fatalf("reset creator: %v", err)
	}

	fmt.Printf("removed %d creator account(s)\n", deleted)
	fmt.Printf("creator ready: %s (%s)\n", cfg.CreatorEmail, cfg.CreatorName)
}
