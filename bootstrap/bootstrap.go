// Package bootstrap prepares the document store once it is reachable:
// indexes first, then the default creator account.
package bootstrap

import (
	"context"
	"fmt"

	"igram/database"
	"igram/internal/logging"
	"igram/internal/services"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CreatorSeeder interface {
	EnsureCreator(ctx context.Context, seed services.CreatorSeed) (bool, error)
}

type Store struct {
	Client    *mongo.Client
	DB        *mongo.Database
	Readiness *database.Readiness
	Seeder    CreatorSeeder
	Seed      services.CreatorSeed
	Log       logging.Logger
}

// Run pings the store once. On success it marks the store ready, ensures
// indexes and seeds the creator; failures after the ping are logged only.
// A failed ping is returned and nothing is seeded; there is no retry.
func (s *Store) Run(ctx context.Context) error {
	if err := database.Ping(ctx, s.Client); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	s.Readiness.MarkReady()
	s.Log.Info(ctx, "store connected", "db", s.DB.Name())

	if err := EnsureIndexes(ctx, s.DB); err != nil {
		s.Log.Warn(ctx, "index setup failed", "error", err)
	}

	created, err := s.Seeder.EnsureCreator(ctx, s.Seed)
	switch {
	case err != nil:
		s.Log.Error(ctx, "creator bootstrap failed", "error", err)
	case created:
		s.Log.Info(ctx, "creator account ready", "email", s.Seed.Email)
	default:
		s.Log.Debug(ctx, "creator account already present")
	}
	return nil
}
