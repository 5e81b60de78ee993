package services_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"igram/internal/accessctx"
	"igram/internal/auth"
	"igram/internal/logging"
	"igram/internal/models"
	"igram/internal/repository/memstore"
	"igram/internal/services"

	"github.com/stretchr/testify/require"
)

var (
	_ services.UserStore     = (*memstore.Users)(nil)
	_ services.ConsumerStore = (*memstore.Consumers)(nil)
	_ services.PostStore     = (*memstore.Posts)(nil)
	_ services.CommentStore  = (*memstore.Comments)(nil)
	_ services.TokenIssuer   = (*auth.TokenManager)(nil)
)

var seed = services.CreatorSeed{
	Username: "creator",
	Name:     "Omer",
	Email:    "Creator@igram.com",
	Password: "creator123",
}

type fixture struct {
	store     *memstore.Store
	sink      *memstore.Sink
	tokens    *auth.TokenManager
	auth      *services.AuthService
	consumers *services.ConsumerService
	posts     *services.PostService
	comments  *services.CommentService
	likes     *services.LikeService

	creator accessctx.AuthenticatedActor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	sink := memstore.NewSink()
	log := logging.Discard()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	f := &fixture{
		store:     store,
		sink:      sink,
		tokens:    tokens,
		auth:      services.NewAuthService(store.Users(), tokens, log),
		consumers: services.NewConsumerService(store.Consumers(), log),
		posts:     services.NewPostService(store.Posts(), store.Comments(), store.Users(), sink, log),
		comments:  services.NewCommentService(store.Comments(), store.Posts(), store.Users(), log),
		likes:     services.NewLikeService(store.Posts(), log),
	}

	created, err := f.auth.EnsureCreator(context.Background(), seed)
	require.NoError(t, err)
	require.True(t, created)

	u, err := store.Users().FindOneByRole(context.Background(), models.RoleCreator)
	require.NoError(t, err)
	f.creator = accessctx.FromUser(u)
	return f
}

// addUser stores a non-creator account and returns it as an actor.
func (f *fixture) addUser(t *testing.T, username string) accessctx.AuthenticatedActor {
	t.Helper()
	u := &models.User{
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Role:     models.RoleConsumer,
	}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return accessctx.FromUser(u)
}

func (f *fixture) textPost(t *testing.T, caption string) string {
	t.Helper()
	p, err := f.posts.Create(context.Background(), f.creator, services.NewPost{Caption: caption})
	require.NoError(t, err)
	return p.ID.Hex()
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}
