package services_test

import (
	"context"
	"strings"
	"testing"

	"igram/internal/accessctx"
	"igram/internal/common"
	"igram/internal/models"
	"igram/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreateRequiresCreator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.addUser(t, "alice")

	_, err := f.posts.Create(ctx, user, services.NewPost{Caption: "hi"})
	assert.ErrorIs(t, err, common.ErrForbidden)
	_, err = f.posts.Create(ctx, accessctx.NamedActor{Name: "Bob"}, services.NewPost{Caption: "hi"})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestPostService_CreateRequiresCaptionOrMedia(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.Create(context.Background(), f.creator, services.NewPost{Title: "t", Caption: "   "})
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.EqualError(t, err, "Either caption or media file is required")
}

func TestPostService_CreateTextOnly(t *testing.T) {
	f := newFixture(t)

	p, err := f.posts.Create(context.Background(), f.creator, services.NewPost{
		Title:   "Hello",
		Caption: "first",
		People:  services.SplitPeople(" ann, ,bob ,"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaNone, p.MediaType)
	assert.Empty(t, p.ImageURL)
	assert.Equal(t, []string{"ann", "bob"}, p.People)
	require.NotNil(t, p.Creator)
	assert.Equal(t, "creator", p.Creator.Username)
	assert.Equal(t, 0, p.LikesCount)
	assert.NotNil(t, p.Comments)
	assert.Zero(t, f.sink.Len())
}

func TestPostService_CreateWithImageUploadsMediaAndThumbnail(t *testing.T) {
	f := newFixture(t)

	p, err := f.posts.Create(context.Background(), f.creator, services.NewPost{
		Media: &services.MediaUpload{Filename: "pic.PNG", ContentType: "image/png", Data: pngImage(t, 800, 400)},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, p.MediaType)
	assert.True(t, strings.HasSuffix(p.ImageURL, ".png"))
	assert.True(t, f.sink.Has(p.ImageURL))
	assert.True(t, f.sink.Has(p.ThumbnailURL))
}

func TestPostService_CreateWithVideo(t *testing.T) {
	f := newFixture(t)

	p, err := f.posts.Create(context.Background(), f.creator, services.NewPost{
		Media: &services.MediaUpload{Filename: "clip.mp4", ContentType: "video/mp4", Data: []byte("not really a video")},
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaVideo, p.MediaType)
	assert.Empty(t, p.ThumbnailURL)
	assert.Equal(t, 1, f.sink.Len())
}

func TestPostService_CreateRejectsOtherMedia(t *testing.T) {
	f := newFixture(t)

	_, err := f.posts.Create(context.Background(), f.creator, services.NewPost{
		Media: &services.MediaUpload{Filename: "doc.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPostService_UploadFailureCreatesNothing(t *testing.T) {
	f := newFixture(t)
	f.sink.FailPut = true

	_, err := f.posts.Create(context.Background(), f.creator, services.NewPost{
		Media: &services.MediaUpload{Filename: "pic.png", ContentType: "image/png", Data: pngImage(t, 10, 10)},
	})
	assert.ErrorIs(t, err, common.ErrUpstream)

	list, err := f.posts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostService_ListNewestFirstWithJoins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.addUser(t, "alice")

	older := f.textPost(t, "older")
	newer := f.textPost(t, "newer")

	_, err := f.comments.Create(ctx, alice, older, "first")
	require.NoError(t, err)
	_, err = f.comments.Create(ctx, accessctx.NamedActor{Name: "Bob"}, older, "second")
	require.NoError(t, err)

	list, err := f.posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer, list[0].ID.Hex())
	assert.Equal(t, older, list[1].ID.Hex())

	comments := list[1].Comments
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "Bob", comments[0].ConsumerName)
	assert.Nil(t, comments[0].User)
	require.NotNil(t, comments[1].User)
	assert.Equal(t, "alice", comments[1].User.Username)
	assert.Equal(t, models.RoleConsumer, comments[1].User.Role)
}

func TestPostService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.textPost(t, "hello")

	p, err := f.posts.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Caption)

	_, err = f.posts.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = f.posts.Get(ctx, "65a000000000000000000000")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.posts.Create(ctx, f.creator, services.NewPost{
		Caption: "bye",
		Media:   &services.MediaUpload{Filename: "pic.png", ContentType: "image/png", Data: pngImage(t, 400, 400)},
	})
	require.NoError(t, err)
	id := p.ID.Hex()
	c, err := f.comments.Create(ctx, accessctx.NamedActor{Name: "Bob"}, id, "nice")
	require.NoError(t, err)

	require.NoError(t, f.posts.Delete(ctx, f.creator, id))

	_, err = f.posts.Get(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = f.store.Comments().FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ElementsMatch(t, []string{p.ImageURL, p.ThumbnailURL}, f.sink.Deleted)
	assert.Zero(t, f.sink.Len())
}

func TestPostService_DeleteSwallowsSinkFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.posts.Create(ctx, f.creator, services.NewPost{
		Media: &services.MediaUpload{Filename: "clip.mov", ContentType: "video/quicktime", Data: []byte("x")},
	})
	require.NoError(t, err)
	f.sink.FailDelete = true

	require.NoError(t, f.posts.Delete(ctx, f.creator, p.ID.Hex()))
	_, err = f.posts.Get(ctx, p.ID.Hex())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostService_DeleteAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.textPost(t, "mine")
	alice := f.addUser(t, "alice")
	other := accessctx.AuthenticatedActor{ID: alice.ID, Role: models.RoleCreator}

	assert.ErrorIs(t, f.posts.Delete(ctx, alice, id), common.ErrForbidden)
	assert.ErrorIs(t, f.posts.Delete(ctx, other, id), common.ErrForbidden)
	assert.ErrorIs(t, f.posts.Delete(ctx, accessctx.NamedActor{Name: "Bob"}, id), common.ErrForbidden)
	assert.ErrorIs(t, f.posts.Delete(ctx, f.creator, "65a000000000000000000000"), common.ErrNotFound)

	_, err := f.posts.Get(ctx, id)
	assert.NoError(t, err)
}

func TestSplitPeople(t *testing.T) {
	assert.Equal(t, []string{}, services.SplitPeople(""))
	assert.Equal(t, []string{"a", "b c"}, services.SplitPeople("a,, b c ,"))
}
