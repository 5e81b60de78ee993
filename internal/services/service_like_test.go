package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"igram/internal/accessctx"
	"igram/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_ToggleIsAnInvolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.textPost(t, "post")
	bob := accessctx.NamedActor{Name: "Bob"}

	r, err := f.likes.Toggle(ctx, f.creator, id)
	require.NoError(t, err)
	assert.True(t, r.IsLiked)
	assert.Equal(t, "Post liked", r.Message)
	assert.Equal(t, 1, r.LikesCount)

	r, err = f.likes.Toggle(ctx, bob, id)
	require.NoError(t, err)
	assert.True(t, r.IsLiked)
	assert.Equal(t, 2, r.LikesCount)

	st, err := f.likes.Status(ctx, f.creator, id)
	require.NoError(t, err)
	assert.True(t, st.IsLiked)
	assert.Equal(t, 2, st.LikesCount)

	r, err = f.likes.Toggle(ctx, f.creator, id)
	require.NoError(t, err)
	assert.False(t, r.IsLiked)
	assert.Equal(t, "Post unliked", r.Message)
	assert.Equal(t, 1, r.LikesCount)

	r, err = f.likes.Toggle(ctx, bob, id)
	require.NoError(t, err)
	assert.False(t, r.IsLiked)
	assert.Equal(t, 0, r.LikesCount)
}

func TestLikeService_ConcurrentTogglesAreNotLost(t *testing.T) {
	f := newFixture(t)
	id := f.textPost(t, "post")

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("Fan %c", 'A'+rune(i))
			_, err := f.likes.Toggle(context.Background(), accessctx.NamedActor{Name: name}, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p, err := f.posts.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, n, p.LikesCount)
}

func TestLikeService_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.textPost(t, "post")

	_, err := f.likes.Toggle(ctx, accessctx.NamedActor{}, id)
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = f.likes.Toggle(ctx, f.creator, "65a000000000000000000000")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = f.likes.Status(ctx, f.creator, "bad")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
