package postapp

import (
	"context"
	"errors"
	"testing"

	memadapter "postboard/internal/adapters/memory"
	postEntity "postboard/internal/core/post"
	postPort "postboard/internal/ports/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestService(t *testing.T) (*PostService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return NewPostService(memadapter.NewPostRepositoryMemory(), zap.New(core)), logs
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestListPostsInCreationOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, c := range []string{"A", "B", "C"} {
		_, err := svc.CreatePost(ctx, "u", c)
		require.NoError(t, err)
	}

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "A", posts[0].Content)
	assert.Equal(t, "B", posts[1].Content)
	assert.Equal(t, "C", posts[2].Content)
}

func TestGetUnknownPost(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.GetPost(context.Background(), "does-not-exist")
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, postEntity.ErrPostNotFound))
}

func TestUpdatePostContent(t *testing.T) {
	svc, logs := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "bob", "before")
	require.NoError(t, err)

	updated, err := svc.UpdatePostContent(ctx, created.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "bob", updated.Username)
	assert.Equal(t, "after", updated.Content)

	entries := logs.FilterMessage("post updated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "after", entries[0].ContextMap()["content"])
}

func TestUpdateUnknownPostIsLoggedNoOp(t *testing.T) {
	svc, logs := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "bob", "keep me")
	require.NoError(t, err)

	_, err = svc.UpdatePostContent(ctx, "missing", "x")
	assert.ErrorIs(t, err, postEntity.ErrPostNotFound)
	assert.Equal(t, 1, logs.FilterMessage("update of unknown post ignored").Len())

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "keep me", posts[0].Content)
}

func TestSeedPosts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	n, err := svc.SeedPosts(ctx, DemoPosts)
	require.NoError(t, err)
	assert.Equal(t, len(DemoPosts), n)

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, len(DemoPosts))
	for i, seed := range DemoPosts {
		assert.Equal(t, seed.Username, posts[i].Username)
		assert.Equal(t, seed.Content, posts[i].Content)
	}

	// A second run leaves a non-empty store alone.
	n, err = svc.SeedPosts(ctx, DemoPosts)
	require.NoError(t, err)
	assert.Zero(t, n)

	posts, err = svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, len(DemoPosts))
}

type failingRepo struct{ postPort.PostRepository }

func (failingRepo) List(context.Context) ([]*postEntity.Post, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Create(context.Context, string, string) (*postEntity.Post, error) {
	return nil, errors.New("connection refused")
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	svc := NewPostService(failingRepo{}, nil)
	ctx := context.Background()

	_, err := svc.ListPosts(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list posts")
	assert.False(t, errors.Is(err, postEntity.ErrPostNotFound))

	_, err = svc.CreatePost(ctx, "a", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
