package redis

import (
	"context"
	"testing"

	postPort "postboard/internal/ports/post"
	"postboard/internal/ports/post/posttest"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*PostRepositoryRedis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewPostRepositoryRedis(client), mr
}

func TestPostRepositoryRedis(t *testing.T) {
	posttest.RunRepositoryContract(t, func(t *testing.T) postPort.PostRepository {
		repo, _ := newTestRepo(t)
		return repo
	})
}

func TestPostRepositoryRedis_ConcurrentCreates(t *testing.T) {
	repo, _ := newTestRepo(t)
	posttest.RunConcurrentCreates(t, repo, 4, 25)
}

func TestPostRepositoryRedis_Layout(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	p, err := repo.Create(ctx, "alice", "hello")
	require.NoError(t, err)

	ids, err := mr.List(orderKey)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID.String()}, ids)
	assert.Equal(t, "alice", mr.HGet(postKey(p.ID.String()), "username"))
	assert.Equal(t, "hello", mr.HGet(postKey(p.ID.String()), "content"))
}

func TestPostRepositoryRedis_UpdateUnknownCreatesNoKey(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.UpdateContent(ctx, "8f14e45f-ceea-467a-9575-9d4b1e2b4a1c", "x")
	require.Error(t, err)
	assert.False(t, mr.Exists(postKey("8f14e45f-ceea-467a-9575-9d4b1e2b4a1c")))
}

func TestPostRepositoryRedis_ServerDown(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()

	_, err := repo.List(context.Background())
	assert.Error(t, err)
}
