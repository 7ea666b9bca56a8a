// Package posttest holds the behaviour every PostRepository must show.
package posttest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"postboard/internal/core/post"
	postPort "postboard/internal/ports/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRepositoryContract runs the store contract against fresh, empty stores from newRepo.
func RunRepositoryContract(t *testing.T, newRepo func(t *testing.T) postPort.PostRepository) {
	t.Run("EmptyStoreListsNothing", func(t *testing.T) {
		repo := newRepo(t)
		posts, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, posts)

		n, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		want := []string{"A", "B", "C", "D", "E"}
		for _, c := range want {
			_, err := repo.Create(ctx, "user-"+c, c)
			require.NoError(t, err)
		}

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, len(want))
		for i, p := range posts {
			assert.Equal(t, want[i], p.Content)
			assert.Equal(t, "user-"+want[i], p.Username)
		}
	})

	t.Run("CreateAssignsUniqueIDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			p, err := repo.Create(ctx, "u", fmt.Sprintf("post %d", i))
			require.NoError(t, err)
			id := p.ID.String()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 50, n)
	})

	t.Run("CreateAcceptsEmptyFields", func(t *testing.T) {
		repo := newRepo(t)
		p, err := repo.Create(context.Background(), "", "")
		require.NoError(t, err)
		assert.Empty(t, p.Username)
		assert.Empty(t, p.Content)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())
	})

	t.Run("FindReturnsCreatedPost", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created, err := repo.Create(ctx, "alice", "hello")
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "alice", found.Username)
		assert.Equal(t, "hello", found.Content)
	})

	t.Run("FindUnknownIsNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		_, err := repo.Create(ctx, "alice", "hello")
		require.NoError(t, err)

		for _, id := range []string{"does-not-exist", "", post.NewID().String()} {
			p, err := repo.FindByID(ctx, id)
			assert.ErrorIs(t, err, post.ErrPostNotFound, "id %q", id)
			assert.Nil(t, p)
		}
	})

	t.Run("UpdateChangesOnlyContent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created, err := repo.Create(ctx, "bob", "before")
		require.NoError(t, err)

		updated, err := repo.UpdateContent(ctx, created.ID.String(), "after")
		require.NoError(t, err)
		assert.Equal(t, "after", updated.Content)

		found, err := repo.FindByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "bob", found.Username)
		assert.Equal(t, "after", found.Content)
	})

	t.Run("UpdateUnknownChangesNothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		first, err := repo.Create(ctx, "carol", "one")
		require.NoError(t, err)
		_, err = repo.Create(ctx, "dave", "two")
		require.NoError(t, err)

		_, err = repo.UpdateContent(ctx, post.NewID().String(), "x")
		assert.ErrorIs(t, err, post.ErrPostNotFound)
		_, err = repo.UpdateContent(ctx, "garbage", "x")
		assert.ErrorIs(t, err, post.ErrPostNotFound)

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, first.ID, posts[0].ID)
		assert.Equal(t, "one", posts[0].Content)
		assert.Equal(t, "two", posts[1].Content)
	})

	t.Run("ListedPostsAreCopies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		created, err := repo.Create(ctx, "erin", "original")
		require.NoError(t, err)

		posts, err := repo.List(ctx)
		require.NoError(t, err)
		posts[0].Content = "mutated by caller"
		created.Content = "mutated by caller"

		found, err := repo.FindByID(ctx, created.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "original", found.Content)
	})
}

// RunConcurrentCreates checks that parallel creates neither lose posts nor reuse ids.
func RunConcurrentCreates(t *testing.T, repo postPort.PostRepository, workers, perWorker int) {
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := repo.Create(ctx, fmt.Sprintf("w%d", w), fmt.Sprintf("%d", i)); err != nil {
					errs <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, workers*perWorker)

	ids := make(map[string]bool, len(posts))
	for _, p := range posts {
		ids[p.ID.String()] = true
	}
	assert.Len(t, ids, workers*perWorker)
}
