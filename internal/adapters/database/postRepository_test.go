package database

import (
	"context"
	"fmt"
	"testing"

	"postboard/internal/core/post"
	postPort "postboard/internal/ports/post"
	"postboard/internal/ports/post/posttest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the posts table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", post.NewID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&post.Post{}))
	return db
}

func TestPostRepositoryDatabase(t *testing.T) {
	posttest.RunRepositoryContract(t, func(t *testing.T) postPort.PostRepository {
		return NewPostRepositoryDatabase(newTestDB(t))
	})
}

func TestPostRepositoryDatabase_ConcurrentCreates(t *testing.T) {
	posttest.RunConcurrentCreates(t, NewPostRepositoryDatabase(newTestDB(t)), 4, 25)
}

func TestPostRepositoryDatabase_SeqFollowsInsertOrder(t *testing.T) {
	repo := NewPostRepositoryDatabase(newTestDB(t))
	ctx := context.Background()

	a, err := repo.Create(ctx, "a", "first")
	require.NoError(t, err)
	b, err := repo.Create(ctx, "b", "second")
	require.NoError(t, err)
	assert.Less(t, a.Seq, b.Seq)

	// Updating the older post must not move it to the end.
	_, err = repo.UpdateContent(ctx, a.ID.String(), "first, edited")
	require.NoError(t, err)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, a.ID, posts[0].ID)
	assert.Equal(t, "first, edited", posts[0].Content)
	assert.Equal(t, b.ID, posts[1].ID)
}
