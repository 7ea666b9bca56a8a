package database

import (
	"context"
	"errors"
	"fmt"

	"postboard/internal/core/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase stores posts through gorm (MySQL or SQLite).
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase expects the posts table to be migrated already.
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) List(ctx context.Context) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.db.WithContext(ctx).Order("seq asc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id string) (*post.Post, error) {
	return findByID(repo.db.WithContext(ctx), id)
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, username, content string) (*post.Post, error) {
	p := &post.Post{
		ID:       post.NewID(),
		Username: username,
		Content:  content,
	}
	if err := repo.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) UpdateContent(ctx context.Context, id, content string) (*post.Post, error) {
	var updated *post.Post
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findByID(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(p).Update("content", content).Error; err != nil {
			return fmt.Errorf("update post %s: %w", id, err)
		}
		p.Content = content
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&post.Post{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func findByID(db *gorm.DB, id string) (*post.Post, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, post.ErrPostNotFound
	}

	var p post.Post
	if err := db.Where("id = ?", uid).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	return &p, nil
}
