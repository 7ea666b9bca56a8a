package post

import (
	"context"

	"postboard/internal/core/post"
)

// PostRepository is the port every post store implements.
// Every method is atomic with respect to the others.
type PostRepository interface {
	// List returns all posts in insertion order.
	List(ctx context.Context) ([]*post.Post, error)
	// FindByID returns post.ErrPostNotFound when id is unknown.
	FindByID(ctx context.Context, id string) (*post.Post, error)
	// Create assigns a fresh id and appends the post.
	Create(ctx context.Context, username, content string) (*post.Post, error)
	// UpdateContent overwrites the content of an existing post.
	UpdateContent(ctx context.Context, id, content string) (*post.Post, error)
	Count(ctx context.Context) (int64, error)
}

// PostDTO is what the use cases hand to the HTTP layer
type PostDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SeedPost is one demo post written at start-up.
type SeedPost struct {
	Username string
	Content  string
}
