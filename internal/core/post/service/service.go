package postapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	postEntity "postboard/internal/core/post"
	postPort "postboard/internal/ports/post"

	"go.uber.org/zap"
)

// DemoPosts are the posts a fresh board starts with.
var DemoPosts = []postPort.SeedPost{
	{Username: "college", Content: "i love coding !"},
	{Username: "sonam", Content: "hard work is important to achieve success !"},
	{Username: "sumit", Content: "i got selected for my first internship !"},
}

type PostService struct {
	PostRepository postPort.PostRepository
	Logger         *zap.Logger
}

func NewPostService(postRepo postPort.PostRepository, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		PostRepository: postRepo,
		Logger:         logger,
	}
}

// ListPosts returns every post in the order it was created
func (s *PostService) ListPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	dtos := make([]*postPort.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, toDTO(p))
	}
	return dtos, nil
}

// GetPost returns postEntity.ErrPostNotFound for unknown ids.
func (s *PostService) GetPost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// CreatePost stores a new post. Empty username or content is accepted.
func (s *PostService) CreatePost(ctx context.Context, username, content string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.Create(ctx, username, content)
	if err != nil {
		s.Logger.Error("failed to create post", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.Logger.Info("post created", zap.String("id", p.ID.String()), zap.String("username", p.Username))
	return toDTO(p), nil
}

// UpdatePostContent replaces the content of a post, leaving id and username alone.
func (s *PostService) UpdatePostContent(ctx context.Context, id, content string) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.UpdateContent(ctx, id, content)
	if err != nil {
		if errors.Is(err, postEntity.ErrPostNotFound) {
			s.Logger.Warn("update of unknown post ignored", zap.String("id", id))
			return nil, err
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.Logger.Info("post updated",
		zap.String("id", p.ID.String()),
		zap.String("username", p.Username),
		zap.String("content", p.Content),
	)
	return toDTO(p), nil
}

// SeedPosts writes seeds only when the store is still empty and reports how many were written.
func (s *PostService) SeedPosts(ctx context.Context, seeds []postPort.SeedPost) (int, error) {
	n, err := s.PostRepository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	if n > 0 {
		s.Logger.Info("store already has posts, skipping seed", zap.Int64("count", n))
		return 0, nil
	}

	for i, seed := range seeds {
		if _, err := s.PostRepository.Create(ctx, seed.Username, seed.Content); err != nil {
			return i, fmt.Errorf("failed to seed post %d: %w", i, err)
		}
	}
	s.Logger.Info("seeded demo posts", zap.Int("count", len(seeds)))
	return len(seeds), nil
}

func toDTO(p *postEntity.Post) *postPort.PostDTO {
	return &postPort.PostDTO{
		ID:        p.ID.String(),
		Username:  p.Username,
		Content:   p.Content,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}
