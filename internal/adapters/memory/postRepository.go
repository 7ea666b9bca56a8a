package memory

import (
	"context"
	"sync"
	"time"

	"postboard/internal/core/post"

	"github.com/gofrs/uuid"
)

// PostRepositoryMemory keeps posts in process memory, in insertion order.
// Callers always receive copies, never the stored records.
type PostRepositoryMemory struct {
	mu    sync.RWMutex
	posts []*post.Post
	index map[uuid.UUID]int
	now   func() time.Time
}

// NewPostRepositoryMemory returns an empty store.
func NewPostRepositoryMemory() *PostRepositoryMemory {
	return &PostRepositoryMemory{
		index: make(map[uuid.UUID]int),
		now:   time.Now,
	}
}

func (repo *PostRepositoryMemory) List(ctx context.Context) ([]*post.Post, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	posts := make([]*post.Post, 0, len(repo.posts))
	for _, p := range repo.posts {
		posts = append(posts, clone(p))
	}
	return posts, nil
}

func (repo *PostRepositoryMemory) FindByID(ctx context.Context, id string) (*post.Post, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, post.ErrPostNotFound
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	i, ok := repo.index[uid]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	return clone(repo.posts[i]), nil
}

func (repo *PostRepositoryMemory) Create(ctx context.Context, username, content string) (*post.Post, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id := post.NewID()
	for {
		if _, taken := repo.index[id]; !taken {
			break
		}
		id = post.NewID()
	}

	now := repo.now()
	p := &post.Post{
		Seq:       uint64(len(repo.posts) + 1),
		ID:        id,
		Username:  username,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.index[id] = len(repo.posts)
	repo.posts = append(repo.posts, p)
	return clone(p), nil
}

func (repo *PostRepositoryMemory) UpdateContent(ctx context.Context, id, content string) (*post.Post, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, post.ErrPostNotFound
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	i, ok := repo.index[uid]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	p := repo.posts[i]
	p.Content = content
	p.UpdatedAt = repo.now()
	return clone(p), nil
}

func (repo *PostRepositoryMemory) Count(ctx context.Context) (int64, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return int64(len(repo.posts)), nil
}

func clone(p *post.Post) *post.Post {
	c := *p
	return &c
}
