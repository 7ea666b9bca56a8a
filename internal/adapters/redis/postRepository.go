package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"postboard/internal/core/post"

	"github.com/go-redis/redis/v8"
	"github.com/gofrs/uuid"
)

const (
	orderKey  = "posts:order"
	postKeyNS = "post:"
)

// createScript appends a post unless its key is taken; returns 0 on collision.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("HSET", KEYS[2], "id", ARGV[1], "username", ARGV[2], "content", ARGV[3], "created_at", ARGV[4], "updated_at", ARGV[4])
redis.call("RPUSH", KEYS[1], ARGV[1])
return 1
`)

// updateScript overwrites content of an existing post; returns 0 when absent.
var updateScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return 0
end
redis.call("HSET", KEYS[1], "content", ARGV[1], "updated_at", ARGV[2])
return 1
`)

// PostRepositoryRedis keeps the id order in a list and each post in a hash.
type PostRepositoryRedis struct {
	Client *redis.Client
	now    func() time.Time
}

func NewPostRepositoryRedis(client *redis.Client) *PostRepositoryRedis {
	return &PostRepositoryRedis{
		Client: client,
		now:    time.Now,
	}
}

func postKey(id string) string {
	return postKeyNS + id
}

func (r *PostRepositoryRedis) List(ctx context.Context) ([]*post.Post, error) {
	ids, err := r.Client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}

	cmds := make([]*redis.StringStringMapCmd, len(ids))
	_, err = r.Client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, postKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	posts := make([]*post.Post, 0, len(ids))
	for i, cmd := range cmds {
		p, err := decodePost(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("decode post %s: %w", ids[i], err)
		}
		p.Seq = uint64(i + 1)
		posts = append(posts, p)
	}
	return posts, nil
}

func (r *PostRepositoryRedis) FindByID(ctx context.Context, id string) (*post.Post, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, post.ErrPostNotFound
	}

	fields, err := r.Client.HGetAll(ctx, postKey(uid.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, post.ErrPostNotFound
	}
	return decodePost(fields)
}

func (r *PostRepositoryRedis) Create(ctx context.Context, username, content string) (*post.Post, error) {
	now := r.now()
	for {
		id := post.NewID()
		ok, err := createScript.Run(ctx, r.Client,
			[]string{orderKey, postKey(id.String())},
			id.String(), username, content, formatTime(now),
		).Int()
		if err != nil {
			return nil, fmt.Errorf("create post: %w", err)
		}
		if ok == 0 {
			continue
		}
		return &post.Post{
			ID:        id,
			Username:  username,
			Content:   content,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
}

func (r *PostRepositoryRedis) UpdateContent(ctx context.Context, id, content string) (*post.Post, error) {
	uid, err := uuid.FromString(id)
	if err != nil {
		return nil, post.ErrPostNotFound
	}

	ok, err := updateScript.Run(ctx, r.Client,
		[]string{postKey(uid.String())},
		content, formatTime(r.now()),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	if ok == 0 {
		return nil, post.ErrPostNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostRepositoryRedis) Count(ctx context.Context) (int64, error) {
	n, err := r.Client.LLen(ctx, orderKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func decodePost(fields map[string]string) (*post.Post, error) {
	id, err := uuid.FromString(fields["id"])
	if err != nil {
		return nil, err
	}
	createdAt, err := parseTime(fields["created_at"])
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(fields["updated_at"])
	if err != nil {
		return nil, err
	}
	return &post.Post{
		ID:        id,
		Username:  fields["username"],
		Content:   fields["content"],
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func formatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano(), 10)
}

func parseTime(s string) (time.Time, error) {
	ns, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, ns), nil
}
