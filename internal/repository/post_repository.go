package repository

import (
	"context"
	"sync"

	"github.com/spec-kit/feed-service/internal/domain"
)

// PostRepository encapsulates post collection access. The collection is
// mutable by membership only; ordering of List is insertion order and carries
// no presentation guarantee.
type PostRepository interface {
	List(ctx context.Context) []domain.Post
	DeleteByID(ctx context.Context, id string) bool
	Count(ctx context.Context) int
}

type memoryPostRepository struct {
	mu    sync.RWMutex
	posts []domain.Post
}

// NewMemoryPostRepository instantiates an in-memory repository seeded with
// the given posts. The slice is copied so callers cannot alias the store.
func NewMemoryPostRepository(seed []domain.Post) PostRepository {
	posts := make([]domain.Post, len(seed))
	copy(posts, seed)
	return &memoryPostRepository{posts: posts}
}

// List returns a snapshot copy of all posts so concurrent deletions cannot
// tear a caller's iteration or sort.
func (r *memoryPostRepository) List(ctx context.Context) []domain.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

// DeleteByID removes the post with the matching id and reports whether a
// removal occurred. Missing ids are an idempotent no-op.
func (r *memoryPostRepository) DeleteByID(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, post := range r.posts {
		if post.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns the current number of posts.
func (r *memoryPostRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts)
}
