package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/feed-service/internal/domain"
	"github.com/spec-kit/feed-service/internal/events"
	"github.com/spec-kit/feed-service/internal/repository"
	"github.com/spec-kit/feed-service/pkg/util"
)

// PostService coordinates post mutations.
type PostService struct {
	posts      repository.PostRepository
	dispatcher events.Dispatcher
}

// NewPostService constructs the service.
func NewPostService(posts repository.PostRepository, dispatcher events.Dispatcher) *PostService {
	return &PostService{posts: posts, dispatcher: dispatcher}
}

// DeletePost removes the post with the given id. A missing id maps to a
// NotFound at the boundary; the underlying store treats it as a no-op.
func (s *PostService) DeletePost(ctx context.Context, actor *domain.User, id string) error {
	if !s.posts.DeleteByID(ctx, id) {
		return util.NewNotFound("Post not found")
	}

	if s.dispatcher != nil && actor != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPostDeleted,
			Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
			Timestamp: time.Now(),
			Payload:   events.PostDeletedPayload{PostID: id},
		})
	}
	return nil
}
