package events

import (
	"time"

	"github.com/spec-kit/feed-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn EventType = "user_logged_in"
	EventPostDeleted  EventType = "post_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// PostDeletedPayload payload.
type PostDeletedPayload struct {
	PostID string `json:"post_id"`
}
