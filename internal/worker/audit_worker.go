package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/feed-service/internal/events"
)

const maxRecentDeletions = 50

// DeletionRecord captures one audited deletion.
type DeletionRecord struct {
	PostID    string    `json:"post_id"`
	DeletedBy string    `json:"deleted_by"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditWorker consumes domain events and writes structured audit log lines.
// It keeps a bounded in-memory tail of deletions for the metrics endpoint.
type AuditWorker struct {
	logger *zap.Logger

	mu        sync.Mutex
	deletions []DeletionRecord
}

// NewAuditWorker constructs the worker.
func NewAuditWorker(logger *zap.Logger) *AuditWorker {
	return &AuditWorker{logger: logger}
}

// Register subscribes the worker to the dispatcher.
func (w *AuditWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventUserLoggedIn, w.onUserLoggedIn)
	dispatcher.Subscribe(events.EventPostDeleted, w.onPostDeleted)
}

func (w *AuditWorker) onUserLoggedIn(ctx context.Context, event events.Event) error {
	w.logger.Info("audit: user logged in",
		zap.String("event_id", event.ID),
		zap.String("user_id", event.Actor.UserID),
		zap.String("role", string(event.Actor.Role)),
	)
	return nil
}

func (w *AuditWorker) onPostDeleted(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.PostDeletedPayload)

	w.logger.Info("audit: post deleted",
		zap.String("event_id", event.ID),
		zap.String("post_id", payload.PostID),
		zap.String("deleted_by", event.Actor.UserID),
	)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.deletions = append(w.deletions, DeletionRecord{
		PostID:    payload.PostID,
		DeletedBy: event.Actor.UserID,
		Timestamp: event.Timestamp,
	})
	if len(w.deletions) > maxRecentDeletions {
		w.deletions = w.deletions[len(w.deletions)-maxRecentDeletions:]
	}
	return nil
}

// RecentDeletions returns a copy of the audited deletion tail.
func (w *AuditWorker) RecentDeletions() []DeletionRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]DeletionRecord, len(w.deletions))
	copy(out, w.deletions)
	return out
}
