package feedclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spec-kit/feed-service/internal/domain"
)

// FeedController owns the client-side feed state: the pages accumulated so
// far, loading/error flags and the has-more marker. It reconciles deletions
// against the loaded set without re-fetching.
//
// Concurrency policy: LoadMore single-flights — calls made while a fetch is
// in flight are no-ops. Refresh supersedes: it cancels any in-flight fetch
// and starts its own. A superseded or cancelled fetch is swallowed silently;
// it never surfaces as an error state.
type FeedController struct {
	client   *Client
	limit    int
	notifier Notifier

	mu      sync.Mutex
	posts   []domain.Post
	seen    map[string]struct{}
	loading bool
	errMsg  string
	hasMore bool
	page    int
	gen     uint64
	cancel  context.CancelFunc
}

// ControllerOption customizes the controller.
type ControllerOption func(*FeedController)

// WithPageLimit overrides the page size (default 10).
func WithPageLimit(limit int) ControllerOption {
	return func(c *FeedController) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// WithNotifier attaches a notification observer.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *FeedController) { c.notifier = n }
}

// NewFeedController builds a controller over the given client.
func NewFeedController(client *Client, opts ...ControllerOption) *FeedController {
	c := &FeedController{
		client:  client,
		limit:   10,
		seen:    make(map[string]struct{}),
		hasMore: true,
		page:    -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Posts returns a copy of the accumulated posts in server order.
func (c *FeedController) Posts() []domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Loading reports whether a fetch is in flight.
func (c *FeedController) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasMore reports whether another page may exist.
func (c *FeedController) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Err returns the last fetch error message, empty when healthy.
func (c *FeedController) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// LoadMore fetches the next page and appends it, preserving server order and
// dropping duplicate ids. No-op while loading or once the feed is exhausted.
func (c *FeedController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	next := c.page + 1
	fetchCtx, myGen := c.beginFetch(ctx)
	c.mu.Unlock()

	page, err := c.client.Feed(fetchCtx, next*c.limit, c.limit, false)

	c.mu.Lock()
	if c.gen != myGen {
		// superseded by a refresh; its fetch owns the state now
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	c.clearCancelLocked()
	if err != nil {
		c.mu.Unlock()
		return c.fetchFailed(err, "Failed to load more posts")
	}
	c.appendLocked(page)
	c.page = next
	c.hasMore = len(page) == c.limit
	total := len(c.posts)
	c.mu.Unlock()

	c.notify(Notification{
		Type:    NotifyPostsLoaded,
		Message: fmt.Sprintf("Loaded %d posts (%d total)", len(page), total),
	})
	return nil
}

// Refresh discards the accumulated posts and re-fetches page zero, bypassing
// the response cache. Any in-flight fetch is cancelled and swallowed.
func (c *FeedController) Refresh(ctx context.Context) error {
	c.mu.Lock()
	fetchCtx, myGen := c.beginFetch(ctx)
	c.mu.Unlock()

	page, err := c.client.Feed(fetchCtx, 0, c.limit, true)

	c.mu.Lock()
	if c.gen != myGen {
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	c.clearCancelLocked()
	if err != nil {
		c.mu.Unlock()
		return c.fetchFailed(err, "Failed to refresh feed")
	}
	c.posts = nil
	c.seen = make(map[string]struct{})
	c.appendLocked(page)
	c.page = 0
	c.hasMore = len(page) == c.limit
	c.mu.Unlock()

	c.notify(Notification{Type: NotifyFeedRefreshed, Message: "Feed refreshed"})
	return nil
}

// DeletePost issues the authorized deletion and, on success, filters the id
// out of the accumulated posts. Offsets are not renumbered and nothing is
// re-fetched; cached feed pages are invalidated since they no longer match
// the server. A failed delete leaves the accumulated posts untouched.
func (c *FeedController) DeletePost(ctx context.Context, id string) error {
	if err := c.client.DeletePost(ctx, id); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		c.notify(Notification{Type: NotifyDeleteFailed, Message: "Failed to delete post", Err: err})
		return err
	}

	c.mu.Lock()
	filtered := c.posts[:0]
	for _, post := range c.posts {
		if post.ID != id {
			filtered = append(filtered, post)
		}
	}
	c.posts = filtered
	delete(c.seen, id)
	c.mu.Unlock()

	c.client.Cache().InvalidateResource("/feed")
	c.notify(Notification{Type: NotifyPostDeleted, Message: "Post deleted successfully"})
	return nil
}

// beginFetch marks the controller loading, cancels any superseded fetch and
// hands back the context and generation for the new one. Caller holds mu.
func (c *FeedController) beginFetch(ctx context.Context) (context.Context, uint64) {
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	c.errMsg = ""
	c.gen++
	return fetchCtx, c.gen
}

func (c *FeedController) clearCancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// appendLocked appends a page preserving order, skipping ids already loaded.
// Caller holds mu.
func (c *FeedController) appendLocked(page []domain.Post) {
	for _, post := range page {
		if _, dup := c.seen[post.ID]; dup {
			continue
		}
		c.seen[post.ID] = struct{}{}
		c.posts = append(c.posts, post)
	}
}

// fetchFailed records a genuine failure. Cancellation is not a failure: it is
// swallowed without touching the error state.
func (c *FeedController) fetchFailed(err error, message string) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	c.mu.Lock()
	c.errMsg = err.Error()
	c.mu.Unlock()
	c.notify(Notification{Type: NotifyLoadFailed, Message: message, Err: err})
	return err
}

func (c *FeedController) notify(n Notification) {
	if c.notifier != nil {
		c.notifier.Notify(n)
	}
}
