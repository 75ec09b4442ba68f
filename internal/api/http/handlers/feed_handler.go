package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feed-service/internal/service"
)

// FeedHandler serves paginated feed pages.
type FeedHandler struct {
	feed *service.FeedService
}

// NewFeedHandler constructs handler.
func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feed: feedService}
}

// List handles GET /feed?skip=&limit=. Bad pagination input degrades to the
// defaults instead of failing; the response is always a JSON array.
func (h *FeedHandler) List(c *fiber.Ctx) error {
	req := service.ParsePageRequest(c.Query("skip"), c.Query("limit"))
	page := h.feed.Page(c.Context(), req)
	return c.JSON(page)
}
