package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/feed-service/internal/observability"
	"github.com/spec-kit/feed-service/internal/worker"
)

// MetricsHandler exposes the in-memory counters and recent audit entries.
type MetricsHandler struct {
	metrics *observability.Metrics
	audit   *worker.AuditWorker
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metrics *observability.Metrics, audit *worker.AuditWorker) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, audit: audit}
}

// Snapshot handles GET /metrics.
func (h *MetricsHandler) Snapshot(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	body := fiber.Map{
		"requests": requests,
		"errors":   errs,
	}
	if h.audit != nil {
		body["recent_deletions"] = h.audit.RecentDeletions()
	}
	return c.JSON(body)
}
