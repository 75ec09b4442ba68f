package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/feed-service/internal/api/http/handlers"
	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/config"
	"github.com/spec-kit/feed-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Feed           *handlers.FeedHandler
	Posts          *handlers.PostsHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimit      config.RateLimitConfig
	LimiterStorage fiber.Storage
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	app.Post("/login", loginLimiter(cfg.RateLimit, cfg.LimiterStorage), cfg.Auth.Login)

	feed := app.Group("/feed", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleUser, domain.RoleAdmin))
	feed.Get("/", cfg.Feed.List)

	posts := app.Group("/posts", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	posts.Delete("/:id", cfg.Posts.Delete)
}

// loginLimiter bounds login attempts per source address. Excess requests get
// a fixed error body instead of the normal 401 path.
func loginLimiter(cfg config.RateLimitConfig, storage fiber.Storage) fiber.Handler {
	max := cfg.LoginMax
	if max <= 0 {
		max = 5
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: cfg.LoginWindow(),
		Storage:    storage,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many login attempts. Try again later.",
			})
		},
	})
}
