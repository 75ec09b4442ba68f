package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/feed-service/internal/api/http"
	"github.com/spec-kit/feed-service/internal/api/http/handlers"
	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/config"
	"github.com/spec-kit/feed-service/internal/events"
	"github.com/spec-kit/feed-service/internal/observability"
	"github.com/spec-kit/feed-service/internal/persistence"
	"github.com/spec-kit/feed-service/internal/repository"
	"github.com/spec-kit/feed-service/internal/service"
	"github.com/spec-kit/feed-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	auditWorker := worker.NewAuditWorker(logger)
	auditWorker.Register(dispatcher)

	postRepo := repository.NewMemoryPostRepository(repository.SeedPosts(cfg.Feed.SeedCount, time.Now()))
	userRepo := repository.NewStaticUserRepository(repository.SeedUsers())

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})
	feedService := service.NewFeedService(postRepo)
	postService := service.NewPostService(postRepo, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(tokens, logger)

	var redis *persistence.Redis
	var limiterStorage fiber.Storage
	if cfg.Redis.Addr != "" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		limiterStorage = redis.LimiterStorage()
	}

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postRepo, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Feed:           handlers.NewFeedHandler(feedService),
		Posts:          handlers.NewPostsHandler(postService),
		Metrics:        handlers.NewMetricsHandler(metrics, auditWorker),
		AuthMiddleware: authMiddleware,
		RateLimit:      cfg.RateLimit,
		LimiterStorage: limiterStorage,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
