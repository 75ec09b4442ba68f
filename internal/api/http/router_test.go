package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/feed-service/internal/api/http"
	"github.com/spec-kit/feed-service/internal/api/http/handlers"
	"github.com/spec-kit/feed-service/internal/auth"
	"github.com/spec-kit/feed-service/internal/config"
	"github.com/spec-kit/feed-service/internal/domain"
	"github.com/spec-kit/feed-service/internal/events"
	"github.com/spec-kit/feed-service/internal/observability"
	"github.com/spec-kit/feed-service/internal/repository"
	"github.com/spec-kit/feed-service/internal/service"
	"github.com/spec-kit/feed-service/internal/worker"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, repository.PostRepository) {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	auditWorker := worker.NewAuditWorker(logger)
	auditWorker.Register(dispatcher)

	postRepo := repository.NewMemoryPostRepository(repository.SeedPosts(25, time.Now()))
	userRepo := repository.NewStaticUserRepository(repository.SeedUsers())

	tokens := auth.NewTokenManager(testSecret, time.Hour)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	})

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024})
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("feed-service", "test", postRepo, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Feed:           handlers.NewFeedHandler(service.NewFeedService(postRepo)),
		Posts:          handlers.NewPostsHandler(service.NewPostService(postRepo, dispatcher)),
		Metrics:        handlers.NewMetricsHandler(metrics, auditWorker),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		RateLimit:      config.RateLimitConfig{LoginMax: 5, LoginWindowSeconds: 60},
	})
	return app, postRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*nethttp.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func login(t *testing.T, app *fiber.App, id string) string {
	t.Helper()
	resp, body := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{"id": id})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode, "login body: %s", body)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func errorMessage(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Error
}

func TestLogin_UnknownID(t *testing.T) {
	app, _ := newTestApp(t)
	resp, body := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{"id": "ghost"})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid user ID", errorMessage(t, body))
}

func TestLogin_InvalidPayload(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(nethttp.MethodPost, "/login", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestLogin_RateLimited(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < 5; i++ {
		resp, _ := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{"id": "u1"})
		require.Equal(t, nethttp.StatusOK, resp.StatusCode, "request %d should pass the limiter", i+1)
	}

	resp, body := doJSON(t, app, nethttp.MethodPost, "/login", "", map[string]string{"id": "u1"})
	assert.Equal(t, nethttp.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many login attempts. Try again later.", errorMessage(t, body))
}

// The gate must answer 401 for a missing or unverifiable credential before it
// ever considers roles; 403 is reserved for a valid token with the wrong role.
func TestAccessGate_Ordering(t *testing.T) {
	app, _ := newTestApp(t)

	// no Authorization header
	resp, body := doJSON(t, app, nethttp.MethodDelete, "/posts/p1", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Missing or invalid Bearer token provided.", errorMessage(t, body))

	// malformed header
	req := httptest.NewRequest(nethttp.MethodDelete, "/posts/p1", nil)
	req.Header.Set("Authorization", "Token abc")
	rawResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, rawResp.StatusCode)

	// tampered token on an admin-only route must read as 401, not 403
	userToken := login(t, app, "u1")
	tampered := userToken[:len(userToken)-2] + "xx"
	resp, body = doJSON(t, app, nethttp.MethodDelete, "/posts/p1", tampered, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid token", errorMessage(t, body))

	// valid token, wrong role
	resp, body = doJSON(t, app, nethttp.MethodDelete, "/posts/p1", userToken, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", errorMessage(t, body))
}

func TestAdminFlow(t *testing.T) {
	app, repo := newTestApp(t)

	token := login(t, app, "u2")
	claims, err := auth.NewTokenManager(testSecret, time.Hour).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	// first page: ten newest posts in descending time order
	resp, body := doJSON(t, app, nethttp.MethodGet, "/feed?skip=0&limit=10", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var page []domain.Post
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page, 10)
	for i, post := range page {
		assert.Equal(t, fmt.Sprintf("p%d", i+1), post.ID)
		if i > 0 {
			assert.True(t, post.Created.Before(page[i-1].Created))
		}
	}

	// delete p1
	resp, body = doJSON(t, app, nethttp.MethodDelete, "/posts/p1", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Post p1 deleted.", out.Message)

	// p1 never appears again
	resp, body = doJSON(t, app, nethttp.MethodGet, "/feed?skip=0&limit=25", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page, 24)
	for _, post := range page {
		assert.NotEqual(t, "p1", post.ID)
	}
	assert.Equal(t, 24, repo.Count(context.Background()))
}

func TestUserCannotDelete(t *testing.T) {
	app, repo := newTestApp(t)

	token := login(t, app, "u1")
	resp, body := doJSON(t, app, nethttp.MethodDelete, "/posts/p2", token, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", errorMessage(t, body))
	assert.Equal(t, 25, repo.Count(context.Background()), "store must be unchanged")
}

func TestDeleteMissingPost(t *testing.T) {
	app, _ := newTestApp(t)

	token := login(t, app, "u2")
	resp, body := doJSON(t, app, nethttp.MethodDelete, "/posts/p99", token, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", errorMessage(t, body))
}

func TestFeed_PaginationDefaultsAndClipping(t *testing.T) {
	app, _ := newTestApp(t)
	token := login(t, app, "u1")

	// short last page
	resp, body := doJSON(t, app, nethttp.MethodGet, "/feed?skip=20&limit=10", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var page []domain.Post
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page, 5)

	// junk parameters degrade to defaults, never fail
	resp, body = doJSON(t, app, nethttp.MethodGet, "/feed?skip=abc&limit=-5", token, nil)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page, 10)
	assert.Equal(t, "p1", page[0].ID)
}

func TestFeed_RequiresAuth(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := doJSON(t, app, nethttp.MethodGet, "/feed?skip=0&limit=10", "", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, nethttp.MethodGet, "/health/live", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, nethttp.MethodGet, "/metrics", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var metrics struct {
		Requests map[string]int64 `json:"requests"`
	}
	require.NoError(t, json.Unmarshal(body, &metrics))
}
