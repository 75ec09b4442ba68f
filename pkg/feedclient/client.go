package feedclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/feed-service/internal/domain"
)

// APIError carries a non-2xx response back to the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to the feed service. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *ResponseCache
	logger     *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient substitutes the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache substitutes the response cache.
func WithCache(cache *ResponseCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger enables client-side logging.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithToken preloads a bearer token, e.g. one restored from a prior session.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		cache:      NewResponseCache(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Cache exposes the response cache for explicit invalidation.
func (c *Client) Cache() *ResponseCache {
	return c.cache
}

// Login authenticates by user id and stores the returned token. The decoded
// claims are for display only; role enforcement stays server-side.
func (c *Client) Login(ctx context.Context, id string) (*TokenInfo, error) {
	payload, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	info, err := DecodeToken(resp.Token)
	if err != nil {
		return nil, err
	}

	c.SetToken(resp.Token)
	c.logger.Debug("logged in", zap.String("user_id", info.ID), zap.String("role", string(info.Role)))
	return info, nil
}

// Feed fetches a page. Unless skipCache is set, a cached body for the same
// (skip, limit) is returned without touching the network; successful network
// responses refresh the cache entry.
func (c *Client) Feed(ctx context.Context, skip, limit int, skipCache bool) ([]domain.Post, error) {
	options := map[string]string{
		"skip":  strconv.Itoa(skip),
		"limit": strconv.Itoa(limit),
	}
	key := CacheKey("/feed", options)

	if !skipCache {
		if body, ok := c.cache.Get(key); ok {
			var posts []domain.Post
			if err := json.Unmarshal(body, &posts); err == nil {
				return posts, nil
			}
			// unreadable entry, drop it and fall through to the network
			c.cache.Invalidate(key)
		}
	}

	url := fmt.Sprintf("%s/feed?skip=%d&limit=%d", c.baseURL, skip, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var posts []domain.Post
	if err := json.Unmarshal(body, &posts); err != nil {
		return nil, err
	}
	c.cache.Set(key, body)
	return posts, nil
}

// DeletePost removes a post by id. Requires an admin token.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/posts/"+id, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil {
			apiErr.Message = errBody.Error
		}
		return nil, apiErr
	}
	return body, nil
}
