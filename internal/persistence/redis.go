package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/feed-service/internal/config"
)

// Redis wraps the go-redis client. It backs the login rate limiter when
// configured; the service has no other external state.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

const limiterKeyPrefix = "ratelimit:"

// LimiterStorage adapts the client to fiber's Storage interface so the login
// limiter can share its window counters across replicas.
type LimiterStorage struct {
	client *redis.Client
}

// LimiterStorage returns a fiber.Storage backed by this connection.
func (r *Redis) LimiterStorage() *LimiterStorage {
	return &LimiterStorage{client: r.Client}
}

// Get retrieves a value. A missing key yields nil, nil per fiber's contract.
func (s *LimiterStorage) Get(key string) ([]byte, error) {
	val, err := s.client.Get(context.Background(), limiterKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores a value with the given expiration.
func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.client.Set(context.Background(), limiterKeyPrefix+key, val, exp).Err()
}

// Delete removes a key.
func (s *LimiterStorage) Delete(key string) error {
	return s.client.Del(context.Background(), limiterKeyPrefix+key).Err()
}

// Reset removes all limiter keys.
func (s *LimiterStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, limiterKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close is a no-op; the wrapped client is owned by Redis.
func (s *LimiterStorage) Close() error {
	return nil
}
