// Package redis tracks the total number of started conversations. The
// original deployment delegated this to a hosted hit-counter service;
// keeping the count in Redis removes that external dependency while
// preserving the count-once-per-conversation contract.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis key holding the conversation count.
const DefaultKey = "aiclone:conversations"

// Counter implements httpapi.ConversationCounter on Redis.
type Counter struct {
	client *redis.Client
	key    string
}

// NewCounter connects to Redis at the given URL and verifies the
// connection. An empty key selects DefaultKey.
func NewCounter(ctx context.Context, redisURL, key string) (*Counter, error) {
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	if key == "" {
		key = DefaultKey
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return &Counter{client: client, key: key}, nil
}

// NewCounterWithClient wraps an existing client (useful for testing).
func NewCounterWithClient(client *redis.Client, key string) *Counter {
	if key == "" {
		key = DefaultKey
	}
	return &Counter{client: client, key: key}
}

// Hit increments the conversation count and returns the new value.
func (c *Counter) Hit(ctx context.Context) (int64, error) {
	count, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return count, nil
}

// Value returns the current conversation count. A missing key is zero.
func (c *Counter) Value(ctx context.Context) (int64, error) {
	count, err := c.client.Get(ctx, c.key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}
	return count, nil
}

// Close releases the Redis connection.
func (c *Counter) Close() error {
	return c.client.Close()
}
