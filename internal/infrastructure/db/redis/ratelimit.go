package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window counter backed by Redis.
// Key format: ratelimit:<name>:<caller_key>
type RateLimiter struct {
	client *redis.Client
	name   string
	limit  int
	window time.Duration
}

// NewRateLimiter creates a limiter allowing limit calls per window for each
// distinct caller key.
func NewRateLimiter(client *redis.Client, name string, limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, name: name, limit: limit, window: window}
}

// Allow increments the caller's window counter and reports whether the call is
// within the limit. The first hit in a window sets the key's expiry.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", l.name, key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}
