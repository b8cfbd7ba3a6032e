package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result reports the outcome of one hit against a fixed window.
type Result struct {
	Allowed    bool
	Count      int64
	Limit      int64
	RetryAfter time.Duration
}

// FixedWindow counts hits per key in redis. The window starts on the first hit.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

func NewFixedWindow(client *redis.Client, prefix string, limit int64, window time.Duration) *FixedWindow {
	return &FixedWindow{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (f *FixedWindow) Allow(ctx context.Context, key string) (Result, error) {
	k := fmt.Sprintf("ratelimit:%s:%s", f.prefix, key)

	count, err := f.client.Incr(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := f.client.Expire(ctx, k, f.window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	res := Result{Allowed: count <= f.limit, Count: count, Limit: f.limit}
	if res.Allowed {
		return res, nil
	}

	ttl, err := f.client.TTL(ctx, k).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read rate limit window: %w", err)
	}
	if ttl < 0 {
		// counter lost its expiry; restart the window
		if err := f.client.Expire(ctx, k, f.window).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to restart rate limit window: %w", err)
		}
		ttl = f.window
	}
	res.RetryAfter = ttl
	return res, nil
}
