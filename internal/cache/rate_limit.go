package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

const searchRateLimitPrefix = "ratelimit:search:"

type RateLimitResult struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// RateLimiter counts requests per client in fixed one-minute windows.
type RateLimiter struct {
	client    *redisv9.Client
	perMinute int64
	window    time.Duration
	now       func() time.Time
}

func NewRateLimiter(client *redisv9.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		client:    client,
		perMinute: int64(perMinute),
		window:    time.Minute,
		now:       time.Now,
	}
}

// Allow records one request for clientKey. A limit of zero or less disables
// limiting. Redis errors are returned alongside an allowing result so the
// caller can fail open.
func (l *RateLimiter) Allow(ctx context.Context, clientKey string) (*RateLimitResult, error) {
	if l.perMinute <= 0 || l.client == nil {
		return &RateLimitResult{Allowed: true, Remaining: -1}, nil
	}

	now := l.now()
	windowStart := now.Truncate(l.window)
	key := fmt.Sprintf("%s%s:%d", searchRateLimitPrefix, hashClientKey(clientKey), windowStart.Unix())

	var incr *redisv9.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.window+5*time.Second)
		return nil
	})
	if err != nil {
		return &RateLimitResult{Allowed: true, Remaining: l.perMinute}, fmt.Errorf("redis rate limit failed: %w", err)
	}

	count := incr.Val()
	remaining := l.perMinute - count
	if remaining < 0 {
		remaining = 0
	}
	result := &RateLimitResult{
		Allowed:   count <= l.perMinute,
		Remaining: remaining,
	}
	if !result.Allowed {
		result.RetryAfter = windowStart.Add(l.window).Sub(now)
	}
	return result, nil
}

// hashClientKey keeps raw client addresses out of redis.
func hashClientKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:8])
}
