package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is the shared-store variant for horizontally scaled
// deployments, where a per-process table would undercount. It keeps one
// sorted set per identity scored by request time in unix nanos.
type RedisLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	onError     func(err error)
}

// NewRedisLimiter creates a Redis-backed sliding-window limiter. onError is
// invoked (if non-nil) whenever Redis fails; the limiter then fails open.
func NewRedisLimiter(client *redis.Client, maxRequests int, window time.Duration, onError func(err error)) *RedisLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		onError:     onError,
	}
}

func (l *RedisLimiter) key(identity string) string {
	return "chatbot:ratelimit:" + identity
}

// IsAllowed trims instants outside the window, counts the rest and records
// the new request only when under the limit. The trim and count run in one
// pipeline; the small race between count and add is acceptable for
// throttling purposes.
func (l *RedisLimiter) IsAllowed(ctx context.Context, identity string) bool {
	key := l.key(identity)
	now := time.Now()
	cutoff := now.Add(-l.window).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		l.reportError(err)
		return true
	}

	if countCmd.Val() >= int64(l.maxRequests) {
		return false
	}

	pipe = l.client.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.reportError(err)
	}
	return true
}

func (l *RedisLimiter) reportError(err error) {
	if l.onError != nil {
		l.onError(err)
	}
}
