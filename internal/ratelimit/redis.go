package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window limiter backed by a shared Redis instance,
// so counts stay consistent across horizontally scaled replicas. The window
// is the key's TTL: the first request creates the key with an expiry, and the
// counter disappears with it.
type RedisLimiter struct {
	rdb    *redis.Client
	window time.Duration
	max    int
}

// NewRedisLimiter creates a Redis-backed limiter allowing max requests per
// client per window.
func NewRedisLimiter(rdb *redis.Client, window time.Duration, max int) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, window: window, max: max}
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow increments the client's counter and reports whether it is within the
// limit. Fails open: a Redis error allows the request rather than blocking
// legitimate traffic on an outage.
func (l *RedisLimiter) Allow(ctx context.Context, clientID string) bool {
	key := "ratelimit:" + clientID

	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("rate limit check failed, allowing request", "client", clientID, "error", err)
		return true
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			slog.Warn("rate limit expire failed", "client", clientID, "error", err)
		}
	}
	return n <= int64(l.max)
}
