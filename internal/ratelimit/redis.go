package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter implements Limiter on a Redis instance. Redis offers an atomic
// SET NX EX, so unlike a plain check-then-set store two concurrent requests
// cannot both be granted within the same window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter. Prefix may be empty.
func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "rate:"
	}
	return &RedisLimiter{client: client, prefix: prefix}
}

func (l *RedisLimiter) TryAcquire(ctx context.Context, key string, cooldown time.Duration) (bool, error) {
	ttl := cooldown
	if ttl < MinTTL {
		ttl = MinTTL
	}
	ok, err := l.client.SetNX(ctx, l.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
