package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisLimiter keeps one counter per key per window in redis, so the window
// survives restarts and is shared across instances.
type RedisLimiter struct {
	client rueidis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(client rueidis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := fmt.Sprintf("%s:%s", r.prefix, key)

	count, err := r.client.Do(
		ctx,
		r.client.B().Incr().Key(counterKey).Build(),
	).AsInt64()
	if err != nil {
		return false, err
	}

	// First hit opens the window; the key expires with it.
	if count == 1 {
		if err := r.client.Do(
			ctx,
			r.client.B().Expire().Key(counterKey).Seconds(int64(r.window.Seconds())).Build(),
		).Error(); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}
