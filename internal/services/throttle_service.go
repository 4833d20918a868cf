package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisThrottle counts code sends per phone in a rolling window.
// Keys expire with the window, so there is nothing to clean up.
type RedisThrottle struct {
	Client *redis.Client
	Window time.Duration
	Max    int
}

func NewRedisThrottle(client *redis.Client, window time.Duration, max int) *RedisThrottle {
	return &RedisThrottle{Client: client, Window: window, Max: max}
}

func (t *RedisThrottle) Allow(phone string) (bool, error) {
	ctx := context.Background()
	key := "verify:sends:" + phone

	n, err := t.Client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := t.Client.Expire(ctx, key, t.Window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(t.Max), nil
}
