package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisReviewCache remembers which orders already received a review so a
// duplicate is rejected even after the in-memory store was reset.
type RedisReviewCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisReviewCache(client *redis.Client, ttl time.Duration) *RedisReviewCache {
	return &RedisReviewCache{Client: client, TTL: ttl}
}

func (c *RedisReviewCache) ReviewMarkerKey(orderID string) string {
	return "review:order:" + orderID
}

func (c *RedisReviewCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisReviewCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}
