package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ziwei/pkg/platform/sentinel"
)

const (
	chartKeyPrefix = "ziwei:chart:"
	recentListKey  = "ziwei:recent"
	recentListCap  = 64
)

// RedisCache shares computed charts across replicas. Payload expiry rides on
// the Redis TTL; the recent list holds keys and skips the ones whose payload
// has already lapsed.
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, chartKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return payload, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, chartKeyPrefix+key, payload, ttl)
	pipe.LRem(ctx, recentListKey, 0, key)
	pipe.LPush(ctx, recentListKey, key)
	pipe.LTrim(ctx, recentListKey, 0, recentListCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) Recent(ctx context.Context, n int) ([][]byte, error) {
	keys, err := c.client.LRange(ctx, recentListKey, 0, recentListCap-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis recent keys: %w", err)
	}

	out := make([][]byte, 0, n)
	for _, key := range keys {
		if len(out) >= n {
			break
		}
		payload, err := c.client.Get(ctx, chartKeyPrefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // payload expired out from under the list
		}
		if err != nil {
			return nil, fmt.Errorf("redis recent get: %w", err)
		}
		out = append(out, payload)
	}
	return out, nil
}
