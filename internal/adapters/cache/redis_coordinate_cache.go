package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"delivery-fee-service/internal/domain"
)

// Hash holding every cached coordinate; a single key keeps Len and
// Clear O(1) without SCAN.
const redisHashKey = "coordinates"

// RedisCoordinateCache stores resolved coordinates in a Redis hash,
// JSON-encoded per entry. Useful when several instances should share
// one coordinate cache.
type RedisCoordinateCache struct {
	client *redis.Client
}

func NewRedisCoordinateCache(client *redis.Client) *RedisCoordinateCache {
	return &RedisCoordinateCache{client: client}
}

func (c *RedisCoordinateCache) Get(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	raw, err := c.client.HGet(ctx, redisHashKey, key).Result()
	if err == redis.Nil {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("redis cache get %q: %w", key, err)
	}

	var coord domain.Coordinate
	if err := json.Unmarshal([]byte(raw), &coord); err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("redis cache decode %q: %w", key, err)
	}
	return coord, true, nil
}

func (c *RedisCoordinateCache) Put(ctx context.Context, key string, coord domain.Coordinate) error {
	raw, err := json.Marshal(coord)
	if err != nil {
		return fmt.Errorf("redis cache encode %q: %w", key, err)
	}

	if err := c.client.HSet(ctx, redisHashKey, key, raw).Err(); err != nil {
		return fmt.Errorf("redis cache put %q: %w", key, err)
	}
	return nil
}

func (c *RedisCoordinateCache) Len(ctx context.Context) (int, error) {
	n, err := c.client.HLen(ctx, redisHashKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis cache len: %w", err)
	}
	return int(n), nil
}

func (c *RedisCoordinateCache) Clear(ctx context.Context) (int, error) {
	n, err := c.client.HLen(ctx, redisHashKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis cache len before clear: %w", err)
	}

	if err := c.client.Del(ctx, redisHashKey).Err(); err != nil {
		return 0, fmt.Errorf("redis cache clear: %w", err)
	}
	return int(n), nil
}
