package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisCache stores orders as JSON values keyed per order, with a staleness
// marker per invalidation tag. It backs the same contract the in-process
// cache does when several clients of one viewer share state.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache creates a RedisCache using the given client and key prefix.
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "ordertray"
	}
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) orderKey(orderID string) string {
	return fmt.Sprintf("%s:order:%s", c.prefix, orderID)
}

func (c *RedisCache) staleKey(tag string) string {
	return fmt.Sprintf("%s:stale:%s", c.prefix, tag)
}

// Invalidate marks the tag stale for every reader of this cache.
func (c *RedisCache) Invalidate(tag string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.rdb.Set(ctx, c.staleKey(tag), time.Now().UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("redis cache: invalidate %s: %w", tag, err)
	}
	return nil
}

// PatchOne overwrites individual fields of a cached order. A missing order is
// left absent; the next pull-based refresh fills it.
func (c *RedisCache) PatchOne(orderID string, fields map[string]any) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	raw, err := c.rdb.Get(ctx, c.orderKey(orderID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis cache: read order %s: %w", orderID, err)
	}

	var order map[string]any
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return fmt.Errorf("redis cache: decode order %s: %w", orderID, err)
	}
	for k, v := range fields {
		order[k] = v
	}
	return c.writeOrder(ctx, orderID, order)
}

// ReplaceOne replaces a cached order wholesale.
func (c *RedisCache) ReplaceOne(orderID string, order map[string]any) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return c.writeOrder(ctx, orderID, order)
}

func (c *RedisCache) writeOrder(ctx context.Context, orderID string, order map[string]any) error {
	encoded, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("redis cache: encode order %s: %w", orderID, err)
	}
	if err := c.rdb.Set(ctx, c.orderKey(orderID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("redis cache: write order %s: %w", orderID, err)
	}
	return nil
}
