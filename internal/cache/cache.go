// Package cache wraps the Redis client with the small command set this
// service needs: JSON get/set with a TTL, and list append with a TTL.
//
// A nil *Cache is a functioning no-op: reads miss, writes are discarded.
// That is how the whole service degrades when Redis is unconfigured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	prefix string
}

func New(client *redis.Client, prefix string) *Cache {
	return &Cache{client: client, prefix: prefix}
}

func (c *Cache) key(k string) string {
	return fmt.Sprintf("%s:%s", c.prefix, k)
}

// GetJSON reads a key and unmarshals it into v. The boolean reports whether
// the key existed; a miss is not an error.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key with the given TTL. The TTL is
// refreshed on every write.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// PushJSON marshals v and prepends it to the list at key.
func (c *Cache) PushJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.LPush(ctx, c.key(key), data).Err(); err != nil {
		return fmt.Errorf("cache lpush %s: %w", key, err)
	}
	return nil
}

// Expire resets the TTL on key.
func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Expire(ctx, c.key(key), ttl).Err(); err != nil {
		return fmt.Errorf("cache expire %s: %w", key, err)
	}
	return nil
}
