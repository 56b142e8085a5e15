// Package cache is a TTL key-value store used as a read-through cache for
// list endpoints. It talks to an external Redis when an address is configured,
// otherwise it starts an embedded in-process store so a single-node deployment
// needs no extra service.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = errors.New("cache key not found")

type Cache struct {
	client   *redis.Client
	embedded *miniredis.Miniredis
}

// New connects to Redis at addr, or starts an embedded store when addr is empty.
func New(addr string) (*Cache, error) {
	c := &Cache{}

	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("miniredis.Run -> %w", err)
		}

		c.embedded = mr
		addr = mr.Addr()
	}

	c.client = redis.NewClient(&redis.Options{Addr: addr})

	return c, nil
}

func (c *Cache) GetJSON(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrKeyNotFound
		}

		return fmt.Errorf("c.client.Get -> %w", err)
	}

	if err = json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("json.Unmarshal -> %w", err)
	}

	return nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	if err = c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("c.client.Set -> %w", err)
	}

	return nil
}

// Delete invalidates keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("c.client.Del -> %w", err)
	}

	return nil
}

// DeletePrefix invalidates every key matching prefix*.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("c.client.Del -> %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("iter.Err -> %w", err)
	}

	return nil
}

func (c *Cache) Close() error {
	err := c.client.Close()
	if c.embedded != nil {
		c.embedded.Close()
	}

	return err
}
