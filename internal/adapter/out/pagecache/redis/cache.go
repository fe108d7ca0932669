package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultPrefix = "yatube:page:"
	scanBatch     = 100
)

// PageCache shares rendered pages between server replicas. Every key is
// namespaced with prefix so Flush never touches foreign data.
type PageCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewPageCache(client *redis.Client, prefix string, ttl time.Duration) *PageCache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &PageCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	page, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return page, true, nil
}

func (c *PageCache) Set(ctx context.Context, key string, page []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, page, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Flush collects every key under the prefix before deleting any, since
// deleting while a SCAN is in progress may move the cursor past live keys.
func (c *PageCache) Flush(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	for len(keys) > 0 {
		n := min(len(keys), scanBatch)
		if err := c.client.Del(ctx, keys[:n]...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		keys = keys[n:]
	}
	return nil
}
