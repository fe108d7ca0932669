package inmemory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultSize = 512

// PageCache keeps rendered pages in process memory. Entries expire after
// ttl and the least recently used page is evicted once size is reached.
type PageCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewPageCache(size int, ttl time.Duration) *PageCache {
	if size <= 0 {
		size = DefaultSize
	}
	return &PageCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *PageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	page, ok := c.lru.Get(key)
	return page, ok, nil
}

func (c *PageCache) Set(_ context.Context, key string, page []byte) error {
	c.lru.Add(key, page)
	return nil
}

func (c *PageCache) Flush(_ context.Context) error {
	c.lru.Purge()
	return nil
}

func (c *PageCache) Len() int {
	return c.lru.Len()
}
