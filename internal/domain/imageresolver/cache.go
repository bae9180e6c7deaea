package imageresolver

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoises resolved URLs per (source, thumbnail) pair. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, url string)
}

// CacheKey builds the canonical cache key for a resolution request.
func CacheKey(source string, thumbnail bool) string {
	return fmt.Sprintf("%s|thumb=%t", source, thumbnail)
}

type lruEntry struct {
	key string
	url string
}

// lruCache is a bounded last-recently-used cache. Bounding replaces the
// original unbounded session map, which grew without limit in long sessions.
type lruCache struct {
	capacity int
	mutex    sync.Mutex
	order    *list.List
	items    map[string]*list.Element
}

// NewLRUCache creates a bounded in-memory resolution cache.
func NewLRUCache(capacity int) Cache {
	if capacity <= 0 {
		capacity = 512
	}
	return &lruCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func (c *lruCache) Get(key string) (string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*lruEntry).url, true
}

func (c *lruCache) Set(key, url string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*lruEntry).url = url
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, url: url})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*lruEntry).key)
		}
	}
}

// redisCache shares resolution results across server instances. Misses and
// backend errors degrade to a cache miss, never to a resolution failure.
type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed resolution cache.
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) Cache {
	if prefix == "" {
		prefix = "imageresolver:"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *redisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return url, true
}

func (c *redisCache) Set(key, url string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_ = c.client.Set(ctx, c.prefix+key, url, c.ttl).Err()
}
