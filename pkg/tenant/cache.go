package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache stores resolved organizations between requests so the provider is
// not hit on every request of a session.
type Cache interface {
	// Get retrieves an organization from cache by key.
	Get(ctx context.Context, key string) (*Organization, bool)

	// Set stores an organization in cache with the given TTL.
	Set(ctx context.Context, key string, org *Organization, ttl time.Duration)

	// Delete removes an organization from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

type cacheItem struct {
	org       *Organization
	expiresAt time.Time
}

// inMemoryCache is the default in-memory cache with automatic cleanup.
type inMemoryCache struct {
	mu      sync.Mutex
	items   map[string]cacheItem
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

// DefaultCacheSize is the default maximum number of cached organizations.
const DefaultCacheSize = 1000

// NewInMemoryCache creates an in-memory cache with automatic cleanup.
func NewInMemoryCache() Cache {
	return NewInMemoryCacheWithSize(DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache with a size limit.
func NewInMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	c := &inMemoryCache{
		items:   make(map[string]cacheItem),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (*Organization, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return item.org, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, org *Organization, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	// Full and inserting a new key: drop one arbitrary entry. Entries are
	// short-lived, so plain eviction beats bookkeeping an LRU list.
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		for k := range c.items {
			delete(c.items, k)
			break
		}
	}

	c.items[key] = cacheItem{org: org, expiresAt: time.Now().Add(ttl)}
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *inMemoryCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

func (c *inMemoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noOpCache disables caching. Useful in tests.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (noOpCache) Get(ctx context.Context, key string) (*Organization, bool) { return nil, false }
func (noOpCache) Set(ctx context.Context, key string, org *Organization, ttl time.Duration) {
}
func (noOpCache) Delete(ctx context.Context, key string) {}
func (noOpCache) Close() error                           { return nil }
