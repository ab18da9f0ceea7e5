package entitlement

import (
	"context"
	"sync"
	"time"
)

// SnapshotCache stores resolved snapshots keyed by plan ID for the duration
// of a short TTL. Caching is always explicit: the resolver only caches when
// one is injected, and mutations to plan configuration must be followed by
// Delete (or Resolver.Invalidate).
type SnapshotCache interface {
	// Get retrieves a cached snapshot by plan ID.
	Get(ctx context.Context, planID string) (Snapshot, bool)

	// Set stores a snapshot with the given TTL.
	Set(ctx context.Context, planID string, snap Snapshot, ttl time.Duration)

	// Delete removes a cached snapshot.
	Delete(ctx context.Context, planID string)

	// Close releases any resources held by the cache.
	Close() error
}

type memoryCacheItem struct {
	snap      Snapshot
	expiresAt time.Time
}

// memoryCache is the default in-process cache with periodic expiry sweeps.
type memoryCache struct {
	mu     sync.RWMutex
	items  map[string]memoryCacheItem
	stop   chan struct{}
	done   chan struct{}
	closed bool
}

// cleanupInterval controls how often expired entries are swept. Expired
// entries are also rejected on read, so the sweep only bounds memory.
const cleanupInterval = time.Minute

// NewMemoryCache returns an in-memory SnapshotCache with background cleanup.
// Callers must Close it to stop the cleanup goroutine.
func NewMemoryCache() SnapshotCache {
	c := &memoryCache{
		items: make(map[string]memoryCacheItem),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

func (c *memoryCache) Get(_ context.Context, planID string) (Snapshot, bool) {
	c.mu.RLock()
	item, ok := c.items[planID]
	c.mu.RUnlock()

	if !ok || time.Now().After(item.expiresAt) {
		return Snapshot{}, false
	}
	return item.snap, true
}

func (c *memoryCache) Set(_ context.Context, planID string, snap Snapshot, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.items[planID] = memoryCacheItem{snap: snap, expiresAt: time.Now().Add(ttl)}
}

func (c *memoryCache) Delete(_ context.Context, planID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, planID)
}

func (c *memoryCache) Close() error {
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

func (c *memoryCache) cleanupLoop() {
	defer close(c.done)

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
