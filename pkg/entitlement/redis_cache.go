package entitlement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares resolved snapshots across application instances.
// Failures degrade to cache misses: a broken Redis never blocks resolution.
type redisCache struct {
	client *redis.Client
	prefix string
}

// DefaultRedisKeyPrefix namespaces snapshot keys in a shared Redis.
const DefaultRedisKeyPrefix = "entitlement:snapshot:"

// NewRedisCache returns a SnapshotCache backed by the given Redis client.
// An empty prefix falls back to DefaultRedisKeyPrefix.
func NewRedisCache(client *redis.Client, prefix string) SnapshotCache {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) Get(ctx context.Context, planID string) (Snapshot, bool) {
	data, err := c.client.Get(ctx, c.prefix+planID).Bytes()
	if err != nil {
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt entry: drop it so the next resolution repopulates.
		c.client.Del(ctx, c.prefix+planID)
		return Snapshot{}, false
	}
	return snap, true
}

func (c *redisCache) Set(ctx context.Context, planID string, snap Snapshot, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+planID, data, ttl)
}

func (c *redisCache) Delete(ctx context.Context, planID string) {
	c.client.Del(ctx, c.prefix+planID)
}

func (c *redisCache) Close() error {
	// The client is owned by the caller.
	return nil
}
