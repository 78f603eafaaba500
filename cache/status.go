// Package cache holds the optional Redis-backed status cache. The status
// endpoint is polled by every open dashboard; caching the per-date record
// list keeps Firestore reads bounded. Entries are short-lived and
// invalidated on every accepted submission for that date.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// StatusCache caches submission records per date.
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusCache creates a cache backed by the given Redis instance.
func NewStatusCache(addr, password string, db int, ttl time.Duration) *StatusCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &StatusCache{client: rdb, ttl: ttl}
}

func statusKey(date string) string {
	return fmt.Sprintf("status:%s", date)
}

// Get returns the cached records for a date, or ok=false on miss. Cache
// errors degrade to a miss; the caller falls through to the store.
func (c *StatusCache) Get(ctx context.Context, date string) ([]models.SubmissionRecord, bool) {
	raw, err := c.client.Get(ctx, statusKey(date)).Result()
	if err != nil {
		return nil, false
	}

	var records []models.SubmissionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, false
	}
	return records, true
}

// Set stores the records for a date. Errors are ignored; the cache is
// advisory.
func (c *StatusCache) Set(ctx context.Context, date string, records []models.SubmissionRecord) {
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	c.client.Set(ctx, statusKey(date), raw, c.ttl)
}

// Invalidate drops the cached records for a date.
func (c *StatusCache) Invalidate(ctx context.Context, date string) {
	c.client.Del(ctx, statusKey(date))
}

// Close releases the Redis connection.
func (c *StatusCache) Close() error {
	return c.client.Close()
}
