// Package cache keeps slot listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SlotCache stores listings under a per-business version. Invalidate bumps
// the version so every older entry stops being read and expires on its TTL.
// A nil client turns every call into a miss.
type SlotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSlotCache(rdb *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SlotCache{rdb: rdb, ttl: ttl}
}

func versionKey(businessID uint) string {
	return fmt.Sprintf("slots:v:%d", businessID)
}

func entryKey(businessID uint, version, key string) string {
	return fmt.Sprintf("slots:%d:%s:%s", businessID, version, key)
}

// Version returns the current listing version of a business. One listing
// must read and write back under the same version, so a write that raced an
// Invalidate lands on a key nobody reads.
func (c *SlotCache) Version(ctx context.Context, businessID uint) (string, error) {
	if c == nil || c.rdb == nil {
		return "", nil
	}
	v, err := c.rdb.Get(ctx, versionKey(businessID)).Result()
	if err == redis.Nil {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (c *SlotCache) Get(ctx context.Context, businessID uint, version, key string, dst any) (bool, error) {
	if c == nil || c.rdb == nil || version == "" {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, entryKey(businessID, version, key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, fmt.Errorf("decode cached slots: %w", err)
	}
	return true, nil
}

func (c *SlotCache) Set(ctx context.Context, businessID uint, version, key string, v any) error {
	if c == nil || c.rdb == nil || version == "" {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, entryKey(businessID, version, key), string(data), c.ttl).Err()
}

func (c *SlotCache) Invalidate(ctx context.Context, businessID uint) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, versionKey(businessID)).Err()
}
