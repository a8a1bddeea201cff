package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"melodie/internal/platform/metrics"
	"melodie/internal/platform/redis"
	"melodie/pkg/midds/codec"
)

// CachedStore is a read-through cache in front of a Store. Records are
// immutable once registered, so entries never need invalidation, only
// expiry.
type CachedStore struct {
	inner   Store
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, m *metrics.Metrics) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, metrics: m}
}

func cacheKey(kind codec.Kind, id uint64) string {
	return fmt.Sprintf("melodie:record:%s:%d", kind, id)
}

func (c *CachedStore) Save(ctx context.Context, record Record) error {
	if err := c.inner.Save(ctx, record); err != nil {
		return err
	}
	// Best effort; the store stays authoritative.
	if raw, err := json.Marshal(record); err == nil {
		c.client.Set(ctx, cacheKey(record.Kind, record.ID), raw, c.ttl)
	}
	return nil
}

func (c *CachedStore) Find(ctx context.Context, kind codec.Kind, id uint64) (Record, error) {
	raw, err := c.client.Get(ctx, cacheKey(kind, id)).Bytes()
	if err == nil {
		var record Record
		if err := json.Unmarshal(raw, &record); err == nil {
			c.metrics.CacheHits.Inc()
			return record, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		return Record{}, fmt.Errorf("cache read: %w", err)
	}
	c.metrics.CacheMisses.Inc()

	record, err := c.inner.Find(ctx, kind, id)
	if err != nil {
		return Record{}, err
	}
	if raw, err := json.Marshal(record); err == nil {
		c.client.Set(ctx, cacheKey(kind, id), raw, c.ttl)
	}
	return record, nil
}

func (c *CachedStore) NextID(ctx context.Context, kind codec.Kind) (uint64, error) {
	return c.inner.NextID(ctx, kind)
}
