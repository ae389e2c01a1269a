package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coldchain/dispatch-optimizer/internal/metrics"
	"github.com/redis/go-redis/v9"
)

// CachedOracle wraps an Oracle with a short-TTL Redis memo: a layer in
// front of a network-bound lookup, never a substitute for calling through
// on a miss.
type CachedOracle struct {
	inner Oracle
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedOracle wraps inner with a Redis cache. If redisClient is nil the
// cache is a no-op passthrough (Redis is an optional enrichment here).
func NewCachedOracle(inner Oracle, redisClient *redis.Client, ttl time.Duration) *CachedOracle {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedOracle{inner: inner, redis: redisClient, ttl: ttl}
}

// Lookup implements Oracle.
func (c *CachedOracle) Lookup(ctx context.Context, facilityID, sku string) ([]AssetAvailability, error) {
	if c.redis == nil {
		return c.inner.Lookup(ctx, facilityID, sku)
	}

	key := cacheKey(facilityID, sku)

	if raw, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var assets []AssetAvailability
		if jsonErr := json.Unmarshal(raw, &assets); jsonErr == nil {
			metrics.WarehouseCacheHitsTotal.Inc()
			return assets, nil
		}
	}
	metrics.WarehouseCacheMissesTotal.Inc()

	assets, err := c.inner.Lookup(ctx, facilityID, sku)
	if err != nil {
		return assets, err
	}

	if raw, err := json.Marshal(assets); err == nil {
		_ = c.redis.Set(ctx, key, raw, c.ttl).Err()
	}

	return assets, nil
}

func cacheKey(facilityID, sku string) string {
	return fmt.Sprintf("warehouse_inventory:%s:%s", facilityID, sku)
}
