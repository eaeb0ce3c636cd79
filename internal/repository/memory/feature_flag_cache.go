package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

const enabledKeysCacheKey = "feature_flags:enabled_keys"

// FeatureFlagCache keeps the enabled flag keys in process memory.
type FeatureFlagCache struct {
	cache *cache.Cache
}

func NewFeatureFlagCache(ttl time.Duration) *FeatureFlagCache {
	// Purge expired items every other TTL
	c := cache.New(ttl, 2*ttl)
	return &FeatureFlagCache{
		cache: c,
	}
}

func (r *FeatureFlagCache) Get(ctx context.Context) ([]string, bool, error) {
	if x, found := r.cache.Get(enabledKeysCacheKey); found {
		keys := x.([]string)
		out := make([]string, len(keys))
		copy(out, keys)
		return out, true, nil
	}
	return nil, false, nil
}

func (r *FeatureFlagCache) Set(ctx context.Context, keys []string) error {
	stored := make([]string, len(keys))
	copy(stored, keys)
	r.cache.Set(enabledKeysCacheKey, stored, cache.DefaultExpiration)
	return nil
}

func (r *FeatureFlagCache) Invalidate(ctx context.Context) error {
	r.cache.Delete(enabledKeysCacheKey)
	return nil
}

func (r *FeatureFlagCache) Backend() string {
	return "memory"
}
