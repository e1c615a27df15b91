package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/patrickmn/go-cache"

	appErrors "github.com/noah-isme/teaching-scheduler-api/pkg/errors"
)

// MemoryCacheRepository keeps JSON encoded payloads in process memory. It is
// used when no Redis instance is configured.
type MemoryCacheRepository struct {
	store *cache.Cache
}

// NewMemoryCacheRepository builds an in-memory cache that sweeps expired
// entries every cleanupInterval.
func NewMemoryCacheRepository(defaultTTL, cleanupInterval time.Duration) *MemoryCacheRepository {
	return &MemoryCacheRepository{store: cache.New(defaultTTL, cleanupInterval)}
}

// Get unmarshals the cached value into dest or returns ErrCacheMiss.
func (r *MemoryCacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	raw, found := r.store.Get(key)
	if !found {
		return appErrors.ErrCacheMiss
	}
	payload, ok := raw.([]byte)
	if !ok {
		r.store.Delete(key)
		return appErrors.ErrCacheMiss
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set stores value for ttl.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	r.store.Set(key, payload, ttl)
	return nil
}

// DeleteByPattern removes keys matching a glob pattern, mirroring Redis SCAN MATCH.
func (r *MemoryCacheRepository) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range r.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("match pattern %s: %w", pattern, err)
		}
		if matched {
			r.store.Delete(key)
		}
	}
	return nil
}
