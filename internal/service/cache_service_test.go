package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teaching-scheduler-api/internal/repository"
)

type cacheRecorderStub struct {
	hits, misses, writes int
}

func (r *cacheRecorderStub) RecordCacheOperation(hit bool, _ time.Duration) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func (r *cacheRecorderStub) ObserveCacheWrite(time.Duration) { r.writes++ }

type failingCacheRepo struct{}

func (failingCacheRepo) Get(context.Context, string, interface{}) error { return errors.New("boom") }
func (failingCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("boom")
}
func (failingCacheRepo) DeleteByPattern(context.Context, string) error { return errors.New("boom") }

func TestCacheServiceRoundTrip(t *testing.T) {
	recorder := &cacheRecorderStub{}
	svc := NewCacheService(repository.NewMemoryCacheRepository(time.Minute, time.Minute), recorder, 0, nil)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, svc.Get(ctx, "dash:workload", &out))

	svc.Set(ctx, "dash:workload", map[string]int{"A": 2}, 0)
	require.True(t, svc.Get(ctx, "dash:workload", &out))
	assert.Equal(t, 2, out["A"])

	require.NoError(t, svc.Invalidate(ctx, "dash:*"))
	assert.False(t, svc.Get(ctx, "dash:workload", &out))

	assert.Equal(t, 1, recorder.hits)
	assert.Equal(t, 2, recorder.misses)
	assert.Equal(t, 1, recorder.writes)
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(nil, nil, time.Minute, nil)
	var out string

	assert.False(t, svc.Enabled())
	assert.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", "v", 0)
	assert.NoError(t, svc.Invalidate(context.Background(), "*"))
}

func TestCacheServiceBackendFailureIsMiss(t *testing.T) {
	svc := NewCacheService(failingCacheRepo{}, nil, time.Minute, nil)
	var out string

	assert.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", "v", 0)
	assert.Error(t, svc.Invalidate(context.Background(), "*"))
}

type closingCacheRepo struct {
	*repository.MemoryCacheRepository
	closed int
}

func (r *closingCacheRepo) Close() error {
	r.closed++
	return nil
}

func TestCacheServiceCloseReleasesBackend(t *testing.T) {
	repo := &closingCacheRepo{MemoryCacheRepository: repository.NewMemoryCacheRepository(time.Minute, time.Minute)}
	svc := NewCacheService(repo, nil, time.Minute, nil)

	require.NoError(t, svc.Close())
	assert.Equal(t, 1, repo.closed)
}

func TestCacheServiceCloseWithoutCloser(t *testing.T) {
	svc := NewCacheService(repository.NewMemoryCacheRepository(time.Minute, time.Minute), nil, time.Minute, nil)
	assert.NoError(t, svc.Close())

	var disabled *CacheService
	assert.NoError(t, disabled.Close())
}
