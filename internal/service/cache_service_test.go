package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string, dest interface{}) error {
	return errors.New("dial tcp: connection refused")
}
func (brokenCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("dial tcp: connection refused")
}
func (brokenCache) DeleteByPattern(ctx context.Context, pattern string) error {
	return errors.New("dial tcp: connection refused")
}

func TestCacheServiceTreatsFailuresAsMisses(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cache := NewCacheService(brokenCache{}, NewMetricsService(), 0, zap.New(core), true)
	ctx := context.Background()

	var dest []string
	assert.False(t, cache.Fetch(ctx, departmentListKey, &dest))
	cache.Store(ctx, departmentListKey, []string{"Science"})
	cache.Forget(ctx, departmentListKey, everyStudentGrades)

	assert.Equal(t, 4, logs.Len())
}

func TestCacheServiceRoundTrip(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	ctx := context.Background()

	var miss []string
	assert.False(t, cache.Fetch(ctx, studentGradesKey(1), &miss))

	cache.Store(ctx, studentGradesKey(1), []string{"A"})
	cache.Store(ctx, studentGradesKey(2), []string{"B"})
	var hit []string
	assert.True(t, cache.Fetch(ctx, studentGradesKey(1), &hit))
	assert.Equal(t, []string{"A"}, hit)

	cache.Forget(ctx, everyStudentGrades)
	assert.Empty(t, store.entries)
}

func TestDisabledCacheNeverHits(t *testing.T) {
	store := newMemCache()
	store.entries[departmentListKey] = []byte(`["Science"]`)
	ctx := context.Background()

	var dest []string
	assert.False(t, NewCacheService(store, nil, 0, nil, false).Fetch(ctx, departmentListKey, &dest))

	var nilCache *CacheService
	assert.False(t, nilCache.Fetch(ctx, departmentListKey, &dest))
	nilCache.Store(ctx, departmentListKey, dest)
	nilCache.Forget(ctx, departmentListKey)
}

func TestCacheServiceFillSkipsValuesOlderThanForget(t *testing.T) {
	store := newMemCache()
	cache := NewCacheService(store, nil, time.Minute, nil, true)
	ctx := context.Background()

	gen := cache.Generation()
	cache.Forget(ctx, studentGradesKey(1))
	cache.Fill(ctx, studentGradesKey(1), []string{"stale"}, gen)
	var dest []string
	assert.False(t, cache.Fetch(ctx, studentGradesKey(1), &dest))

	cache.Fill(ctx, studentGradesKey(1), []string{"fresh"}, cache.Generation())
	assert.True(t, cache.Fetch(ctx, studentGradesKey(1), &dest))
	assert.Equal(t, []string{"fresh"}, dest)

	var nilCache *CacheService
	nilCache.Fill(ctx, studentGradesKey(1), dest, nilCache.Generation())
}
