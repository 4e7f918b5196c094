package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

const (
	departmentListKey  = "list:departments"
	courseListKey      = "list:courses"
	everyStudentGrades = "grades:student:*"
)

func studentGradesKey(studentID int64) string {
	return fmt.Sprintf("grades:student:%d", studentID)
}

// CacheRepository stores serialized read models.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService keeps the grades view and unpaged catalog lists warm. Failures are logged
// and reported as misses, so a broken Redis only costs a database round trip.
// A nil service behaves as a permanently empty cache.
type CacheService struct {
	repo    CacheRepository
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
	enabled bool
	gen     atomic.Uint64
}

// NewCacheService wires the cache. ttl <= 0 falls back to five minutes.
func NewCacheService(repo CacheRepository, metrics *MetricsService, ttl time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, ttl: ttl, logger: logger, enabled: enabled}
}

// Enabled reports whether lookups can hit.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Fetch decodes the entry under key into dest and reports whether it was found.
func (s *CacheService) Fetch(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	s.metrics.ObserveCacheLookup(key, err == nil, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return err == nil
}

// Store saves value under key for the configured ttl.
func (s *CacheService) Store(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, s.ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Generation changes on every Forget. Loaders read it before querying and pass it to Fill.
func (s *CacheService) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.gen.Load()
}

// Fill stores a freshly loaded value unless an invalidation ran after gen was read,
// since the value may then predate the write that triggered it.
func (s *CacheService) Fill(ctx context.Context, key string, value interface{}, gen uint64) {
	if !s.Enabled() || s.gen.Load() != gen {
		return
	}
	s.Store(ctx, key, value)
	if s.gen.Load() != gen {
		if err := s.repo.DeleteByPattern(ctx, key); err != nil {
			s.logger.Warn("cache invalidation failed", zap.String("pattern", key), zap.Error(err))
		}
	}
}

// Forget drops every entry matching one of the keys or glob patterns.
func (s *CacheService) Forget(ctx context.Context, patterns ...string) {
	if !s.Enabled() {
		return
	}
	s.gen.Add(1)
	for _, pattern := range patterns {
		if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
			s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
