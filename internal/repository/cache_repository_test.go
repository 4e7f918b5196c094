package repository

import (
	"context"
	"errors"
	"path"
	"sort"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/Loggy-dot/Student-Management-system/pkg/errors"
)

// fakeRedis implements the handful of commands the repository issues.
type fakeRedis struct {
	redis.Cmdable
	data     map[string]string
	scans    int
	unlinked []string
	fail     error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.fail != nil {
		return redis.NewStringResult("", f.fail)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

// Scan returns one key per page to exercise cursor handling.
func (f *fakeRedis) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	f.scans++
	var keys []string
	for k := range f.data {
		if ok, _ := path.Match(match, k); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if int(cursor) >= len(keys) {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	next := cursor + 1
	if int(next) >= len(keys) {
		next = 0
	}
	return redis.NewScanCmdResult(keys[cursor:cursor+1], next, nil)
}

func (f *fakeRedis) Unlink(ctx context.Context, keys ...string) *redis.IntCmd {
	f.unlinked = append(f.unlinked, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{}}
	repo := NewCacheRepository(fake, "student-api")
	ctx := context.Background()

	var out []string
	assert.ErrorIs(t, repo.Get(ctx, "list:departments", &out), appErrors.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "list:departments", []string{"Science"}, time.Minute))
	assert.Contains(t, fake.data, "student-api:list:departments")
	require.NoError(t, repo.Get(ctx, "list:departments", &out))
	assert.Equal(t, []string{"Science"}, out)

	fake.fail = errors.New("i/o timeout")
	err := repo.Get(ctx, "list:departments", &out)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	fake := &fakeRedis{data: map[string]string{
		"student-api:grades:student:1": "{}",
		"student-api:grades:student:2": "{}",
		"student-api:list:courses":     "[]",
	}}
	repo := NewCacheRepository(fake, "student-api")
	ctx := context.Background()

	require.NoError(t, repo.DeleteByPattern(ctx, "list:courses"))
	assert.Equal(t, []string{"student-api:list:courses"}, fake.unlinked)
	assert.Zero(t, fake.scans)

	fake.unlinked = nil
	require.NoError(t, repo.DeleteByPattern(ctx, "grades:student:*"))
	assert.ElementsMatch(t, []string{"student-api:grades:student:1", "student-api:grades:student:2"}, fake.unlinked)
	assert.Equal(t, 2, fake.scans)
}
