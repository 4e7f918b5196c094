package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(what)
	}
}

func TestQueueProcessesJobs(t *testing.T) {
	var total int32
	done := make(chan struct{}, 3)
	q := New("test", func(ctx context.Context, job Job[int]) error {
		atomic.AddInt32(&total, int32(job.Payload))
		done <- struct{}{}
		return nil
	}, Config{Workers: 2, BufferSize: 4})
	q.Start(context.Background())
	defer q.Stop()

	for i := 1; i <= 3; i++ {
		id, err := q.Offer(i)
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}
	for i := 0; i < 3; i++ {
		waitFor(t, done, "job not processed")
	}
	assert.Equal(t, int32(6), atomic.LoadInt32(&total))
}

func TestQueueRetriesFailedJob(t *testing.T) {
	var attempts int32
	done := make(chan struct{})
	q := New("retry", func(ctx context.Context, job Job[string]) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return errors.New("smtp unavailable")
		}
		assert.Equal(t, 1, job.Attempt)
		close(done)
		return nil
	}, Config{Workers: 1, MaxRetries: 2, RetryDelay: 10 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Offer("grade_posted")
	require.NoError(t, err)
	waitFor(t, done, "job was not retried")
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestOfferReportsFullQueue(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	q := New("full", func(ctx context.Context, job Job[string]) error {
		started <- struct{}{}
		<-block
		return nil
	}, Config{Workers: 1, BufferSize: 1})
	q.Start(context.Background())
	defer q.Stop()
	defer close(block)

	_, err := q.Offer("a")
	require.NoError(t, err)
	<-started
	_, err = q.Offer("b")
	require.NoError(t, err)

	_, err = q.Offer("c")
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestOfferRequiresRunningQueue(t *testing.T) {
	q := New("idle", func(ctx context.Context, job Job[string]) error { return nil }, Config{})
	_, err := q.Offer("x")
	assert.ErrorIs(t, err, ErrQueueStopped)

	q.Start(context.Background())
	q.Stop()
	_, err = q.Offer("x")
	assert.ErrorIs(t, err, ErrQueueStopped)
}

func TestStopDrainsBufferedJobs(t *testing.T) {
	release := make(chan struct{})
	var handled int32
	q := New("drain", func(ctx context.Context, job Job[int]) error {
		<-release
		atomic.AddInt32(&handled, 1)
		return nil
	}, Config{Workers: 1, BufferSize: 8, DrainTimeout: 2 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	q.Start(ctx)
	for i := 0; i < 4; i++ {
		_, err := q.Offer(i)
		require.NoError(t, err)
	}
	cancel()
	close(release)
	q.Stop()

	assert.Equal(t, int32(4), atomic.LoadInt32(&handled))
	assert.Zero(t, q.Len())
}

func TestStopCancelsAfterDrainTimeout(t *testing.T) {
	q := New("stuck", func(ctx context.Context, job Job[int]) error {
		<-ctx.Done()
		return ctx.Err()
	}, Config{Workers: 1, DrainTimeout: 20 * time.Millisecond})
	q.Start(context.Background())
	_, err := q.Offer(1)
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		q.Stop()
		close(stopped)
	}()
	waitFor(t, stopped, "stop did not return")
}
