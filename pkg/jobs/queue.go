// Package jobs runs typed background work on a fixed pool of goroutines.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull    = errors.New("queue full")
	ErrQueueStopped = errors.New("queue stopped")
)

// Job is one unit of work. Attempt counts failed runs so far.
type Job[T any] struct {
	ID       string
	Payload  T
	Attempt  int
	Enqueued time.Time
}

type Handler[T any] func(context.Context, Job[T]) error

type Config struct {
	Workers    int
	BufferSize int
	// MaxRetries bounds re-runs after a failure; the n-th retry waits n*RetryDelay.
	MaxRetries int
	RetryDelay time.Duration
	// DrainTimeout bounds how long Stop keeps working through buffered jobs.
	DrainTimeout time.Duration
	Logger       *zap.Logger
}

// Queue buffers jobs in memory. Offer never blocks, so producers on request paths
// are not slowed down by a backlog.
type Queue[T any] struct {
	name    string
	handler Handler[T]
	cfg     Config
	logger  *zap.Logger

	jobs   chan Job[T]
	quit   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

func New[T any](name string, handler Handler[T], cfg Config) *Queue[T] {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Queue[T]{
		name:    name,
		handler: handler,
		cfg:     cfg,
		logger:  cfg.Logger.With(zap.String("queue", name)),
		jobs:    make(chan Job[T], cfg.BufferSize),
	}
}

// Start launches the workers. It is a no-op on a running queue.
func (q *Queue[T]) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.running {
		return
	}
	q.ctx, q.cancel = context.WithCancel(context.WithoutCancel(ctx))
	q.quit = make(chan struct{})
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	q.running = true
	q.logger.Info("queue started", zap.Int("workers", q.cfg.Workers))
}

// Stop refuses new jobs, lets the workers finish what is buffered within
// DrainTimeout and then cancels whatever is still in flight.
func (q *Queue[T]) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	close(q.quit)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(q.cfg.DrainTimeout):
		q.cancel()
		<-done
	}
	q.cancel()
	q.logger.Info("queue stopped", zap.Int("discarded", len(q.jobs)))
}

// Offer queues payload and returns the job id.
func (q *Queue[T]) Offer(payload T) (string, error) {
	q.mu.Lock()
	running := q.running
	q.mu.Unlock()
	if !running {
		return "", fmt.Errorf("queue %s: %w", q.name, ErrQueueStopped)
	}
	job := Job[T]{ID: uuid.NewString(), Payload: payload, Enqueued: time.Now().UTC()}
	if err := q.push(job); err != nil {
		return "", err
	}
	return job.ID, nil
}

// Len reports how many jobs are waiting.
func (q *Queue[T]) Len() int {
	return len(q.jobs)
}

func (q *Queue[T]) push(job Job[T]) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return fmt.Errorf("queue %s: %w", q.name, ErrQueueFull)
	}
}

func (q *Queue[T]) work() {
	defer q.wg.Done()
	for {
		select {
		case job := <-q.jobs:
			q.run(job)
		case <-q.quit:
			for {
				select {
				case job := <-q.jobs:
					q.run(job)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue[T]) run(job Job[T]) {
	if q.ctx.Err() != nil {
		return
	}
	err := q.handler(q.ctx, job)
	if err == nil {
		return
	}
	job.Attempt++
	fields := []zap.Field{zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt), zap.Error(err)}
	if job.Attempt > q.cfg.MaxRetries {
		q.logger.Error("job exceeded retries", fields...)
		return
	}
	q.logger.Warn("job failed, retrying", fields...)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		timer := time.NewTimer(q.cfg.RetryDelay * time.Duration(job.Attempt))
		defer timer.Stop()
		select {
		case <-q.quit:
			q.logger.Warn("retry abandoned on shutdown", zap.String("job_id", job.ID))
		case <-timer.C:
			if err := q.push(job); err != nil {
				q.logger.Error("failed to requeue job", zap.String("job_id", job.ID), zap.Error(err))
			}
		}
	}()
}
