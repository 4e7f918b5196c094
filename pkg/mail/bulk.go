package mail

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Failure records a recipient that could not be reached.
type Failure struct {
	To  string
	Err error
}

// SendBulk delivers every message with at most limit sends in flight.
// One recipient failing never stops the others. Failures come back in input order.
func SendBulk(ctx context.Context, sender Sender, msgs []Message, limit int) []Failure {
	if limit <= 0 {
		limit = 1
	}
	errs := make([]error, len(msgs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range msgs {
		i := i
		g.Go(func() error {
			err := sender.Send(gctx, msgs[i])
			mu.Lock()
			errs[i] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	var failures []Failure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, Failure{To: msgs[i].To, Err: err})
		}
	}
	return failures
}
