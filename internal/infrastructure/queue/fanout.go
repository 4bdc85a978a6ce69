package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cse-attendance/attendance-system/internal/api/metrics"
)

const defaultConcurrency = 16

// Fanout runs a batch of independent writes on a bounded set of goroutines
// and waits for all of them.
type Fanout struct {
	limit int
	log   zerolog.Logger
}

// NewFanout creates a Fanout running at most limit writes at once.
// If limit <= 0, defaultConcurrency is used.
func NewFanout(limit int, log zerolog.Logger) *Fanout {
	if limit <= 0 {
		limit = defaultConcurrency
	}
	return &Fanout{limit: limit, log: log}
}

// Run executes every task, even after one has failed, and returns the first
// error. Once started a batch runs to completion: tasks get ctx's values but
// not its cancellation, so a client going away does not abort queued writes.
func (f *Fanout) Run(ctx context.Context, name string, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(f.limit)

	failed := make(chan struct{}, len(tasks))
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := task(ctx); err != nil {
				failed <- struct{}{}
				return err
			}
			return nil
		})
	}

	err := g.Wait()
	close(failed)
	metrics.BatchWriteDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		f.log.Error().Err(err).
			Str("batch", name).
			Int("tasks", len(tasks)).
			Int("failed", len(failed)).
			Msg("batch finished with failures")
		return err
	}

	f.log.Debug().Str("batch", name).Int("tasks", len(tasks)).Dur("took", time.Since(start)).Msg("batch finished")
	return nil
}
