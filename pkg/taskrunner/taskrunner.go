package taskrunner

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// TaskFunc is the unit of work executed in the background. The context
// is independent of the submitting request's context: the HTTP response
// returns before the task finishes.
type TaskFunc func(ctx context.Context)

// Runner executes background tasks, one goroutine per task, with a cap
// on concurrent tasks and a graceful shutdown. Task state is not kept
// here; callers own their own persisted records.
type Runner struct {
	mu      sync.Mutex
	active  int
	max     int
	closing bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// Config holds the runner settings.
type Config struct {
	MaxConcurrent int
}

// New creates a new Runner instance.
func New(cfg Config) *Runner {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &Runner{
		max:  maxConcurrent,
		done: make(chan struct{}),
	}
}

// Submit starts fn in a new goroutine. It fails when the runner is
// shutting down or the concurrency cap is reached.
func (r *Runner) Submit(fn TaskFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closing {
		return errors.New("task runner is shutting down")
	}
	if r.active >= r.max {
		return errors.New("maximum number of concurrent tasks reached")
	}
	r.active++

	ctx, cancel := context.WithCancel(context.Background())
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		defer func() {
			r.mu.Lock()
			r.active--
			r.mu.Unlock()
		}()

		fn(ctx)
	}()

	return nil
}

// Shutdown waits for all running tasks to finish or the context to
// expire. New submissions are rejected once called.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.closing {
		r.closing = true
		close(r.done)
	}
	r.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		log.Info().Msg("all background tasks finished")
		return nil
	case <-ctx.Done():
		return errors.New("timed out waiting for background tasks")
	}
}
