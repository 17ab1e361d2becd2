package job

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
}

// Runner executes registered jobs on their own tickers until the
// context is cancelled. Each job runs once immediately on start.
type Runner struct {
	log  *slog.Logger
	jobs []job
	wg   sync.WaitGroup
}

func NewRunner(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}

	return &Runner{log: log}
}

func (r *Runner) Add(name string, interval time.Duration, fn func(ctx context.Context) error) *Runner {
	return r.AddIf(true, name, interval, fn)
}

func (r *Runner) AddIf(enabled bool, name string, interval time.Duration, fn func(ctx context.Context) error) *Runner {
	if !enabled {
		return r
	}

	r.jobs = append(r.jobs, job{
		name:     name,
		interval: interval,
		fn:       fn,
	})

	return r
}

func (r *Runner) Start(ctx context.Context) {
	for _, v := range r.jobs {
		r.wg.Add(1)

		go r.run(ctx, v)
	}
}

func (r *Runner) run(ctx context.Context, j job) {
	defer r.wg.Done()

	l := r.log.With("job", j.name)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		l.Debug("job started")

		err := r.withRecover(ctx, j)
		if err != nil {
			l.Error("job failed", "error", err)
		} else {
			l.Debug("job done")
		}

		select {
		case <-ctx.Done():
			l.Debug("context done")
			return

		case <-ticker.C:
		}
	}
}

func (r *Runner) withRecover(ctx context.Context, j job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("job panic", "job", j.name, "error", rec, "stack", string(debug.Stack()))
		}
	}()

	return j.fn(ctx)
}

// Stop blocks until every running job has observed context cancellation.
func (r *Runner) Stop() {
	r.wg.Wait()
}
