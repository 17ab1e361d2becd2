package job_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/memberwd/backoffice/pkg/job"
)

func TestRunner(t *testing.T) {
	t.Parallel()

	var runs atomic.Int64

	ctx, cancel := context.WithCancel(context.Background())

	runner := job.NewRunner(nil)
	runner.Add("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	runner.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	runner.Stop()
}

func TestRunnerDisabledJob(t *testing.T) {
	t.Parallel()

	var runs atomic.Int64

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := job.NewRunner(nil)
	runner.AddIf(false, "never", time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	runner.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	require.Zero(t, runs.Load())

	cancel()
	runner.Stop()
}

func TestRunnerRecoversPanic(t *testing.T) {
	t.Parallel()

	var runs atomic.Int64

	ctx, cancel := context.WithCancel(context.Background())

	runner := job.NewRunner(nil)
	runner.Add("panicky", 5*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		panic("boom")
	})

	runner.Start(ctx)

	// The job keeps ticking after a panic.
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, time.Millisecond)

	cancel()
	runner.Stop()
}
