package execution

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSequentialHonoursIterationBudget(t *testing.T) {
	var count atomic.Int64
	Sequential(context.Background(), func() { count.Add(1) }, Budget{Iterations: 37})

	require.EqualValues(t, 37, count.Load())
}

func TestSequentialHonoursTimeBudget(t *testing.T) {
	var count atomic.Int64
	start := time.Now()
	Sequential(context.Background(), func() { count.Add(1) }, Budget{Duration: 20 * time.Millisecond})

	require.Greater(t, count.Load(), int64(0))
	require.Less(t, time.Since(start), time.Second)
}

func TestSequentialStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var count atomic.Int64
	Sequential(ctx, func() { count.Add(1) }, Budget{Iterations: 1000})

	require.Zero(t, count.Load())
}

func TestTreeParallelRunsApproximatelyTheBudget(t *testing.T) {
	var count atomic.Int64
	newIteration := func() Iteration {
		return func() { count.Add(1) }
	}

	TreeParallel(context.Background(), newIteration, 4, Budget{Iterations: 400})

	require.GreaterOrEqual(t, count.Load(), int64(400))
}

// TreeParallel does not itself recover panics; that is the solver package's
// job (it guards each Iteration and cancels a shared context on failure).
// This only checks that once such a context is cancelled, every worker
// observes it and TreeParallel returns instead of running its unbounded
// budget forever.
func TestTreeParallelStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var count atomic.Int64
	newIteration := func() Iteration {
		return func() {
			if count.Add(1) == 1 {
				cancel()
			}
		}
	}

	done := make(chan struct{})
	go func() {
		TreeParallel(ctx, newIteration, 4, Budget{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TreeParallel did not stop after context cancellation")
	}
}

func TestRootParallelRunsEachTreeToFullBudget(t *testing.T) {
	var count atomic.Int64
	newIteration := func() Iteration {
		return func() { count.Add(1) }
	}

	RootParallel(context.Background(), newIteration, 3, Budget{Iterations: 10})

	require.EqualValues(t, 30, count.Load())
}
