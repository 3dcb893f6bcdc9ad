// Package execution implements the three ways a solver may spend its
// iteration budget: Sequential (one tree, one worker), TreeParallel (one
// tree shared by several workers) and RootParallel (several independent
// trees, one worker each, aggregated by the caller once done). None of the
// three knows anything about the search algorithm, the game or the move
// type: each worker is handed an opaque Iteration closure built by the
// caller, which is what keeps this package free of the generic type
// parameter the rest of the module carries.
package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Budget bounds how much work a policy performs. A zero Iterations means
// "not iteration-bounded"; a zero Duration means "not time-bounded". At
// least one of the two must be set, and if both are set the policy stops at
// whichever limit is hit first.
type Budget struct {
	Iterations uint64
	Duration   time.Duration
}

// Iteration performs one unit of search work — one call to SOIterate or
// MOIterate against whichever tree, state, config and rng the caller closed
// over. Sequential, TreeParallel and RootParallel treat it as opaque.
type Iteration func()

// chunkSize is how many iterations a TreeParallel worker reserves from the
// shared counter per claim. A worker that only ever claimed one iteration at
// a time would serialise every worker on the counter; claiming a chunk lets
// most of a worker's work proceed uncontended, at the cost of some load
// imbalance near the end. The last claim is clamped to the budget, so the
// workers never run more iterations than it allows.
func chunkSize(iterations uint64, workers int) uint64 {
	c := iterations * uint64(workers) / 1000
	if c < 1 {
		return 1
	}
	return c
}

// Sequential runs iterate, in the calling goroutine, until budget is spent
// or ctx is cancelled — a worker's Game implementation panicking mid-search
// cancels the context that all sibling workers share, so one worker's
// failure aborts the whole search rather than leaving the others to finish
// on their own.
func Sequential(ctx context.Context, iterate Iteration, budget Budget) {
	var deadline time.Time
	if budget.Duration > 0 {
		deadline = time.Now().Add(budget.Duration)
	}
	for count := uint64(0); ; count++ {
		if ctx.Err() != nil {
			return
		}
		if budget.Iterations > 0 && count >= budget.Iterations {
			return
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return
		}
		iterate()
	}
}

// TreeParallel runs `workers` goroutines, each built by newIteration, against
// a tree that the caller's Iteration closures all share. When budget is
// iteration-bounded, workers claim chunkSize-sized ranges from a single
// shared atomic counter; when it is time-bounded (also, or instead), a timer
// cancels a derived context after budget.Duration. Cancelling ctx itself
// (e.g. because one worker's Iteration panicked and the caller recovered and
// cancelled) stops every worker before its budget is spent.
func TreeParallel(ctx context.Context, newIteration func() Iteration, workers int, budget Budget) {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if budget.Duration > 0 {
		timer := time.AfterFunc(budget.Duration, cancel)
		defer timer.Stop()
	}

	bounded := budget.Iterations > 0
	chunk := chunkSize(budget.Iterations, workers)
	var claimed atomic.Uint64

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			iterate := newIteration()
			for {
				if ctx.Err() != nil {
					return
				}

				if !bounded {
					iterate()
					continue
				}

				start := claimed.Add(chunk) - chunk
				if start >= budget.Iterations {
					return
				}
				end := start + chunk
				if end > budget.Iterations {
					end = budget.Iterations
				}
				for j := start; j < end; j++ {
					if ctx.Err() != nil {
						return
					}
					iterate()
				}
			}
		}()
	}
	wg.Wait()
}

// RootParallel runs `trees` independent Sequential searches concurrently,
// each against its own Iteration (and so its own tree, rng and config), each
// spending the full budget unless ctx is cancelled first. The caller
// combines the resulting trees with AggregateBestMove once every goroutine
// has returned.
func RootParallel(ctx context.Context, newIteration func() Iteration, trees int, budget Budget) {
	if trees < 1 {
		trees = 1
	}
	var wg sync.WaitGroup
	for i := 0; i < trees; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Sequential(ctx, newIteration(), budget)
		}()
	}
	wg.Wait()
}
