// Package metrics records what a solver call actually did — how many
// workers it ran, how many iterations they performed in total, how long it
// took and which execution policy (one tree, or several aggregated) produced
// the move — for later CSV export or just a console log line.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sfranzen/ismcsolver/execution"
)

// SearchMetric summarises one ChooseMove call.
type SearchMetric struct {
	ExecutionPolicy string
	Workers         int
	Iterations      int
	Duration        time.Duration
}

// Collector accumulates the counters a search call reports as it runs.
// Workers call AddIteration concurrently; Start/Complete bracket one
// ChooseMove call from the solver's own goroutine.
type Collector interface {
	Start(policy string, workers int, budget execution.Budget)
	AddIteration()
	Complete() SearchMetric
}

type collector struct {
	policy     string
	workers    int
	budget     execution.Budget
	startTime  time.Time
	iterations atomic.Int64
}

// NewCollector returns a Collector that records real counters.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(policy string, workers int, budget execution.Budget) {
	c.policy = policy
	c.workers = workers
	c.budget = budget
	c.startTime = time.Now()
	c.iterations.Store(0)
}

func (c *collector) AddIteration() { c.iterations.Add(1) }

func (c *collector) Complete() SearchMetric {
	n := int(c.iterations.Load())
	if want, ok := expectedIterations(c.policy, c.workers, c.budget); ok && n != want {
		log.Warn().
			Str("execution_policy", c.policy).
			Int("expected_iterations", want).
			Int("actual_iterations", n).
			Msg("search reported an iteration count inconsistent with its budget")
	}
	return SearchMetric{
		ExecutionPolicy: c.policy,
		Workers:         c.workers,
		Iterations:      n,
		Duration:        time.Since(c.startTime),
	}
}

// expectedIterations reports how many iterations a completed search should
// have run under budget, or false if budget was time-based (open-ended, so
// no fixed count to compare against). RootParallel runs every tree to the
// full budget rather than sharing it, so its total is workers times larger.
func expectedIterations(policy string, workers int, budget execution.Budget) (int, bool) {
	if budget.Iterations == 0 {
		return 0, false
	}
	if policy == "RootParallel" {
		return int(budget.Iterations) * workers, true
	}
	return int(budget.Iterations), true
}

type noopCollector struct{}

// NewNoopCollector returns a Collector that discards everything, for callers
// who have no use for metrics and would rather not pay for the counters.
func NewNoopCollector() Collector {
	return &noopCollector{}
}

func (noopCollector) Start(policy string, workers int, budget execution.Budget) {}
func (noopCollector) AddIteration()                                            {}
func (noopCollector) Complete() SearchMetric                                   { return SearchMetric{} }
