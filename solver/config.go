package solver

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sfranzen/ismcsolver/execution"
	"github.com/sfranzen/ismcsolver/metrics"
	"github.com/sfranzen/ismcsolver/rollout"
	"github.com/sfranzen/ismcsolver/treepolicy"
)

// ExecutionPolicy selects how a solver spends its iteration budget.
type ExecutionPolicy int

const (
	// Sequential runs one tree in the calling goroutine.
	Sequential ExecutionPolicy = iota
	// TreeParallel runs several workers against one shared tree.
	TreeParallel
	// RootParallel runs several independent trees, one worker each,
	// aggregating their visit counts once every worker has returned.
	RootParallel
)

func (p ExecutionPolicy) String() string {
	switch p {
	case TreeParallel:
		return "TreeParallel"
	case RootParallel:
		return "RootParallel"
	default:
		return "Sequential"
	}
}

// defaultIterations is the default search budget when no Option overrides it.
const defaultIterations = 1000

// config holds a solver's configuration; SO and MO each hold one, so both
// flavours share option handling.
type config[Move comparable] struct {
	execPolicy  ExecutionPolicy
	workers     int
	budget      execution.Budget
	exploration float64

	seqTreePolicy treepolicy.Policy[Move]
	simTreePolicy treepolicy.Policy[Move]
	defaultPolicy rollout.Policy[Move]

	metrics metrics.Collector
	logger  zerolog.Logger
}

func newConfig[Move comparable]() config[Move] {
	return config[Move]{
		execPolicy:  Sequential,
		workers:     max(1, runtime.NumCPU()),
		budget:      execution.Budget{Iterations: defaultIterations},
		exploration: treepolicy.DefaultExploration,
		metrics:     metrics.NewNoopCollector(),
		logger:      log.Logger,
	}
}

// Option configures a Solver at construction time.
type Option[Move comparable] func(*config[Move])

// WithExecutionPolicy selects Sequential, TreeParallel or RootParallel and,
// for the two parallel policies, the worker/tree count (a non-positive count
// leaves the current one, hardware concurrency by default, unchanged;
// ignored for Sequential, which is always single-threaded).
func WithExecutionPolicy[Move comparable](policy ExecutionPolicy, workers int) Option[Move] {
	return func(c *config[Move]) {
		c.execPolicy = policy
		if workers > 0 {
			c.workers = workers
		}
	}
}

// WithIterationCount switches to a count-based budget of n iterations.
func WithIterationCount[Move comparable](n uint64) Option[Move] {
	return func(c *config[Move]) {
		c.budget = execution.Budget{Iterations: n}
	}
}

// WithIterationTime switches to a time-based budget of duration d.
func WithIterationTime[Move comparable](d time.Duration) Option[Move] {
	return func(c *config[Move]) {
		c.budget = execution.Budget{Duration: d}
	}
}

// WithExploration sets the UCB1 exploration constant used by the default
// sequential tree policy. Has no effect if WithSeqTreePolicy is also given.
func WithExploration[Move comparable](c float64) Option[Move] {
	return func(cfg *config[Move]) {
		if c >= 0 {
			cfg.exploration = c
		}
	}
}

// WithSeqTreePolicy overrides the sequential (UCB-family) tree policy.
func WithSeqTreePolicy[Move comparable](p treepolicy.Policy[Move]) Option[Move] {
	return func(c *config[Move]) { c.seqTreePolicy = p }
}

// WithSimTreePolicy overrides the simultaneous-move (EXP3-family) tree
// policy.
func WithSimTreePolicy[Move comparable](p treepolicy.Policy[Move]) Option[Move] {
	return func(c *config[Move]) { c.simTreePolicy = p }
}

// WithDefaultPolicy overrides the rollout (simulation) policy.
func WithDefaultPolicy[Move comparable](p rollout.Policy[Move]) Option[Move] {
	return func(c *config[Move]) { c.defaultPolicy = p }
}

// WithMetricsCollector attaches a metrics.Collector; every ChooseMove call
// reports its worker count and iteration count to it. Defaults to a no-op
// collector.
func WithMetricsCollector[Move comparable](m metrics.Collector) Option[Move] {
	return func(c *config[Move]) { c.metrics = m }
}

// WithLogger overrides the zerolog.Logger the solver logs through. Defaults
// to the global github.com/rs/zerolog/log logger.
func WithLogger[Move comparable](l zerolog.Logger) Option[Move] {
	return func(c *config[Move]) { c.logger = l }
}
