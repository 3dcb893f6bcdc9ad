// Package solver assembles the tree, tree policy, search algorithm and
// execution policy packages into the two facades a client actually calls:
// SO for single-observer search, MO for multi-observer search.
package solver

import (
	"context"
	"sync"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/sfranzen/ismcsolver/execution"
	"github.com/sfranzen/ismcsolver/game"
	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/rollout"
	"github.com/sfranzen/ismcsolver/search"
	"github.com/sfranzen/ismcsolver/treepolicy"
	"github.com/sfranzen/ismcsolver/tree"
)

// SO chooses moves with single-observer ISMCTS: one tree, built from the
// perspective of whichever player is asked to move.
type SO[Move comparable] struct {
	cfg   config[Move]
	mu    sync.Mutex
	trees []*tree.Node[Move]
}

// NewSO constructs an SO solver. See Option for the available settings;
// unset settings default to 1000 iterations, UCB1 with c=0.7, EXP3,
// uniform random rollout, and Sequential execution, with a
// hardware-concurrency worker count for the parallel policies.
func NewSO[Move comparable](opts ...Option[Move]) *SO[Move] {
	cfg := newConfig[Move]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SO[Move]{cfg: cfg}
}

func (s *SO[Move]) workerConfig(rng *xrand.Rand) search.Config[Move] {
	seq := s.cfg.seqTreePolicy
	if seq == nil {
		seq = treepolicy.NewUCB1[Move](s.cfg.exploration).Select
	}
	sim := s.cfg.simTreePolicy
	if sim == nil {
		sim = treepolicy.NewEXP3[Move](rng).Select
	}
	def := s.cfg.defaultPolicy
	if def == nil {
		def = rollout.Random[Move](rng)
	}
	return search.Config[Move]{SeqTreePolicy: seq, SimTreePolicy: sim, DefaultPolicy: def}
}

// ChooseMove runs a search from state and returns the most-visited move at
// the root (aggregated across trees, for RootParallel). It returns
// ErrNoValidMoves if state is already terminal. If a worker's Game
// implementation panicked, it returns an error carrying the panic value: a
// *PanicError for a non-error value, or an error wrapping the panicked error
// with %w.
func (s *SO[Move]) ChooseMove(state game.Game[Move]) (move Move, err error) {
	var zero Move
	if len(state.ValidMoves()) == 0 {
		return zero, ErrNoValidMoves
	}

	start := time.Now()
	s.cfg.metrics.Start(s.cfg.execPolicy.String(), s.cfg.workers, s.cfg.budget)

	roots, err := s.search(state)
	if err != nil {
		return zero, err
	}

	m := aggregate(roots)
	metric := s.cfg.metrics.Complete()
	s.mu.Lock()
	s.trees = roots
	s.mu.Unlock()

	s.cfg.logger.Info().
		Str("execution_policy", s.cfg.execPolicy.String()).
		Int("workers", s.cfg.workers).
		Dur("elapsed", time.Since(start)).
		Int("iterations", metric.Iterations).
		Interface("move", m).
		Msg("choose_move")
	return m, nil
}

// CurrentTrees returns the tree(s) built by the last ChooseMove call, for
// introspection. RootParallel returns every tree; the other policies
// return a single-element slice.
func (s *SO[Move]) CurrentTrees() []*tree.Node[Move] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tree.Node[Move], len(s.trees))
	copy(out, s.trees)
	return out
}

// DumpTree renders the last search's tree(s) in the diagnostic format used
// by tree.Node.String/TreeString, concatenating one dump per tree for
// RootParallel searches.
func (s *SO[Move]) DumpTree() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out string
	for _, t := range s.trees {
		out += t.TreeString(0)
	}
	return out
}

func (s *SO[Move]) search(state game.Game[Move]) ([]*tree.Node[Move], error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var panicOnce sync.Once
	var panicErr error
	onPanic := func(r any) {
		panicOnce.Do(func() {
			s.cfg.logger.Warn().
				Str("execution_policy", s.cfg.execPolicy.String()).
				Interface("recovered", r).
				Msg("worker panicked, aborting search")
			panicErr = newPanicError(r)
			cancel()
		})
	}
	guard := func(iterate execution.Iteration) execution.Iteration {
		return func() {
			defer func() {
				if r := recover(); r != nil {
					onPanic(r)
				}
			}()
			iterate()
		}
	}

	switch s.cfg.execPolicy {
	case TreeParallel:
		root := tree.NewRoot[Move](tree.UCB)
		newIteration := func() execution.Iteration {
			rng := internalxrand.New()
			cfg := s.workerConfig(rng)
			return guard(func() {
				search.SOIterate(root, state, cfg, rng)
				s.cfg.metrics.AddIteration()
			})
		}
		execution.TreeParallel(ctx, newIteration, s.cfg.workers, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return []*tree.Node[Move]{root}, nil

	case RootParallel:
		roots := make([]*tree.Node[Move], s.cfg.workers)
		var mu sync.Mutex
		i := 0
		newIteration := func() execution.Iteration {
			mu.Lock()
			idx := i
			i++
			mu.Unlock()
			root := tree.NewRoot[Move](tree.UCB)
			roots[idx] = root
			rng := internalxrand.New()
			cfg := s.workerConfig(rng)
			return guard(func() {
				search.SOIterate(root, state, cfg, rng)
				s.cfg.metrics.AddIteration()
			})
		}
		execution.RootParallel(ctx, newIteration, s.cfg.workers, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return roots, nil

	default:
		root := tree.NewRoot[Move](tree.UCB)
		rng := internalxrand.New()
		cfg := s.workerConfig(rng)
		iterate := guard(func() {
			search.SOIterate(root, state, cfg, rng)
			s.cfg.metrics.AddIteration()
		})
		execution.Sequential(ctx, iterate, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return []*tree.Node[Move]{root}, nil
	}
}

// aggregate picks the best move across one or more independently searched
// roots, using the plain robust-child criterion for a single root and the
// summed-visits criterion (execution.AggregateBestMove) for several.
func aggregate[Move comparable](roots []*tree.Node[Move]) Move {
	var best Move
	if len(roots) == 1 {
		best, _ = execution.BestMove(roots[0])
		return best
	}
	best, _ = execution.AggregateBestMove(roots)
	return best
}
