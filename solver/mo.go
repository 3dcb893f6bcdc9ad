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

// MO chooses moves with multi-observer ISMCTS: one tree per player, walked
// in lockstep so that every player's tree stays aligned on the same
// sequence of played moves.
type MO[Move comparable] struct {
	cfg  config[Move]
	mu   sync.Mutex
	sets []map[game.Player]*tree.Node[Move]
}

// NewMO constructs an MO solver. See Option for the available settings.
func NewMO[Move comparable](opts ...Option[Move]) *MO[Move] {
	cfg := newConfig[Move]()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &MO[Move]{cfg: cfg}
}

func (s *MO[Move]) workerConfig(rng *xrand.Rand) search.Config[Move] {
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

func newRootSet[Move comparable](players []game.Player) map[game.Player]*tree.Node[Move] {
	roots := make(map[game.Player]*tree.Node[Move], len(players))
	for _, p := range players {
		roots[p] = tree.NewRoot[Move](tree.UCB)
	}
	return roots
}

// ChooseMove runs a multi-observer search from state and returns the
// most-visited move at the acting player's root.
func (s *MO[Move]) ChooseMove(state game.POMGame[Move]) (move Move, err error) {
	var zero Move
	if len(state.ValidMoves()) == 0 {
		return zero, ErrNoValidMoves
	}

	start := time.Now()
	s.cfg.metrics.Start(s.cfg.execPolicy.String(), s.cfg.workers, s.cfg.budget)

	actor := state.CurrentPlayer()
	sets, err := s.search(state)
	if err != nil {
		return zero, err
	}

	roots := make([]*tree.Node[Move], len(sets))
	for i, set := range sets {
		roots[i] = set[actor]
	}
	m := aggregate(roots)

	metric := s.cfg.metrics.Complete()
	s.mu.Lock()
	s.sets = sets
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

// CurrentTrees returns observer's tree from each of the last search's tree
// sets (see SO.CurrentTrees).
func (s *MO[Move]) CurrentTrees(observer game.Player) []*tree.Node[Move] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*tree.Node[Move], 0, len(s.sets))
	for _, set := range s.sets {
		if n, ok := set[observer]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (s *MO[Move]) search(state game.POMGame[Move]) ([]map[game.Player]*tree.Node[Move], error) {
	players := state.Players()

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
		roots := newRootSet[Move](players)
		newIteration := func() execution.Iteration {
			rng := internalxrand.New()
			cfg := s.workerConfig(rng)
			return guard(func() {
				search.MOIterate(roots, state, cfg, rng)
				s.cfg.metrics.AddIteration()
			})
		}
		execution.TreeParallel(ctx, newIteration, s.cfg.workers, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return []map[game.Player]*tree.Node[Move]{roots}, nil

	case RootParallel:
		sets := make([]map[game.Player]*tree.Node[Move], s.cfg.workers)
		var mu sync.Mutex
		i := 0
		newIteration := func() execution.Iteration {
			mu.Lock()
			idx := i
			i++
			mu.Unlock()
			roots := newRootSet[Move](players)
			sets[idx] = roots
			rng := internalxrand.New()
			cfg := s.workerConfig(rng)
			return guard(func() {
				search.MOIterate(roots, state, cfg, rng)
				s.cfg.metrics.AddIteration()
			})
		}
		execution.RootParallel(ctx, newIteration, s.cfg.workers, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return sets, nil

	default:
		roots := newRootSet[Move](players)
		rng := internalxrand.New()
		cfg := s.workerConfig(rng)
		iterate := guard(func() {
			search.MOIterate(roots, state, cfg, rng)
			s.cfg.metrics.AddIteration()
		})
		execution.Sequential(ctx, iterate, s.cfg.budget)
		if panicErr != nil {
			return nil, panicErr
		}
		return []map[game.Player]*tree.Node[Move]{roots}, nil
	}
}
