// Package rollout implements the default (simulation) policy: picking a
// move to apply during the simulation phase of an ISMCTS iteration, once the
// search has descended past the part of the tree it has already built.
package rollout

import (
	xrand "golang.org/x/exp/rand"

	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
)

// Policy picks one move from the given non-empty list of valid moves during
// simulation. It is an injected function so callers may substitute a
// heuristic rollout for the default uniform-random one.
type Policy[Move any] func(validMoves []Move) Move

// Random returns a Policy that picks uniformly among the valid moves using
// rng. Pass a per-goroutine *rand.Rand (see internal/xrand.New) so workers
// never contend on a shared generator; this is the default policy used by
// the solver package.
func Random[Move any](rng *xrand.Rand) Policy[Move] {
	return func(validMoves []Move) Move {
		return internalxrand.Element(rng, validMoves)
	}
}
