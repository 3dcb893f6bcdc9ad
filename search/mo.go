package search

import (
	xrand "golang.org/x/exp/rand"

	"github.com/sfranzen/ismcsolver/game"
	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/tree"
)

// Cursors maps each player to their current position in that player's own
// information-set tree. MOIterate builds a fresh Cursors from the players'
// persistent tree roots (see NewCursors) at the start of every iteration.
type Cursors[Move comparable] map[game.Player]*tree.Node[Move]

// NewCursors returns a shallow copy of roots suitable for one call to
// MOIterate; roots itself (each player's persistent root node) is never
// mutated by MOIterate, only the copy's entries are reassigned as the
// iteration walks deeper.
func NewCursors[Move comparable](roots map[game.Player]*tree.Node[Move]) Cursors[Move] {
	cursors := make(Cursors[Move], len(roots))
	for p, n := range roots {
		cursors[p] = n
	}
	return cursors
}

// MOIterate runs one multi-observer ISMCTS iteration. Every player's tree is
// walked in lockstep: at each step the cursor belonging to the player to act
// selects (or, once its move is chosen, every cursor advances by
// FindOrAddChild on that same move), so that all players' trees stay aligned
// on the same played sequence even though each tree is a different
// abstraction of it (built from that player's information).
func MOIterate[Move comparable](roots map[game.Player]*tree.Node[Move], rootState game.POMGame[Move], cfg Config[Move], rng *xrand.Rand) {
	state := rootState.CloneAndRandomise(rootState.CurrentPlayer())
	cursors := NewCursors(roots)

	moSelect(cursors, state, cfg)
	moExpand(cursors, state, rng)
	simulate(state, cfg.DefaultPolicy)
	for _, n := range cursors {
		backPropagate(n, state)
	}
}

func moSelect[Move comparable](cursors Cursors[Move], state game.Game[Move], cfg Config[Move]) {
	for {
		legal := state.ValidMoves()
		player := state.CurrentPlayer()
		target := cursors[player]
		if len(legal) == 0 || len(target.UntriedMoves(legal)) > 0 {
			return
		}

		policy := cfg.SeqTreePolicy
		if state.CurrentMoveSimultaneous() {
			policy = cfg.SimTreePolicy
		}
		chosen := target.SelectChild(legal, policy)
		move, kind := chosen.Move(), chosen.Kind()
		advanceCursors(cursors, state, move, kind)
		state.DoMove(move)
	}
}

func moExpand[Move comparable](cursors Cursors[Move], state game.Game[Move], rng *xrand.Rand) {
	legal := state.ValidMoves()
	if len(legal) == 0 {
		return
	}
	target := cursors[state.CurrentPlayer()]
	untried := target.UntriedMoves(legal)
	if len(untried) == 0 {
		return
	}

	move := internalxrand.Element(rng, untried)
	kind := tree.UCB
	if state.CurrentMoveSimultaneous() {
		kind = tree.EXP
	}
	advanceCursors(cursors, state, move, kind)
	state.DoMove(move)
}

// advanceCursors moves every player's cursor to the (possibly newly created)
// child for move, keyed by the mover's identity as the child's
// PlayerJustMoved so that each player's Update later attributes reward
// correctly.
func advanceCursors[Move comparable](cursors Cursors[Move], state game.Game[Move], move Move, kind tree.Kind) {
	mover := state.CurrentPlayer()
	for p, n := range cursors {
		cursors[p] = n.FindOrAddChild(move, func() *tree.Node[Move] {
			return tree.NewChild[Move](move, mover, kind)
		})
	}
}
