// Package search implements one ISMCTS iteration — determinise, select,
// expand, simulate, backpropagate — for both the single-observer and the
// multi-observer algorithms.
package search

import (
	xrand "golang.org/x/exp/rand"

	"github.com/sfranzen/ismcsolver/game"
	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/tree"
)

// SOIterate runs one single-observer ISMCTS iteration from root against
// rootState, using cfg's policies and rng for expansion's uniform move pick.
// rootState is never mutated; root and its descendants gain visits and
// statistics, and the tree below root may grow.
func SOIterate[Move comparable](root *tree.Node[Move], rootState game.Game[Move], cfg Config[Move], rng *xrand.Rand) {
	state := rootState.CloneAndRandomise(rootState.CurrentPlayer())

	node := soSelect(root, state, cfg)
	node = soExpand(node, state, rng)
	simulate(state, cfg.DefaultPolicy)
	backPropagate(node, state)
}

func soSelect[Move comparable](node *tree.Node[Move], state game.Game[Move], cfg Config[Move]) *tree.Node[Move] {
	for {
		legal := state.ValidMoves()
		if len(legal) == 0 || len(node.UntriedMoves(legal)) > 0 {
			return node
		}
		policy := cfg.SeqTreePolicy
		if state.CurrentMoveSimultaneous() {
			policy = cfg.SimTreePolicy
		}
		child := node.SelectChild(legal, policy)
		state.DoMove(child.Move())
		node = child
	}
}

func soExpand[Move comparable](node *tree.Node[Move], state game.Game[Move], rng *xrand.Rand) *tree.Node[Move] {
	legal := state.ValidMoves()
	if len(legal) == 0 {
		return node
	}
	untried := node.UntriedMoves(legal)
	if len(untried) == 0 {
		return node
	}

	move := internalxrand.Element(rng, untried)
	kind := tree.UCB
	if state.CurrentMoveSimultaneous() {
		kind = tree.EXP
	}
	child := node.FindOrAddChild(move, func() *tree.Node[Move] {
		return tree.NewChild[Move](move, state.CurrentPlayer(), kind)
	})
	state.DoMove(move)
	return child
}

// simulate applies the default policy repeatedly until state is terminal.
func simulate[Move comparable](state game.Game[Move], policy func([]Move) Move) {
	for {
		moves := state.ValidMoves()
		if len(moves) == 0 {
			return
		}
		state.DoMove(policy(moves))
	}
}

// backPropagate walks from node to the root, updating every visited node
// with the now-terminal state.
func backPropagate[Move comparable](node *tree.Node[Move], state game.Game[Move]) {
	for n := node; n != nil; n = n.Parent() {
		n.Update(state)
	}
}
