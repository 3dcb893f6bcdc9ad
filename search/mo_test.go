package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfranzen/ismcsolver/game"
	"github.com/sfranzen/ismcsolver/internal/testgames"
	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/rollout"
	"github.com/sfranzen/ismcsolver/treepolicy"
	"github.com/sfranzen/ismcsolver/tree"
)

func TestMOIterateKeepsCursorsAligned(t *testing.T) {
	rng := internalxrand.New()
	cfg := Config[testgames.Card]{
		SeqTreePolicy: treepolicy.NewUCB1[testgames.Card](treepolicy.DefaultExploration).Select,
		SimTreePolicy: treepolicy.NewEXP3[testgames.Card](rng).Select,
		DefaultPolicy: rollout.Random[testgames.Card](rng),
	}

	state := testgames.NewGoofspiel()
	roots := map[game.Player]*tree.Node[testgames.Card]{
		0: tree.NewRoot[testgames.Card](tree.EXP),
		1: tree.NewRoot[testgames.Card](tree.EXP),
	}

	const iterations = 100
	for i := 0; i < iterations; i++ {
		MOIterate(roots, state, cfg, rng)
	}

	require.EqualValues(t, iterations, roots[0].Visits())
	require.EqualValues(t, iterations, roots[1].Visits())
	requireSameMoveSets(t, roots[0], roots[1])
}

// requireSameMoveSets asserts the invariant advanceCursors is meant to
// maintain: every node inserted into one player's tree has a same-move
// counterpart in the other's, at every depth, since a single MOIterate call
// always advances every cursor on the same move in lockstep.
func requireSameMoveSets(t *testing.T, a, b *tree.Node[testgames.Card]) {
	t.Helper()

	byMoveA := make(map[testgames.Card]*tree.Node[testgames.Card])
	for _, c := range a.Children() {
		byMoveA[c.Move()] = c
	}
	byMoveB := make(map[testgames.Card]*tree.Node[testgames.Card])
	for _, c := range b.Children() {
		byMoveB[c.Move()] = c
	}

	movesA := make([]testgames.Card, 0, len(byMoveA))
	for m := range byMoveA {
		movesA = append(movesA, m)
	}
	movesB := make([]testgames.Card, 0, len(byMoveB))
	for m := range byMoveB {
		movesB = append(movesB, m)
	}
	require.ElementsMatch(t, movesA, movesB, "player 0 and player 1's trees diverged on the moves tried from this point")

	for move, childA := range byMoveA {
		requireSameMoveSets(t, childA, byMoveB[move])
	}
}

func TestNewCursorsDoesNotMutateRoots(t *testing.T) {
	roots := map[game.Player]*tree.Node[int]{
		0: tree.NewRoot[int](tree.UCB),
	}
	cursors := NewCursors(roots)
	cursors[0] = tree.NewChild[int](1, 0, tree.UCB)

	require.NotSame(t, roots[0], cursors[0])
}
