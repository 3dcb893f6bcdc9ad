package treepolicy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfranzen/ismcsolver/game"
	"github.com/sfranzen/ismcsolver/tree"
)

type winLoss float64

func (r winLoss) Result(game.Player) float64 { return float64(r) }

const win winLoss = 1
const loss winLoss = 0

// newScoredChildren builds 10 children of root, gives the first a single
// winning update and every other one a losing update — the fixture the
// original library's policy test suite uses for every tree policy.
func newScoredChildren(root *tree.Node[int], kind tree.Kind) []*tree.Node[int] {
	children := make([]*tree.Node[int], 10)
	for i := range children {
		children[i] = root.AddChild(tree.NewChild[int](i, 0, kind))
	}
	children[0].Update(win)
	for _, c := range children[1:] {
		c.Update(loss)
	}
	return children
}

func TestUCB1SelectsHighestReward(t *testing.T) {
	root := tree.NewRoot[int](tree.UCB)
	children := newScoredChildren(root, tree.UCB)

	policy := NewUCB1[int](DefaultExploration)
	require.Same(t, children[0], policy.Select(children))
}

func TestUCB1MarksCandidatesAvailable(t *testing.T) {
	root := tree.NewRoot[int](tree.UCB)
	children := newScoredChildren(root, tree.UCB)

	NewUCB1[int](DefaultExploration).Select(children)
	for _, c := range children {
		require.EqualValues(t, 2, c.Available())
	}
}
