package treepolicy

import (
	"testing"

	"github.com/stretchr/testify/require"

	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/tree"
)

// EXP3's own sampling is non-deterministic, so this only checks the
// probability bookkeeping the original library's policy test relies on:
// with 10 children (one win, nine losses, one visit each), epsilon is capped
// at 1/K, so the policy assigns every candidate the same probability 0.1
// despite the differing scores, and each Update after that divides the
// observed reward by the recorded probability.
func TestEXP3RecordsSelectionProbability(t *testing.T) {
	root := tree.NewRoot[int](tree.EXP)
	children := newScoredChildren(root, tree.EXP)

	require.Equal(t, 1.0, children[0].Score())

	policy := NewEXP3[int](internalxrand.New())
	policy.Select(children)

	children[0].Update(win)
	require.InDelta(t, 1+1/children[0].Probability(), children[0].Score(), 1e-9)
}

func TestEXP3ProbabilitiesSumToOne(t *testing.T) {
	root := tree.NewRoot[int](tree.EXP)
	children := newScoredChildren(root, tree.EXP)

	weights := probabilities(children)
	var total float64
	for _, w := range weights {
		total += w
	}
	require.InDelta(t, 1.0, total, 1e-9)
}
