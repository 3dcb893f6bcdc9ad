package treepolicy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfranzen/ismcsolver/tree"
)

func TestDiscountedUCBSelectsHighestReward(t *testing.T) {
	root := tree.NewRoot[int](tree.UCB)
	children := newScoredChildren(root, tree.UCB)

	policy := NewDiscountedUCB[int](DefaultExploration, 0.9)
	require.Same(t, children[0], policy.Select(children))
}

func TestWindowedUCBSelectsHighestReward(t *testing.T) {
	root := tree.NewRoot[int](tree.UCB)
	children := newScoredChildren(root, tree.UCB)

	policy := NewWindowedUCB[int](DefaultExploration, 5)
	require.Same(t, children[0], policy.Select(children))
}
