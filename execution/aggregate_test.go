package execution

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfranzen/ismcsolver/game"
	"github.com/sfranzen/ismcsolver/tree"
)

func visited(move int, visits uint64) *tree.Node[int] {
	n := tree.NewChild[int](move, game.Player(0), tree.UCB)
	for i := uint64(0); i < visits; i++ {
		n.Update(constantResult(1))
	}
	return n
}

type constantResult float64

func (r constantResult) Result(game.Player) float64 { return float64(r) }

func rootWith(children ...*tree.Node[int]) *tree.Node[int] {
	root := tree.NewRoot[int](tree.UCB)
	for _, c := range children {
		root.AddChild(c)
	}
	return root
}

func TestBestMovePicksMostVisitedChild(t *testing.T) {
	root := rootWith(visited(0, 3), visited(1, 10), visited(2, 4))

	move, ok := BestMove(root)
	require.True(t, ok)
	require.Equal(t, 1, move)
}

func TestBestMoveNoChildren(t *testing.T) {
	root := tree.NewRoot[int](tree.UCB)

	_, ok := BestMove(root)
	require.False(t, ok)
}

func TestAggregateBestMoveSumsAcrossRoots(t *testing.T) {
	roots := []*tree.Node[int]{
		rootWith(visited(0, 10), visited(1, 4)),
		rootWith(visited(0, 2), visited(1, 9)),
		rootWith(visited(0, 1), visited(1, 7)),
	}

	move, ok := AggregateBestMove(roots)
	require.True(t, ok)
	require.Equal(t, 1, move)
}

func TestAggregateBestMoveEmpty(t *testing.T) {
	_, ok := AggregateBestMove[int](nil)
	require.False(t, ok)
}
