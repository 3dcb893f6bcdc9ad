package tree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sfranzen/ismcsolver/game"
)

const testMove = 42
const testPlayer game.Player = 1

type mockTerminal struct{ result float64 }

func (m mockTerminal) Result(game.Player) float64 { return m.result }

func TestNodeConstruction(t *testing.T) {
	for _, kind := range []Kind{UCB, EXP} {
		t.Run(kind.String(), func(t *testing.T) {
			root := NewRoot[int](kind)

			require.Nil(t, root.Parent())
			require.Empty(t, root.Children())
			require.Zero(t, root.Move())
			require.Zero(t, root.PlayerJustMoved())
			require.Zero(t, root.Visits())
			require.True(t, root.IsRoot())
			require.NotEmpty(t, root.String())
		})
	}
}

func TestNodeAddChild(t *testing.T) {
	for _, kind := range []Kind{UCB, EXP} {
		t.Run(kind.String(), func(t *testing.T) {
			root := NewRoot[int](kind)
			child := root.AddChild(NewChild[int](testMove, testPlayer, kind))

			require.Same(t, root, child.Parent())
			require.Equal(t, testMove, child.Move())
			require.Equal(t, testPlayer, child.PlayerJustMoved())
			require.Len(t, root.Children(), 1)
			require.Same(t, child, root.Children()[0])
		})
	}
}

func TestNodeUpdate(t *testing.T) {
	for _, kind := range []Kind{UCB, EXP} {
		t.Run(kind.String(), func(t *testing.T) {
			root := NewRoot[int](kind)
			child := root.AddChild(NewChild[int](testMove, testPlayer, kind))

			require.NotPanics(t, func() { child.Update(mockTerminal{result: 1}) })
			require.EqualValues(t, 1, child.Visits())
		})
	}
}

func TestNodeUpdateSkipsRootScore(t *testing.T) {
	root := NewRoot[int](UCB)
	root.Update(mockTerminal{result: 1})

	require.EqualValues(t, 1, root.Visits())
	require.Zero(t, root.Score())
}

func TestNodeUntriedMoves(t *testing.T) {
	for _, kind := range []Kind{UCB, EXP} {
		t.Run(kind.String(), func(t *testing.T) {
			root := NewRoot[int](kind)
			legalMoves := make([]int, 10)
			for i := range legalMoves {
				legalMoves[i] = i
			}

			t.Run("at a leaf node", func(t *testing.T) {
				require.ElementsMatch(t, legalMoves, root.UntriedMoves(legalMoves))
			})

			t.Run("after expanding available moves", func(t *testing.T) {
				remaining := append([]int(nil), legalMoves...)
				for len(remaining) > 0 {
					move := remaining[len(remaining)-1]
					root.AddChild(NewChild[int](move, testPlayer, kind))
					remaining = remaining[:len(remaining)-1]
					require.ElementsMatch(t, remaining, root.UntriedMoves(legalMoves))
				}
			})
		})
	}
}

func TestNodeFindOrAddChildIdempotent(t *testing.T) {
	root := NewRoot[int](UCB)
	factory := func() *Node[int] { return NewChild[int](testMove, testPlayer, UCB) }

	first := root.FindOrAddChild(testMove, factory)
	second := root.FindOrAddChild(testMove, factory)

	require.Same(t, first, second)
	require.Len(t, root.Children(), 1)
}

func TestNodeSelectChildRestrictsToLegalMoves(t *testing.T) {
	root := NewRoot[int](UCB)
	a := root.AddChild(NewChild[int](1, testPlayer, UCB))
	root.AddChild(NewChild[int](2, testPlayer, UCB))

	selected := root.SelectChild([]int{1}, func(candidates []*Node[int]) *Node[int] {
		require.Len(t, candidates, 1)
		return candidates[0]
	})
	require.Same(t, a, selected)
}
