// Package testgames provides small, fully-observable and
// partially-observable games used only by this module's own tests: the m,n,k
// generalisation of tic-tac-toe, its phantom (hidden-move) variant, and a
// two-player simplification of Goofspiel. None of it is part of the public
// API.
package testgames

import "github.com/sfranzen/ismcsolver/game"

// stride is a (row, column) direction to scan for a winning run.
type stride struct{ dRow, dCol int }

var mnkStrides = [4]stride{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // descending diagonal
	{-1, 1}, // ascending diagonal
}

// MNK is the m,n,k game: an m-by-n board on which the first player to
// connect k marks in a row (any of the four directions) wins. 3,3,3 is
// tic-tac-toe.
type MNK struct {
	m, n, k int
	board   [][]int // -1 empty, else player index
	moves   []int
	player  game.Player
	result  float64 // -1 while in progress, else player 0's result
}

// NewMNK constructs an empty m-by-n board with win length k.
func NewMNK(m, n, k int) *MNK {
	if m < 0 {
		m = 0
	}
	if n < 0 {
		n = 0
	}
	if k < 0 {
		k = 0
	}
	board := make([][]int, n)
	for i := range board {
		row := make([]int, m)
		for j := range row {
			row[j] = -1
		}
		board[i] = row
	}
	moves := make([]int, m*n)
	for i := range moves {
		moves[i] = i
	}
	return &MNK{m: m, n: n, k: k, board: board, moves: moves, result: -1}
}

// CloneAndRandomise returns a copy; MNK has no hidden information, so
// observer is ignored, matching the original's cloneAndRandomise.
func (g *MNK) CloneAndRandomise(game.Player) game.Game[int] {
	clone := *g
	clone.board = make([][]int, len(g.board))
	for i, row := range g.board {
		clone.board[i] = append([]int(nil), row...)
	}
	clone.moves = append([]int(nil), g.moves...)
	return &clone
}

func (g *MNK) CurrentPlayer() game.Player { return g.player }

func (g *MNK) Players() []game.Player { return []game.Player{0, 1} }

func (g *MNK) ValidMoves() []int {
	if g.result != -1 {
		return nil
	}
	return append([]int(nil), g.moves...)
}

// DoMove applies move, panicking if it is not currently legal — mirroring
// the original's std::out_of_range("Illegal move"), which the solver's
// worker-panic handling is built to catch and propagate.
func (g *MNK) DoMove(move int) {
	idx := -1
	for i, m := range g.moves {
		if m == move {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("testgames: illegal move")
	}
	g.moves = append(g.moves[:idx], g.moves[idx+1:]...)
	g.markBoard(move, g.player)

	switch {
	case g.isWinningMove(move, g.player):
		g.result = float64(1 - g.player)
	case len(g.moves) == 0:
		g.result = 0.5
	default:
		g.player = 1 - g.player
	}
}

func (g *MNK) Result(player game.Player) float64 {
	if player == 0 {
		return g.result
	}
	return 1 - g.result
}

func (g *MNK) CurrentMoveSimultaneous() bool { return false }

func (g *MNK) markBoard(move int, player game.Player) {
	g.board[g.row(move)][g.column(move)] = int(player)
}

func (g *MNK) row(move int) int    { return move / g.m }
func (g *MNK) column(move int) int { return move % g.m }

func (g *MNK) isWinningMove(move int, player game.Player) bool {
	for _, s := range mnkStrides {
		if g.hasWinningSequence(move, s, player) {
			return true
		}
	}
	return false
}

func (g *MNK) hasWinningSequence(move int, s stride, player game.Player) bool {
	count := 1
	r0, c0 := g.row(move), g.column(move)
	for _, dir := range [2]int{-1, 1} {
		r, c := r0, c0
		for {
			r += dir * s.dRow
			c += dir * s.dCol
			if !g.occupiedBy(r, c, player) {
				break
			}
			count++
		}
	}
	return count >= g.k
}

func (g *MNK) occupiedBy(row, col int, player game.Player) bool {
	if row < 0 || col < 0 || row >= g.n || col >= g.m {
		return false
	}
	return g.board[row][col] == int(player)
}
