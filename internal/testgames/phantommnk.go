package testgames

import (
	"sort"

	"github.com/sfranzen/ismcsolver/game"
	"github.com/sfranzen/ismcsolver/internal/xrand"
)

// PhantomMNK is the phantom variant of MNK: neither player can see which
// fields their opponent has already occupied, so those fields look
// available until actually tried. Trying an occupied field consumes the
// attempt (it is removed from that player's own view of what is available)
// without changing the board or the turn, so the same player tries again.
type PhantomMNK struct {
	MNK
	available [2][]int // sorted, one player's remaining candidate fields
}

// NewPhantomMNK constructs a phantom m,n,k game where every field initially
// looks available to both players.
func NewPhantomMNK(m, n, k int) *PhantomMNK {
	base := NewMNK(m, n, k)
	all := make([]int, m*n)
	for i := range all {
		all[i] = i
	}
	return &PhantomMNK{
		MNK:       *base,
		available: [2][]int{append([]int(nil), all...), append([]int(nil), all...)},
	}
}

func (g *PhantomMNK) clone() *PhantomMNK {
	c := &PhantomMNK{MNK: *g.MNK.CloneAndRandomise(0).(*MNK)}
	c.available[0] = append([]int(nil), g.available[0]...)
	c.available[1] = append([]int(nil), g.available[1]...)
	return c
}

// CloneAndRandomise reconstructs a state consistent with what observer
// knows: observer's own previous moves and available list are exact; the
// opponent's occupied fields that observer still believes open are
// forgotten and replayed with a random legal sequence of the same length,
// retried if that sequence would hand the opponent an immediate win (which
// observer would already know about, so it cannot be part of a state
// consistent with observer's knowledge of an ongoing game).
func (g *PhantomMNK) CloneAndRandomise(observer game.Player) game.Game[int] {
	clone := g.clone()
	opponent := 1 - observer
	numMoves := clone.undoMoves(opponent)
	clone.randomReplay(opponent, numMoves)
	return clone
}

// undoMoves reverts every board mark belonging to player that the other
// player's available list still lists as open, restoring them to the shared
// move pool and to player's own available list. It returns how many marks were reverted, the number of opponent
// moves randomReplay must then re-apply somewhere.
func (g *PhantomMNK) undoMoves(player game.Player) int {
	ours := &g.available[player]
	opponentAvailable := g.available[1-player]
	numMoves := 0
	for move := 0; move < g.m*g.n; move++ {
		r, c := g.row(move), g.column(move)
		if g.board[r][c] == int(player) && containsSorted(opponentAvailable, move) {
			g.board[r][c] = -1
			*ours = append(*ours, move)
			g.moves = append(g.moves, move)
			numMoves++
		}
	}
	sort.Ints(*ours)
	return numMoves
}

// randomReplay picks numMoves fields at random from the current move pool
// and marks them for player, retrying the whole draw if it would include an
// immediate winning move for player.
func (g *PhantomMNK) randomReplay(player game.Player, numMoves int) {
	rng := xrand.New()
	if numMoves > len(g.moves) {
		numMoves = len(g.moves)
	}
	for {
		trial := g.clone()
		candidates := append([]int(nil), trial.moves...)
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		picks := candidates[:numMoves]

		won := false
		for _, mv := range picks {
			if trial.isWinningMove(mv, player) {
				won = true
				break
			}
			trial.markBoard(mv, player)
		}
		if won {
			continue
		}

		for _, mv := range picks {
			trial.moves = removeInt(trial.moves, mv)
			trial.available[player] = removeInt(trial.available[player], mv)
		}
		*g = *trial
		return
	}
}

func (g *PhantomMNK) DoMove(move int) {
	available := &g.available[g.player]
	idx := indexOf(*available, move)
	if idx < 0 {
		panic("testgames: illegal move")
	}
	*available = removeAt(*available, idx)

	idx = indexOf(g.moves, move)
	if idx < 0 {
		// move already claimed by the opponent; this player's turn
		// continues, but with one fewer field left to try
		return
	}
	g.moves = removeAt(g.moves, idx)
	g.markBoard(move, g.player)

	switch {
	case g.isWinningMove(move, g.player):
		g.result = float64(1 - g.player)
		g.available[0], g.available[1] = nil, nil
	case len(g.moves) == 0:
		g.result = 0.5
		// Both players' views end here too: ValidMoves must report
		// terminal (empty) once the game is decided, draw included.
		g.available[0], g.available[1] = nil, nil
	default:
		g.player = 1 - g.player
	}
}

func (g *PhantomMNK) ValidMoves() []int {
	return append([]int(nil), g.available[g.player]...)
}

func containsSorted(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}

func indexOf(v []int, target int) int {
	for i, x := range v {
		if x == target {
			return i
		}
	}
	return -1
}

func removeAt(v []int, idx int) []int {
	return append(v[:idx:idx], v[idx+1:]...)
}

func removeInt(v []int, target int) []int {
	if idx := indexOf(v, target); idx >= 0 {
		return removeAt(v, idx)
	}
	return v
}
