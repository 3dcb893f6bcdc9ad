package testgames

import (
	"github.com/sfranzen/ismcsolver/game"
	"github.com/sfranzen/ismcsolver/internal/xrand"
)

// makeHand returns one 13-card hand of the given suit, Two through Ace.
func makeHand(suit Suit) []Card {
	hand := make([]Card, 13)
	for r := 0; r < 13; r++ {
		hand[r] = Card{Rank: Rank(r), Suit: suit}
	}
	return hand
}

// Goofspiel is a two-player simplification of the classic simultaneous-bid
// card game: thirteen rounds, each turning over one prize card from a fixed
// shuffled prize sequence (known to both players from the start — the
// original's three-way variant, where a third "nature" player deals prizes
// one at a time so their future order stays hidden, is dropped; this
// module has no interest in hidden-information card orders as such, only in
// hidden simultaneous moves, and this keeps that property while halving the
// state machine's turn count). Each round, both players secretly bid a card
// from their own 13-card hand; the higher bid wins the prize's value, ties
// win nothing, and after all thirteen rounds the higher total wins.
//
// The one hidden-information mechanic this keeps from the original is the
// trick that makes "simultaneous" moves work inside CloneAndRandomise: once
// player 0's bid for the round has actually been applied to the real game
// state, an observer clone built for player 1 (who has not bid yet, and so
// must not see player 0's real bid) overwrites that stored bid with a
// uniformly random card from what player 1 believes could still be in
// player 0's hand.
type Goofspiel struct {
	prizes []Card
	round  int

	hands  [2][]Card
	moves  [2]Card // this round's bids; moves[p] is meaningless until p has bid
	scores [2]int
	player game.Player
}

// NewGoofspiel constructs a new game with a freshly shuffled prize order.
func NewGoofspiel() *Goofspiel {
	g := &Goofspiel{
		prizes: makeHand(Hearts),
		hands:  [2][]Card{makeHand(Spades), makeHand(Clubs)},
	}
	xrand.New().Shuffle(len(g.prizes), func(i, j int) {
		g.prizes[i], g.prizes[j] = g.prizes[j], g.prizes[i]
	})
	return g
}

func (g *Goofspiel) clone() *Goofspiel {
	c := *g
	c.prizes = append([]Card(nil), g.prizes...)
	c.hands[0] = append([]Card(nil), g.hands[0]...)
	c.hands[1] = append([]Card(nil), g.hands[1]...)
	return &c
}

// CloneAndRandomise returns an exact copy, except when observer is about to
// bid second this round: then the first bidder's already-applied real move
// is put back into that player's hand and replaced by a uniformly random
// card drawn (and removed) from that hand, so observer's determinisation
// cannot see the real bid.
func (g *Goofspiel) CloneAndRandomise(observer game.Player) game.Game[Card] {
	clone := g.clone()
	if observer == 1 && g.player == 1 {
		hand := append(clone.hands[0], clone.moves[0])
		i := xrand.New().Intn(len(hand))
		clone.moves[0] = hand[i]
		clone.hands[0] = append(hand[:i:i], hand[i+1:]...)
	}
	return clone
}

func (g *Goofspiel) CurrentPlayer() game.Player { return g.player }

func (g *Goofspiel) Players() []game.Player { return []game.Player{0, 1} }

func (g *Goofspiel) ValidMoves() []Card {
	if g.round >= len(g.prizes) {
		return nil
	}
	return append([]Card(nil), g.hands[g.player]...)
}

func (g *Goofspiel) DoMove(move Card) {
	hand := &g.hands[g.player]
	idx := -1
	for i, c := range *hand {
		if c == move {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("testgames: illegal move")
	}
	*hand = append((*hand)[:idx:idx], (*hand)[idx+1:]...)
	g.moves[g.player] = move

	if g.player == 0 {
		g.player = 1
		return
	}
	g.resolveRound()
	g.player = 0
}

func (g *Goofspiel) resolveRound() {
	prize := g.prizes[g.round]
	switch {
	case g.moves[0].value() > g.moves[1].value():
		g.scores[0] += prize.value()
	case g.moves[1].value() > g.moves[0].value():
		g.scores[1] += prize.value()
	}
	g.round++
}

func (g *Goofspiel) Result(player game.Player) float64 {
	switch {
	case g.scores[0] == g.scores[1]:
		return 0.5
	case g.scores[player] > g.scores[1-player]:
		return 1
	default:
		return 0
	}
}

func (g *Goofspiel) CurrentMoveSimultaneous() bool { return true }
