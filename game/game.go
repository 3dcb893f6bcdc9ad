// Package game defines the contract an ISMCTS client must implement.
package game

// Player identifies a participant. Concrete games are free to use whatever
// small range of values makes sense to them; the solver never interprets a
// Player beyond equality comparison and use as a map key.
type Player uint

// Game is the interface the search consumes. A value should behave like a
// finite state machine: after DoMove returns, the state must be ready to
// accept the next move.
//
// State should be immutable from the caller's perspective in the sense that
// the solver never mutates a Game directly except through DoMove on a clone
// it owns; CloneAndRandomise must never mutate the receiver.
type Game[Move any] interface {
	// CloneAndRandomise returns a new state with the information hidden from
	// observer sampled uniformly from the set consistent with what observer
	// knows. The receiver must be left unchanged.
	CloneAndRandomise(observer Player) Game[Move]

	// CurrentPlayer reports who acts next.
	CurrentPlayer() Player

	// ValidMoves lists the legal moves from this state. An empty result means
	// the state is terminal.
	ValidMoves() []Move

	// DoMove applies move to the state, advancing CurrentPlayer. Behaviour is
	// undefined if move is not among ValidMoves().
	DoMove(move Move)

	// Result reports player's outcome in [0, 1]; only called on terminal
	// states (ValidMoves() == nil).
	Result(player Player) float64

	// CurrentMoveSimultaneous reports whether the decision at this state is a
	// simultaneous move, in which case the EXP3 tree policy and EXP node
	// variant apply instead of UCB1/UCB. Games that never have simultaneous
	// moves can embed SequentialOnly to get a false-returning default.
	CurrentMoveSimultaneous() bool
}

// POMGame extends Game for partially-observable-move games, which is the
// information multi-observer search needs to build one tree per player.
type POMGame[Move any] interface {
	Game[Move]

	// Players enumerates every player identifier participating in the game.
	Players() []Player
}

// SequentialOnly can be embedded in a Game implementation that never has
// simultaneous-move decision points, to satisfy CurrentMoveSimultaneous
// without writing the method out.
type SequentialOnly struct{}

// CurrentMoveSimultaneous always returns false.
func (SequentialOnly) CurrentMoveSimultaneous() bool { return false }
