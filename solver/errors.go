package solver

import (
	"errors"
	"fmt"
)

// ErrNoValidMoves is returned by ChooseMove when the state passed in is
// already terminal (ValidMoves() is empty). The caller should not invoke
// the solver on terminal states; the solver does not call any further Game
// method once this is detected.
var ErrNoValidMoves = errors.New("solver: root state has no valid moves")

// PanicError wraps a non-error value recovered from a worker goroutine panic
// (a Game implementation signalling its own failure, per spec's
// "out-of-range move" error kind) so it can cross the join point as a normal
// error. A panic value that is itself an error is not put in a PanicError:
// newPanicError wraps it with %w instead, so errors.Is and errors.As see the
// original error.
type PanicError struct {
	Recovered any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("solver: worker panicked: %v", e.Recovered)
}

// newPanicError wraps a recovered value, preserving it as the error's cause
// when the recovered value is itself an error.
func newPanicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return fmt.Errorf("solver: worker panicked: %w", err)
	}
	return &PanicError{Recovered: recovered}
}
