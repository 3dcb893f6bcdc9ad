package treepolicy

import (
	"math"

	"github.com/sfranzen/ismcsolver/tree"
)

// DefaultExploration is the UCB1 exploration constant used when a solver is
// not configured with an explicit one, matching the original library's
// default.
const DefaultExploration = 0.7

// UCB1 is the upper-confidence-bound tree policy used by default at
// sequential decision points. It requires every candidate child to already
// have at least one visit; the search algorithm guarantees this by routing
// the first encounter of any untried move through expansion rather than
// selection.
type UCB1[Move comparable] struct {
	Exploration float64
}

// NewUCB1 constructs a UCB1 policy with the given exploration constant,
// clamped to be non-negative.
func NewUCB1[Move comparable](exploration float64) *UCB1[Move] {
	if exploration < 0 {
		exploration = 0
	}
	return &UCB1[Move]{Exploration: exploration}
}

// Select marks every candidate as available, then returns the child with the
// maximum UCB score, breaking ties at the first maximum encountered.
func (p *UCB1[Move]) Select(children []*tree.Node[Move]) *tree.Node[Move] {
	for _, c := range children {
		c.MarkAvailable()
	}

	best := children[0]
	bestScore := ucbScore(best, p.Exploration)
	for _, c := range children[1:] {
		if s := ucbScore(c, p.Exploration); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

func ucbScore[Move comparable](n *tree.Node[Move], exploration float64) float64 {
	visits := float64(n.Visits())
	return n.Score()/visits + exploration*math.Sqrt(math.Log(float64(n.Available()))/visits)
}
