package treepolicy

import (
	"math"

	"github.com/sfranzen/ismcsolver/tree"
)

// DiscountedUCB replaces UCB1's plain cumulative score with an
// exponentially-discounted sum over each node's recorded trial history,
// weighting a trial recorded at availability s by gamma^(t-s), where t is
// the node's current availability. Ported at contract level from the
// original library's D_UCB/D_UCBNode (tree/d_ucb.h); not wired into the
// default solver configuration (spec's tree policy default remains UCB1) but
// selectable explicitly.
type DiscountedUCB[Move comparable] struct {
	Exploration float64
	Gamma       float64
}

// NewDiscountedUCB constructs a DiscountedUCB policy with the given
// exploration constant and discount factor gamma in (0, 1].
func NewDiscountedUCB[Move comparable](exploration, gamma float64) *DiscountedUCB[Move] {
	if exploration < 0 {
		exploration = 0
	}
	return &DiscountedUCB[Move]{Exploration: exploration, Gamma: gamma}
}

// Select marks every candidate as available, computes each node's discounted
// sums, and returns the child with maximum discounted UCB score.
func (p *DiscountedUCB[Move]) Select(children []*tree.Node[Move]) *tree.Node[Move] {
	for _, c := range children {
		c.MarkAvailable()
	}

	type sums struct{ n, x float64 }
	results := make([]sums, len(children))
	var totalN float64
	for i, c := range children {
		n, x := discountedSums(c, p.Gamma)
		results[i] = sums{n, x}
		totalN += n
	}

	best := 0
	bestScore := math.Inf(-1)
	for i, r := range results {
		score := r.x/r.n + 2*p.Exploration*math.Sqrt(math.Log(totalN)/r.n)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return children[best]
}

func discountedSums[Move comparable](n *tree.Node[Move], gamma float64) (sumN, sumX float64) {
	t := float64(n.Available())
	for _, trial := range n.History() {
		discount := math.Pow(gamma, t-float64(trial.At))
		sumN += discount
		sumX += discount * trial.Result
	}
	return sumN, sumX
}

// WindowedUCB replaces UCB1's plain cumulative score with a sum over only
// the trials recorded within the node's last window availabilities. Ported at
// contract level from the original library's SW_UCB/SW_UCBNode
// (tree/sw_ucb.h).
type WindowedUCB[Move comparable] struct {
	Exploration float64
	Window      uint64
}

// NewWindowedUCB constructs a WindowedUCB policy with the given exploration
// constant and window width, counted in availabilities.
func NewWindowedUCB[Move comparable](exploration float64, window uint64) *WindowedUCB[Move] {
	if exploration < 0 {
		exploration = 0
	}
	if window == 0 {
		window = 1
	}
	return &WindowedUCB[Move]{Exploration: exploration, Window: window}
}

// Select marks every candidate as available, computes each node's windowed
// sums, and returns the child with maximum windowed UCB score.
func (p *WindowedUCB[Move]) Select(children []*tree.Node[Move]) *tree.Node[Move] {
	for _, c := range children {
		c.MarkAvailable()
	}

	type sums struct {
		n uint64
		x float64
	}
	results := make([]sums, len(children))
	var totalN uint64
	for i, c := range children {
		n, x := windowedSums(c, p.Window)
		results[i] = sums{n, x}
		totalN += n
	}
	if totalN > p.Window {
		totalN = p.Window
	}

	best := 0
	bestScore := math.Inf(-1)
	for i, r := range results {
		score := r.x/float64(r.n) + p.Exploration*math.Sqrt(math.Log(float64(totalN))/float64(r.n))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return children[best]
}

func windowedSums[Move comparable](n *tree.Node[Move], window uint64) (count uint64, sum float64) {
	available := n.Available()
	min := uint64(0)
	if window <= available {
		min = available - window + 1
	}
	for _, trial := range n.History() {
		if trial.At >= min {
			count++
			sum += trial.Result
		}
	}
	return count, sum
}
