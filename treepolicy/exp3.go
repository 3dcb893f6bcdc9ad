package treepolicy

import (
	"math"

	xrand "golang.org/x/exp/rand"

	internalxrand "github.com/sfranzen/ismcsolver/internal/xrand"
	"github.com/sfranzen/ismcsolver/tree"
)

// EXP3 is the exponential-weight tree policy used at simultaneous-move
// decision points. It computes a non-uniform probability distribution over
// the candidate children favouring those with better expected reward, then
// samples one child from that distribution; the sampled probability is
// recorded on the node so its later Update can importance-weight the
// observed reward (EXP3's standard trick for adversarial bandits).
//
// The probability formula is a direct port of the original library's EXP3
// (tree/exp3.h), itself a modified version of Algorithm 1 in Seldin et al.
// (2012), "Evaluation and Analysis of the Performance of the EXP3 Algorithm
// in Stochastic Environments".
type EXP3[Move comparable] struct {
	rng *xrand.Rand
}

// NewEXP3 constructs an EXP3 policy using rng for sampling. Pass a
// per-goroutine *rand.Rand (see internal/xrand.New) so that concurrent
// workers never contend on a shared generator.
func NewEXP3[Move comparable](rng *xrand.Rand) *EXP3[Move] {
	return &EXP3[Move]{rng: rng}
}

// Select computes each candidate's EXP3 probability, records it on the node,
// and samples one child proportionally.
func (p *EXP3[Move]) Select(children []*tree.Node[Move]) *tree.Node[Move] {
	weights := probabilities(children)
	return children[internalxrand.WeightedIndex(p.rng, weights)]
}

func probabilities[Move comparable](children []*tree.Node[Move]) []float64 {
	k := len(children)
	var t uint64
	for _, c := range children {
		t += c.Visits()
	}
	epsT := epsilon(k, t)
	epsTm1 := epsilon(k, t-1)

	var expSum float64
	for _, c := range children {
		expSum += math.Exp(epsTm1 * c.Score())
	}

	probs := make([]float64, k)
	for i, c := range children {
		p := epsT + (1-float64(k)*epsT)*math.Exp(epsTm1*c.Score())/expSum
		c.SetProbability(p)
		probs[i] = p
	}
	return probs
}

// epsilon is the EXP3 exploration rate, using the combined visit count of
// the candidate nodes as the trial counter t (the original's rationale: the
// number of trials varies with the set of nodes under consideration).
func epsilon(k int, t uint64) float64 {
	return math.Min(1/float64(k), math.Sqrt(math.Log(float64(k))/(float64(k)*float64(t))))
}
