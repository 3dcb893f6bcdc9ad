package search

import (
	"github.com/sfranzen/ismcsolver/rollout"
	"github.com/sfranzen/ismcsolver/treepolicy"
)

// Config binds the policies one search worker uses for the lifetime of its
// iterations: the sequential (UCB-family) tree policy, the simultaneous-move
// (EXP3-family) tree policy, and the default rollout policy. A solver builds
// one Config per worker goroutine, because the EXP3 and random-rollout
// default implementations each own a per-goroutine PRNG that must not be
// shared across workers.
type Config[Move comparable] struct {
	SeqTreePolicy treepolicy.Policy[Move]
	SimTreePolicy treepolicy.Policy[Move]
	DefaultPolicy rollout.Policy[Move]
}
