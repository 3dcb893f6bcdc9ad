// Package treepolicy implements the tree selection policies: UCB1 (and its
// discounted/sliding-window variants) for sequential decision points, and
// EXP3 for simultaneous-move decision points. Each policy is a pure function
// from a snapshot of legal child pointers to one selected child.
package treepolicy

import "github.com/sfranzen/ismcsolver/tree"

// Policy selects one of the given legal children. Implementations must not
// mutate the slice and must return one of its elements; callers guarantee it
// is never invoked with an empty slice.
type Policy[Move comparable] func(children []*tree.Node[Move]) *tree.Node[Move]
