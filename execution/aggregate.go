package execution

import "github.com/sfranzen/ismcsolver/tree"

// BestMove returns the move of root's most-visited child, the standard
// robust-child move selection criterion, and false if root has no children
// at all. Ties resolve to whichever qualifying child sorts first among
// root.Children().
func BestMove[Move comparable](root *tree.Node[Move]) (Move, bool) {
	var best *tree.Node[Move]
	for _, c := range root.Children() {
		if best == nil || c.Visits() > best.Visits() {
			best = c
		}
	}
	if best == nil {
		var zero Move
		return zero, false
	}
	return best.Move(), true
}

// AggregateBestMove applies the robust-child criterion across several
// independently searched roots (RootParallel's trees), summing each move's
// visit count over every root before comparing, rather than trusting any
// single tree's counts alone.
func AggregateBestMove[Move comparable](roots []*tree.Node[Move]) (Move, bool) {
	totals := make(map[Move]uint64)
	order := make([]Move, 0)
	for _, root := range roots {
		for _, c := range root.Children() {
			if _, seen := totals[c.Move()]; !seen {
				order = append(order, c.Move())
			}
			totals[c.Move()] += c.Visits()
		}
	}

	var best Move
	var bestVisits uint64
	found := false
	for _, m := range order {
		if v := totals[m]; !found || v > bestVisits {
			best, bestVisits, found = m, v, true
		}
	}
	return best, found
}
