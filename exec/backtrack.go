package exec

import (
	"slices"

	"github.com/timewinder-dev/springs/record"
)

// SearchStats describes the work a backtracking count did.
type SearchStats struct {
	Explored int // branches popped
	Pruned   int // branches rejected by the validator
	MaxDepth int // largest frontier seen
}

// Count returns the number of ways to resolve the record's Unknown springs so
// that the damaged runs match its segments. The search is exhaustive and only
// practical for records with few Unknown springs.
func Count(r *record.ConditionRecord) uint64 {
	n, _ := CountWithStats(r)
	return n
}

// CountWithStats is Count, also reporting the size of the search.
func CountWithStats(r *record.ConditionRecord) (uint64, SearchStats) {
	var stats SearchStats
	if !r.Feasible() {
		return 0, stats
	}

	var count uint64
	stack := &Stack{}
	stack.Push(Branch{Cells: slices.Clone(r.Springs)})

	for {
		b, ok := stack.Pop()
		if !ok {
			break
		}
		stats.Explored++

		st := Advance(b.State, b.Cells, r.Segments)
		if !st.Valid {
			stats.Pruned++
			continue
		}
		if st.Done {
			count++
			continue
		}

		// Stopped on an Unknown spring: try both resolutions from here.
		good := slices.Clone(b.Cells)
		good[st.PartIndex] = record.Operational
		stack.Push(Branch{State: st, Cells: good})

		b.Cells[st.PartIndex] = record.Damaged
		stack.Push(Branch{State: st, Cells: b.Cells})

		if stack.Len() > stats.MaxDepth {
			stats.MaxDepth = stack.Len()
		}
	}
	return count, stats
}
