package record

import (
	"math"
	"strconv"
	"strings"
)

// Cell is the known state of a single spring in a condition record.
type Cell uint8

const (
	Operational Cell = iota
	Damaged
	Unknown
)

func (c Cell) String() string {
	switch c {
	case Operational:
		return "."
	case Damaged:
		return "#"
	default:
		return "?"
	}
}

// ConditionRecord is a row of springs together with the run lengths of damaged
// springs it must produce, in order. Records are never mutated after
// construction; every transformation returns a new record.
type ConditionRecord struct {
	Springs  []Cell
	Segments []int
}

// New builds a record from copies of the given cells and run lengths.
func New(springs []Cell, segments []int) *ConditionRecord {
	r := &ConditionRecord{
		Springs:  make([]Cell, len(springs)),
		Segments: make([]int, len(segments)),
	}
	copy(r.Springs, springs)
	copy(r.Segments, segments)
	return r
}

// MinLength is the fewest springs that can hold every segment: the runs
// themselves plus one separating spring between each pair. The sum
// saturates at math.MaxInt.
func (r *ConditionRecord) MinLength() int {
	if len(r.Segments) == 0 {
		return 0
	}
	total := len(r.Segments) - 1
	for _, s := range r.Segments {
		if s > math.MaxInt-total {
			return math.MaxInt
		}
		total += s
	}
	return total
}

// Feasible reports whether the segments fit in the springs at all.
func (r *ConditionRecord) Feasible() bool {
	return r.MinLength() <= len(r.Springs)
}

// Count returns how many springs are in the given state.
func (r *ConditionRecord) Count(c Cell) int {
	n := 0
	for _, s := range r.Springs {
		if s == c {
			n++
		}
	}
	return n
}

// Pattern renders the springs in the input alphabet.
func (r *ConditionRecord) Pattern() string {
	var b strings.Builder
	b.Grow(len(r.Springs))
	for _, c := range r.Springs {
		b.WriteString(c.String())
	}
	return b.String()
}

// String renders the record in the same format Parse accepts.
func (r *ConditionRecord) String() string {
	parts := make([]string, len(r.Segments))
	for i, s := range r.Segments {
		parts[i] = strconv.Itoa(s)
	}
	return r.Pattern() + " " + strings.Join(parts, ",")
}

func (r *ConditionRecord) Clone() *ConditionRecord {
	return New(r.Springs, r.Segments)
}

// Reverse returns the mirror image of the record. A record and its mirror
// admit the same number of arrangements.
func (r *ConditionRecord) Reverse() *ConditionRecord {
	out := &ConditionRecord{
		Springs:  make([]Cell, len(r.Springs)),
		Segments: make([]int, len(r.Segments)),
	}
	for i, c := range r.Springs {
		out.Springs[len(r.Springs)-1-i] = c
	}
	for i, s := range r.Segments {
		out.Segments[len(r.Segments)-1-i] = s
	}
	return out
}

func (r *ConditionRecord) Equal(o *ConditionRecord) bool {
	if len(r.Springs) != len(o.Springs) || len(r.Segments) != len(o.Segments) {
		return false
	}
	for i := range r.Springs {
		if r.Springs[i] != o.Springs[i] {
			return false
		}
	}
	for i := range r.Segments {
		if r.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}
