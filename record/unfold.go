package record

// DefaultRepeat is how many copies make up an unfolded record.
const DefaultRepeat = 5

// Unfold repeats the record n times. Copies of the springs are joined by a
// single Unknown spring; the segments are simply repeated.
func Unfold(r *ConditionRecord, n int) *ConditionRecord {
	if n <= 1 {
		return r.Clone()
	}
	out := &ConditionRecord{
		Springs:  make([]Cell, 0, n*len(r.Springs)+n-1),
		Segments: make([]int, 0, n*len(r.Segments)),
	}
	for i := 0; i < n; i++ {
		out.Springs = append(out.Springs, r.Springs...)
		if i < n-1 {
			out.Springs = append(out.Springs, Unknown)
		}
		out.Segments = append(out.Segments, r.Segments...)
	}
	return out
}

// Compact returns a copy with every run of Operational springs collapsed to a
// single one. The arrangement count is unchanged but there are fewer cells
// for a search to walk.
func (r *ConditionRecord) Compact() *ConditionRecord {
	out := &ConditionRecord{
		Springs:  make([]Cell, 0, len(r.Springs)),
		Segments: make([]int, len(r.Segments)),
	}
	copy(out.Segments, r.Segments)
	for i, c := range r.Springs {
		if c == Operational && i > 0 && r.Springs[i-1] == Operational {
			continue
		}
		out.Springs = append(out.Springs, c)
	}
	return out
}
