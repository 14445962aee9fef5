package exec

import "github.com/timewinder-dev/springs/record"

// ValidationState is the progress of a left-to-right check of a candidate
// arrangement against a record's segments. It can be resumed from PartIndex
// once the Unknown spring it stopped at has been resolved.
type ValidationState struct {
	SegmentIndex      int  // segment the current run is matched against
	CompletedSegments int  // runs closed so far
	CurrentLen        int  // length of the open run
	Building          bool // a damaged run is open
	PartIndex         int  // next spring to consume
	Valid             bool // consistent with the segments so far
	Done              bool // every spring consumed and every segment matched
}

// target is the length the open run must reach. Past the last segment it is
// zero, so any further damaged spring is rejected.
func target(segments []int, idx int) int {
	if idx < len(segments) {
		return segments[idx]
	}
	return 0
}

// Advance consumes springs starting at state.PartIndex. It stops at the first
// Unknown spring with Valid set and Done clear, returning the state the caller
// should resume from once that spring is resolved.
func Advance(state ValidationState, springs []record.Cell, segments []int) ValidationState {
	state.Valid = false
	state.Done = false
	want := target(segments, state.SegmentIndex)

	for ; state.PartIndex < len(springs); state.PartIndex++ {
		switch springs[state.PartIndex] {
		case record.Unknown:
			state.Valid = true
			return state
		case record.Operational:
			if !state.Building {
				continue
			}
			if state.CurrentLen != want {
				return state
			}
			state.Building = false
			state.CurrentLen = 0
			state.SegmentIndex++
			state.CompletedSegments++
			want = target(segments, state.SegmentIndex)
		case record.Damaged:
			if state.CurrentLen == want {
				return state
			}
			state.Building = true
			state.CurrentLen++
		}
	}

	if state.Building {
		if state.CurrentLen != want {
			return state
		}
		state.CompletedSegments++
	}
	if state.CompletedSegments != len(segments) {
		return state
	}
	state.Valid = true
	state.Done = true
	return state
}

// IsValid reports whether a record with no Unknown springs matches its own
// segments exactly.
func IsValid(r *record.ConditionRecord) bool {
	return Advance(ValidationState{}, r.Springs, r.Segments).Done
}
