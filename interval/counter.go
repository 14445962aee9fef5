// Package interval counts condition record arrangements without enumerating
// them, by splitting a record at each possible placement of its first
// remaining run and memoizing the counts of the suffixes.
package interval

import "github.com/timewinder-dev/springs/record"

// Tally is the result of counting one subproblem: how many arrangements
// exist and how many Damaged springs of the slice those arrangements cover.
// A nonzero Count always covers every Damaged spring of its slice.
type Tally struct {
	Count   uint64
	Covered int
}

// key names the subproblem springs[Start:] against segments[Cursor:]. Every
// subproblem runs to the end of both arrays, so the pair is enough.
type key struct {
	Start  int
	Cursor int
}

// Counter holds one record's backing arrays and memo. It is not safe for
// concurrent use; each job builds its own.
type Counter struct {
	springs  []record.Cell
	segments []int

	damaged     []int // damaged[i] = number of Damaged springs in springs[:i]
	operational []int // operational[i] = number of Operational springs in springs[:i]
	need        []int // need[k] = fewest springs that hold segments[k:]

	memo map[key]Tally

	// Calls counts subproblem evaluations, memo hits included.
	Calls int
	// Hits counts memo hits.
	Hits int
}

// NewCounter prepares a counter for r. The record is not copied; callers must
// not mutate it while the counter is in use.
func NewCounter(r *record.ConditionRecord) *Counter {
	n := len(r.Springs)
	c := &Counter{
		springs:     r.Springs,
		segments:    r.Segments,
		damaged:     make([]int, n+1),
		operational: make([]int, n+1),
		need:        make([]int, len(r.Segments)+1),
		memo:        make(map[key]Tally),
	}
	for i, s := range r.Springs {
		c.damaged[i+1] = c.damaged[i]
		c.operational[i+1] = c.operational[i]
		switch s {
		case record.Damaged:
			c.damaged[i+1]++
		case record.Operational:
			c.operational[i+1]++
		}
	}
	// need saturates at n+1: anything longer than the row is equally infeasible.
	for k := len(r.Segments) - 1; k >= 0; k-- {
		c.need[k] = min(r.Segments[k], n+1)
		if k < len(r.Segments)-1 {
			c.need[k] = min(c.need[k]+1+c.need[k+1], n+1)
		}
	}
	return c
}

// Count returns the number of valid arrangements of r.
func Count(r *record.ConditionRecord) uint64 {
	return NewCounter(r).Count()
}

// Count evaluates the whole record.
func (c *Counter) Count() uint64 {
	return c.Solve(0, 0).Count
}

// MemoSize is the number of memoized subproblems.
func (c *Counter) MemoSize() int {
	return len(c.memo)
}

func (c *Counter) damagedIn(from, to int) int {
	return c.damaged[to] - c.damaged[from]
}

func (c *Counter) operationalIn(from, to int) int {
	return c.operational[to] - c.operational[from]
}

// Solve counts arrangements of springs[start:] against segments[cursor:].
func (c *Counter) Solve(start, cursor int) Tally {
	c.Calls++
	n := len(c.springs)
	if start > n {
		start = n
	}
	remaining := len(c.segments) - cursor

	switch {
	case start == n:
		if remaining == 0 {
			return Tally{Count: 1}
		}
		return Tally{}
	case remaining == 0:
		if c.damagedIn(start, n) == 0 {
			return Tally{Count: 1}
		}
		return Tally{}
	case c.need[cursor] > n-start:
		return Tally{}
	}

	k := key{Start: start, Cursor: cursor}
	if t, ok := c.memo[k]; ok {
		c.Hits++
		return t
	}

	var t Tally
	switch {
	case remaining == 1:
		t = c.window(start, c.segments[cursor])
	case c.need[cursor] == n-start:
		// No slack: the first run can only sit at start.
		t = c.split(start, cursor, start, c.damagedIn(start, n))
	default:
		t = c.splits(start, cursor)
	}
	c.memo[k] = t
	return t
}

// window handles the last run: slide a window of width l across the slice and
// count the positions that hold no Operational spring and cover every
// Damaged spring in the slice.
func (c *Counter) window(start, l int) Tally {
	n := len(c.springs)
	total := c.damagedIn(start, n)
	if total > l {
		return Tally{}
	}

	var count uint64
	var good, bad int
	for i := start; i < n; i++ {
		switch c.springs[i] {
		case record.Operational:
			good++
		case record.Damaged:
			bad++
		}
		if i-start >= l {
			switch c.springs[i-l] {
			case record.Operational:
				good--
			case record.Damaged:
				bad--
			}
		}
		if i-start+1 >= l && good == 0 && bad >= total {
			count++
		}
	}
	if count == 0 {
		return Tally{}
	}
	return Tally{Count: count, Covered: total}
}

// splits tries every offset for the first remaining run and sums the
// arrangements of what follows it.
func (c *Counter) splits(start, cursor int) Tally {
	n := len(c.springs)
	target := c.damagedIn(start, n)
	last := n - c.need[cursor]

	var out Tally
	for i := start; i <= last; i++ {
		// springs[start:i] becomes all Operational. Once it holds a Damaged
		// spring no later offset can work either.
		if c.damagedIn(start, i) > 0 {
			break
		}
		t := c.split(start, cursor, i, target)
		out.Count += t.Count
	}
	if out.Count > 0 {
		out.Covered = target
	}
	return out
}

// split places the run segments[cursor] at springs[i:i+l], with springs[i+l]
// as its separator, and counts arrangements of the remainder.
func (c *Counter) split(start, cursor, i, target int) Tally {
	n := len(c.springs)
	l := c.segments[cursor]
	end := i + l
	if c.damagedIn(start, i) > 0 || c.operationalIn(i, end) > 0 {
		return Tally{}
	}
	if end < n && c.springs[end] == record.Damaged {
		return Tally{}
	}

	right := c.Solve(end+1, cursor+1)
	if right.Count == 0 {
		return Tally{}
	}
	return Tally{Count: right.Count, Covered: target}
}
