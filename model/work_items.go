package model

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shamaton/msgpack/v2"
	"github.com/timewinder-dev/springs/cas"
)

// Strategy selects the counting algorithm a job runs.
type Strategy int

const (
	// Backtrack enumerates arrangements with the incremental validator.
	Backtrack Strategy = iota
	// Interval counts arrangements with the memoized interval counter.
	Interval
)

func (s Strategy) String() string {
	switch s {
	case Backtrack:
		return "backtrack"
	case Interval:
		return "interval"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backtrack":
		return Backtrack, nil
	case "interval":
		return Interval, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want backtrack or interval)", s)
}

// Job is one input line to be counted. A job is owned by exactly one worker
// while it runs.
type Job struct {
	ID       int // 1-based line number in the input
	Line     string
	Strategy Strategy
	Repeat   int
	Hash     cas.Hash

	// Multiplicity is how many input lines share this job's key.
	Multiplicity int
}

// JobKey is the content a job's address is derived from.
type JobKey struct {
	Line     string
	Strategy Strategy
	Repeat   int
}

func (k *JobKey) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, k)
}

func (k *JobKey) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, k)
}

func init() {
	cas.RegisterType("JobKey", &JobKey{})
}

// Key returns the job's addressable content.
func (j *Job) Key() *JobKey {
	return &JobKey{
		Line:     j.Line,
		Strategy: j.Strategy,
		Repeat:   j.Repeat,
	}
}

// JobResult is the outcome of a single job.
type JobResult struct {
	Job     *Job
	Count   uint64
	Err     error
	Worker  int
	Elapsed time.Duration
}

// NewJob creates a job for the given input line.
func NewJob(id int, line string, strategy Strategy, repeat int) *Job {
	return &Job{
		ID:           id,
		Line:         strings.TrimSpace(line),
		Strategy:     strategy,
		Repeat:       repeat,
		Multiplicity: 1,
	}
}
