package model

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/timewinder-dev/springs/exec"
	"github.com/timewinder-dev/springs/interval"
	"github.com/timewinder-dev/springs/record"
)

// Counter is the signature shared by both counting algorithms.
type Counter func(r *record.ConditionRecord) uint64

// countBacktrack walks the compacted record; collapsing runs of Operational
// springs does not change the count.
func countBacktrack(r *record.ConditionRecord) uint64 {
	return exec.Count(r.Compact())
}

var counters = map[Strategy]Counter{
	Backtrack: countBacktrack,
	Interval:  interval.Count,
}

func counterFor(s Strategy) (Counter, error) {
	c, ok := counters[s]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %v", s)
	}
	return c, nil
}

// RunJob parses, unfolds and counts a single job. A panic is recovered and
// returned as a WorkerFailure.
func RunJob(workerID int, job *Job) (result JobResult) {
	start := time.Now()
	result = JobResult{Job: job, Worker: workerID}
	defer func() {
		if v := recover(); v != nil {
			result.Count = 0
			result.Err = &WorkerFailure{Worker: workerID, Value: v, Stack: debug.Stack()}
		}
		if result.Err != nil {
			result.Err = &JobFailure{JobID: job.ID, Line: job.Line, Hash: job.Hash, Err: result.Err}
		}
		result.Elapsed = time.Since(start)
	}()

	count, err := counterFor(job.Strategy)
	if err != nil {
		result.Err = err
		return result
	}
	r, err := record.Parse(job.Line)
	if err != nil {
		var pe *record.ParseError
		if errors.As(err, &pe) {
			pe.Line = job.ID
		}
		result.Err = err
		return result
	}
	if job.Repeat > 1 {
		r = record.Unfold(r, job.Repeat)
	}
	result.Count = count(r)
	return result
}
