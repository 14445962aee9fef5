package model

import (
	"fmt"

	"github.com/timewinder-dev/springs/cas"
)

// JobFailure reports a job that did not produce a count.
type JobFailure struct {
	JobID int
	Line  string
	Hash  cas.Hash
	Err   error
}

func (f *JobFailure) Error() string {
	return fmt.Sprintf("job %d (%q, %s): %v", f.JobID, f.Line, f.Hash, f.Err)
}

func (f *JobFailure) Unwrap() error {
	return f.Err
}

// WorkerFailure is a panic recovered while running a job.
type WorkerFailure struct {
	Worker int
	Value  any
	Stack  []byte
}

func (f *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d panicked: %v", f.Worker, f.Value)
}
