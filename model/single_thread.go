package model

import (
	"context"
	"fmt"
	"time"
)

// SingleThreadEngine runs jobs one after another on the calling goroutine.
type SingleThreadEngine struct {
	Executor *Executor
}

func InitSingleThread(exec *Executor) *SingleThreadEngine {
	return &SingleThreadEngine{
		Executor: exec,
	}
}

func (s *SingleThreadEngine) Execute(ctx context.Context, jobs []*Job) ([]JobResult, error) {
	w := s.Executor.DebugWriter
	start := time.Now()

	out := make([]JobResult, 0, len(jobs))
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if w != nil {
			fmt.Fprintf(w, "Processing line %d: %s\n", job.ID, job.Line)
		}
		result := RunJob(0, job)
		out = append(out, result)
		if s.Executor.Reporter != nil {
			s.Executor.Reporter.Printf("%s", formatProgress(len(out), len(jobs), time.Since(start)))
		}

		if result.Err != nil && !s.Executor.KeepGoing {
			break
		}
	}
	return out, nil
}
