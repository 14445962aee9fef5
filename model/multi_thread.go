package model

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// MultiThreadEngine runs jobs on a fixed pool of worker goroutines fed from
// a shared queue.
type MultiThreadEngine struct {
	// Configuration
	Executor   *Executor
	numWorkers int

	// Work channels
	workQueue chan *Job
	results   chan JobResult
}

// NewMultiThread creates a new multi-threaded engine.
// numWorkers: number of workers counting jobs
func NewMultiThread(executor *Executor, numWorkers int) (*MultiThreadEngine, error) {
	if executor == nil {
		return nil, fmt.Errorf("multi-thread engine needs an executor")
	}
	// Default to NumCPU if not specified
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &MultiThreadEngine{
		Executor:   executor,
		numWorkers: numWorkers,
	}, nil
}

// Execute pushes every job through the pool and blocks until each dispatched
// job has reported. In fail-fast mode the first failed job cancels the jobs
// not yet started.
func (m *MultiThreadEngine) Execute(ctx context.Context, jobs []*Job) ([]JobResult, error) {
	m.workQueue = make(chan *Job, m.numWorkers*2)
	m.results = make(chan JobResult, m.numWorkers*2)

	g, gctx := errgroup.WithContext(ctx)

	// Feed the queue
	g.Go(func() error {
		defer close(m.workQueue)
		for _, job := range jobs {
			select {
			case m.workQueue <- job:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})

	// Start workers
	for i := 0; i < m.numWorkers; i++ {
		workerID := i
		g.Go(func() error {
			return m.worker(gctx, workerID)
		})
	}

	var waitErr error
	go func() {
		waitErr = g.Wait()
		close(m.results)
	}()

	start := time.Now()
	out := make([]JobResult, 0, len(jobs))
	for r := range m.results {
		out = append(out, r)
		if m.Executor.Reporter != nil {
			m.Executor.Reporter.Printf("%s", formatProgress(len(out), len(jobs), time.Since(start)))
		}
	}

	if err := ctx.Err(); err != nil {
		return out, err
	}
	if waitErr != nil {
		log.Debug().Err(waitErr).Int("completed", len(out)).Int("jobs", len(jobs)).Msg("Stopped after first failure")
	}
	return out, nil
}

// worker counts jobs until the queue is drained or the run is cancelled.
func (m *MultiThreadEngine) worker(ctx context.Context, workerID int) error {
	w := m.Executor.DebugWriter
	for {
		var job *Job
		var ok bool
		select {
		case job, ok = <-m.workQueue:
			if !ok {
				// Channel closed, all work handed out
				return nil
			}
		case <-ctx.Done():
			return nil
		}

		if w != nil && w != io.Discard {
			fmt.Fprintf(w, "[Worker %d] Processing line %d: %s\n", workerID, job.ID, job.Line)
		}
		result := RunJob(workerID, job)
		log.Debug().
			Int("worker", workerID).
			Int("line", job.ID).
			Uint64("count", result.Count).
			Dur("elapsed", result.Elapsed).
			Msg("Job finished")

		// Results are always delivered so the reduction sees every job that ran.
		m.results <- result

		if result.Err != nil && !m.Executor.KeepGoing {
			return result.Err
		}
	}
}
