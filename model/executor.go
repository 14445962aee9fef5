package model

import (
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/springs/cas"
	"github.com/timewinder-dev/springs/record"
)

// DefaultWorkers is the pool size used when none is configured.
const DefaultWorkers = 32

// An Executor is the context and entrypoint for counting a batch of records.
type Executor struct {
	Workers     int  // 0 means runtime.NumCPU(); 1 runs jobs inline
	Repeat      int  // unfold factor for the second answer
	KeepGoing   bool // run every job even after one fails
	Reporter    Reporter
	DebugWriter io.Writer
	CAS         cas.CAS

	Engine Engine
}

// Engine runs a set of jobs and returns one result per job it ran. Engines
// stop early on the first failed job unless the executor keeps going.
type Engine interface {
	Execute(ctx context.Context, jobs []*Job) ([]JobResult, error)
}

// RunResult is the reduced outcome of one batch.
type RunResult struct {
	Sum        uint64
	Success    bool
	Failures   []*JobFailure
	Statistics RunStatistics
}

// Answer holds both puzzle answers for one input.
type Answer struct {
	Part1 *RunResult
	Part2 *RunResult
}

// NewExecutor returns an executor with default settings over c.
func NewExecutor(c cas.CAS) *Executor {
	return &Executor{
		Workers: DefaultWorkers,
		Repeat:  record.DefaultRepeat,
		CAS:     c,
	}
}

// Initialize fills in unset fields and picks the engine.
func (e *Executor) Initialize() error {
	if e.Workers <= 0 {
		e.Workers = runtime.NumCPU()
	}
	if e.Repeat <= 0 {
		e.Repeat = record.DefaultRepeat
	}
	if e.Reporter == nil {
		e.Reporter = &SilentReporter{}
	}
	if e.DebugWriter == nil {
		e.DebugWriter = io.Discard
	}
	if e.CAS == nil {
		e.CAS = cas.NewMemoryCAS()
	}
	return e.InitEngine()
}

func (e *Executor) InitEngine() error {
	if e.Workers == 1 {
		e.Engine = InitSingleThread(e)
		return nil
	}
	m, err := NewMultiThread(e, e.Workers)
	if err != nil {
		return err
	}
	e.Engine = m
	return nil
}

// Solve computes both answers: backtracking over the records as given, and
// interval counting over the records unfolded e.Repeat times.
func (e *Executor) Solve(ctx context.Context, lines []string) (*Answer, error) {
	part1, err := e.Run(ctx, lines, Backtrack, 1)
	if err != nil {
		return &Answer{Part1: part1}, err
	}
	part2, err := e.Run(ctx, lines, Interval, e.Repeat)
	return &Answer{Part1: part1, Part2: part2}, err
}

// Run counts every non-blank line with the given strategy and sums the
// results. Lines that are identical after trimming are counted once. If any
// job fails the result is marked unsuccessful and the error describes every
// failure collected.
func (e *Executor) Run(ctx context.Context, lines []string, strategy Strategy, repeat int) (*RunResult, error) {
	if e.Engine == nil {
		if err := e.Initialize(); err != nil {
			return nil, err
		}
	}
	start := time.Now()
	stats := RunStatistics{
		RunID:    uuid.New(),
		Strategy: strategy,
		Repeat:   repeat,
		Workers:  e.Workers,
	}
	logger := log.With().Str("run", stats.RunID.String()).Str("strategy", strategy.String()).Logger()

	var sum uint64
	var jobs []*Job
	byHash := make(map[cas.Hash]*Job)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		stats.Lines++
		job := NewJob(i+1, line, strategy, repeat)
		h, err := e.CAS.Put(job.Key())
		if err != nil {
			return nil, err
		}
		job.Hash = h

		if count, ok := e.CAS.GetResult(h); ok {
			stats.CacheHits++
			sum += count
			continue
		}
		if first, ok := byHash[h]; ok {
			stats.Duplicates++
			first.Multiplicity++
			continue
		}
		byHash[h] = job
		jobs = append(jobs, job)
	}
	stats.Dispatched = len(jobs)
	logger.Debug().Int("lines", stats.Lines).Int("jobs", len(jobs)).Msg("Dispatching jobs")

	results, err := e.Engine.Execute(ctx, jobs)

	var failures []*JobFailure
	for _, r := range results {
		if r.Err != nil {
			var f *JobFailure
			if !errors.As(r.Err, &f) {
				f = &JobFailure{JobID: r.Job.ID, Line: r.Job.Line, Hash: r.Job.Hash, Err: r.Err}
			}
			failures = append(failures, f)
			logger.Error().Err(r.Err).Int("line", r.Job.ID).Msg("Job failed")
			continue
		}
		stats.Completed++
		sum += r.Count * uint64(r.Job.Multiplicity)
		e.CAS.RecordResult(r.Job.Hash, r.Count)
	}

	stats.Failed = len(failures)
	stats.Sum = sum
	stats.Elapsed = time.Since(start)
	result := &RunResult{
		Sum:        sum,
		Success:    len(failures) == 0 && err == nil && stats.Completed == len(jobs),
		Failures:   failures,
		Statistics: stats,
	}

	if len(failures) > 0 {
		var errs *multierror.Error
		for _, f := range failures {
			errs = multierror.Append(errs, f)
		}
		return result, errs.ErrorOrNil()
	}
	if err != nil {
		return result, err
	}
	logger.Debug().Uint64("sum", sum).Dur("elapsed", stats.Elapsed).Msg("Run complete")
	return result, nil
}

// Lookup returns the stored key of the job at hash.
func (e *Executor) Lookup(hash cas.Hash) (*JobKey, error) {
	return cas.Retrieve[*JobKey](e.CAS, hash)
}
