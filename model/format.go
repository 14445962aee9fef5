package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
)

// RunStatistics describes one Executor.Run.
type RunStatistics struct {
	RunID      uuid.UUID
	Strategy   Strategy
	Repeat     int
	Workers    int
	Lines      int // non-blank input lines
	Dispatched int // jobs handed to the engine
	Duplicates int // lines folded into an identical dispatched job
	CacheHits  int // lines answered from earlier runs
	Completed  int
	Failed     int
	Sum        uint64
	Elapsed    time.Duration
}

// formatProgress renders a one-line progress indicator that rewrites itself.
func formatProgress(done, total int, elapsed time.Duration) string {
	line := fmt.Sprintf("\r%s %d/%d jobs (%s)",
		color.Cyan.Sprint("Counting"),
		done, total,
		elapsed.Round(time.Millisecond))
	if done == total {
		line += "\n"
	}
	return line
}

// FormatJobFailure formats a single failed job for display
func FormatJobFailure(f *JobFailure) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint("================================================================================"))
	b.WriteString("\n")
	b.WriteString(color.Red.Sprint("JOB FAILED"))
	b.WriteString("\n")
	b.WriteString(color.Gray.Sprint("================================================================================"))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Line:     "))
	b.WriteString(fmt.Sprintf("%d\n", f.JobID))
	b.WriteString(color.Bold.Sprint("Record:   "))
	b.WriteString(color.Yellow.Sprintf("%s\n", f.Line))
	b.WriteString(color.Bold.Sprint("Hash:     "))
	b.WriteString(fmt.Sprintf("%s\n", f.Hash))
	b.WriteString(color.Bold.Sprint("Message:  "))
	b.WriteString(color.Red.Sprintf("%v\n", f.Err))
	b.WriteString(color.Gray.Sprint("================================================================================"))
	b.WriteString("\n")
	return b.String()
}

// FormatAllFailures formats every failed job of a run
func FormatAllFailures(failures []*JobFailure) string {
	if len(failures) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(color.Red.Sprintf("FAILED JOBS: %d\n", len(failures)))
	for i, f := range failures {
		b.WriteString(color.Yellow.Sprintf("\nFailure #%d:\n", i+1))
		b.WriteString(FormatJobFailure(f))
	}
	return b.String()
}

// FormatStatistics formats run statistics
func FormatStatistics(stats RunStatistics) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(color.Cyan.Sprintf("=== %s statistics (run %s) ===", stats.Strategy, stats.RunID))
	b.WriteString("\n")
	b.WriteString(color.Bold.Sprint("Records: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Lines))
	if stats.Repeat > 1 {
		b.WriteString(color.Bold.Sprint("Unfolded: "))
		b.WriteString(fmt.Sprintf("%dx\n", stats.Repeat))
	}
	b.WriteString(color.Bold.Sprint("Workers: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Workers))
	b.WriteString(color.Bold.Sprint("Jobs dispatched: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Dispatched))
	b.WriteString(color.Bold.Sprint("Duplicate records folded: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.Duplicates))
	b.WriteString(color.Bold.Sprint("Cached results reused: "))
	b.WriteString(fmt.Sprintf("%d\n", stats.CacheHits))

	b.WriteString(color.Bold.Sprint("Failed jobs: "))
	if stats.Failed > 0 {
		b.WriteString(color.Red.Sprintf("%d\n", stats.Failed))
	} else {
		b.WriteString(color.Green.Sprintf("%d\n", stats.Failed))
	}
	b.WriteString(color.Bold.Sprint("Elapsed: "))
	b.WriteString(fmt.Sprintf("%s\n", stats.Elapsed.Round(time.Millisecond)))
	return b.String()
}
