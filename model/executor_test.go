package model

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/springs/cas"
	"github.com/timewinder-dev/springs/record"
)

var sample = []string{
	"???.### 1,1,3",
	".??..??...?##. 1,1,3",
	"?#?#?#?#?#?#?#? 1,3,1,6",
	"????.#...#... 4,1,1",
	"????.######..#####. 1,6,5",
	"?###???????? 3,2,1",
}

func newExecutor(t *testing.T, workers int) *Executor {
	t.Helper()
	e := NewExecutor(cas.NewMemoryCAS())
	e.Workers = workers
	require.NoError(t, e.Initialize())
	return e
}

// TestEngineEquivalence verifies that the pool produces the same sums as the inline engine
func TestEngineEquivalence(t *testing.T) {
	testCases := []struct {
		name    string
		workers int
	}{
		{"single thread", 1},
		{"2 workers", 2},
		{"4 workers", 4},
		{"default pool", DefaultWorkers},
		{"more workers than jobs", 64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newExecutor(t, tc.workers)
			answer, err := e.Solve(context.Background(), sample)
			require.NoError(t, err)
			assert.Equal(t, uint64(21), answer.Part1.Sum)
			assert.Equal(t, uint64(525152), answer.Part2.Sum)
			assert.True(t, answer.Part1.Success)
			assert.True(t, answer.Part2.Success)
			assert.Equal(t, 6, answer.Part2.Statistics.Completed)
		})
	}
}

func TestEngineKinds(t *testing.T) {
	_, ok := newExecutor(t, 1).Engine.(*SingleThreadEngine)
	assert.True(t, ok)
	_, ok = newExecutor(t, 4).Engine.(*MultiThreadEngine)
	assert.True(t, ok)
}

func TestRunIsIdempotent(t *testing.T) {
	for _, workers := range []int{1, 8} {
		first, err := newExecutor(t, workers).Run(context.Background(), sample, Interval, 5)
		require.NoError(t, err)
		second, err := newExecutor(t, workers).Run(context.Background(), sample, Interval, 5)
		require.NoError(t, err)
		assert.Equal(t, first.Sum, second.Sum)
		assert.NotEqual(t, first.Statistics.RunID, second.Statistics.RunID)
	}
}

func TestRunReusesCachedResults(t *testing.T) {
	e := newExecutor(t, 4)
	first, err := e.Run(context.Background(), sample, Interval, 5)
	require.NoError(t, err)
	assert.Equal(t, 6, first.Statistics.Dispatched)
	assert.Equal(t, 0, first.Statistics.CacheHits)

	second, err := e.Run(context.Background(), sample, Interval, 5)
	require.NoError(t, err)
	assert.Equal(t, first.Sum, second.Sum)
	assert.Equal(t, 0, second.Statistics.Dispatched)
	assert.Equal(t, 6, second.Statistics.CacheHits)

	// A different unfold factor is a different job.
	third, err := e.Run(context.Background(), sample, Interval, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(21), third.Sum)
	assert.Equal(t, 6, third.Statistics.Dispatched)
}

func TestRunFoldsDuplicateLines(t *testing.T) {
	lines := []string{"?###???????? 3,2,1", "", "?###???????? 3,2,1", "  ?###???????? 3,2,1", "???.### 1,1,3"}
	e := newExecutor(t, 4)
	result, err := e.Run(context.Background(), lines, Interval, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(3*506250+1), result.Sum)
	assert.Equal(t, 4, result.Statistics.Lines)
	assert.Equal(t, 2, result.Statistics.Dispatched)
	assert.Equal(t, 2, result.Statistics.Duplicates)
}

func TestRunEmptyInput(t *testing.T) {
	result, err := newExecutor(t, 4).Run(context.Background(), []string{"", "   "}, Backtrack, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Sum)
	assert.True(t, result.Success)
}

func TestRunParseFailure(t *testing.T) {
	lines := append([]string{}, sample...)
	lines = append(lines, "??x.### 1,1,3")

	for _, workers := range []int{1, 4} {
		e := newExecutor(t, workers)
		result, err := e.Run(context.Background(), lines, Backtrack, 1)
		require.Error(t, err)
		require.NotNil(t, result)
		assert.False(t, result.Success)
		require.Len(t, result.Failures, 1)

		f := result.Failures[0]
		assert.Equal(t, 7, f.JobID)
		assert.Equal(t, "??x.### 1,1,3", f.Line)

		var pe *record.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, 7, pe.Line)
		assert.Equal(t, 3, pe.Column)

		key, err := e.Lookup(f.Hash)
		require.NoError(t, err)
		assert.Equal(t, f.Line, key.Line)
	}
}

func TestRunKeepGoingCollectsEveryFailure(t *testing.T) {
	lines := []string{"???.### 1,1,3", "bad 1", "?###???????? 3,2,1", "#?# 0"}
	for _, workers := range []int{1, 4} {
		e := newExecutor(t, workers)
		e.KeepGoing = true
		result, err := e.Run(context.Background(), lines, Backtrack, 1)
		require.Error(t, err)
		assert.False(t, result.Success)
		assert.Len(t, result.Failures, 2)
		assert.Equal(t, 2, result.Statistics.Completed)
		assert.Equal(t, 2, result.Statistics.Failed)
		assert.Equal(t, 4, result.Statistics.Dispatched)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 2)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 4} {
		result, err := newExecutor(t, workers).Run(ctx, sample, Interval, 5)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, result.Success)
	}
}

func TestRunJobUnknownStrategy(t *testing.T) {
	result := RunJob(3, &Job{ID: 9, Line: "???.### 1,1,3", Strategy: Strategy(42)})
	require.Error(t, result.Err)

	var jf *JobFailure
	require.ErrorAs(t, result.Err, &jf)
	assert.Equal(t, 9, jf.JobID)

	var wf *WorkerFailure
	assert.False(t, errors.As(result.Err, &wf), "unknown strategy is reported, not panicked")
}

func TestRunJobRecoversPanic(t *testing.T) {
	const exploding = Strategy(99)
	counters[exploding] = func(*record.ConditionRecord) uint64 { panic("boom") }
	defer delete(counters, exploding)

	result := RunJob(5, NewJob(4, "???.### 1,1,3", exploding, 1))
	require.Error(t, result.Err)
	assert.Equal(t, uint64(0), result.Count)

	var wf *WorkerFailure
	require.ErrorAs(t, result.Err, &wf)
	assert.Equal(t, 5, wf.Worker)
	assert.Equal(t, "boom", wf.Value)
	assert.NotEmpty(t, wf.Stack)

	var jf *JobFailure
	require.ErrorAs(t, result.Err, &jf)
	assert.Equal(t, 4, jf.JobID)
}

func TestRunJobStrategies(t *testing.T) {
	for _, s := range []Strategy{Backtrack, Interval} {
		r := RunJob(0, NewJob(1, ".??..??...?##. 1,1,3", s, 1))
		require.NoError(t, r.Err)
		assert.Equal(t, uint64(4), r.Count, s.String())
	}
	r := RunJob(0, NewJob(1, ".??..??...?##. 1,1,3", Interval, 5))
	require.NoError(t, r.Err)
	assert.Equal(t, uint64(16384), r.Count)
}

func TestRunOversizedRunsCountZero(t *testing.T) {
	lines := append([]string{"? 9223372036854775807,9223372036854775807", "?? 1,9223372036854775807"}, sample...)
	for _, workers := range []int{1, 4} {
		answer, err := newExecutor(t, workers).Solve(context.Background(), lines)
		require.NoError(t, err)
		assert.Equal(t, uint64(21), answer.Part1.Sum)
		assert.Equal(t, uint64(525152), answer.Part2.Sum)
		assert.True(t, answer.Part2.Success)
		assert.Equal(t, 8, answer.Part2.Statistics.Completed)
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Interval ")
	require.NoError(t, err)
	assert.Equal(t, Interval, s)
	s, err = ParseStrategy("backtrack")
	require.NoError(t, err)
	assert.Equal(t, Backtrack, s)
	_, err = ParseStrategy("guess")
	assert.Error(t, err)
}

// lockedBuffer is a bytes.Buffer that workers can share.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestDebugWriter(t *testing.T) {
	buf := &lockedBuffer{}
	e := NewExecutor(cas.NewMemoryCAS())
	e.Workers = 2
	e.DebugWriter = buf
	require.NoError(t, e.Initialize())

	_, err := e.Run(context.Background(), sample[:2], Backtrack, 1)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Processing line 1")
	assert.Contains(t, buf.String(), "Processing line 2")
}
