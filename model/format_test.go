package model

import (
	"errors"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/timewinder-dev/springs/cas"
)

func TestFormatStatistics(t *testing.T) {
	color.Disable()
	out := FormatStatistics(RunStatistics{
		Strategy:   Interval,
		Repeat:     5,
		Workers:    4,
		Lines:      6,
		Dispatched: 5,
		Duplicates: 1,
		Elapsed:    1500 * time.Millisecond,
	})
	assert.Contains(t, out, "interval statistics")
	assert.Contains(t, out, "Unfolded: 5x")
	assert.Contains(t, out, "Jobs dispatched: 5")
	assert.Contains(t, out, "Failed jobs: 0")
}

func TestFormatAllFailures(t *testing.T) {
	color.Disable()
	assert.Empty(t, FormatAllFailures(nil))

	out := FormatAllFailures([]*JobFailure{
		{JobID: 3, Line: "?x 1", Hash: cas.Hash(0xabc), Err: errors.New("boom")},
	})
	assert.Contains(t, out, "FAILED JOBS: 1")
	assert.Contains(t, out, "?x 1")
	assert.Contains(t, out, "0x0000000000000abc")
	assert.Contains(t, out, "boom")
}

func TestFormatProgress(t *testing.T) {
	color.Disable()
	assert.NotContains(t, formatProgress(1, 3, time.Second), "\n")
	assert.Contains(t, formatProgress(3, 3, time.Second), "3/3 jobs")
	assert.Contains(t, formatProgress(3, 3, time.Second), "\n")
}
