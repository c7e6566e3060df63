package search

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimelordUK/mseek/internal/store"
)

type fixedUsage struct {
	usage store.Usage
	err   error
}

func (f fixedUsage) Usage() (store.Usage, error) {
	return f.usage, f.err
}

func TestSpeedCompute(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return start.Add(500 * time.Millisecond) }

	tracker := NewSpeedTracker(fixedUsage{usage: store.Usage{Files: 10, Bytes: 10_000}}, now)
	sample, err := tracker.Compute(start, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, sample.Elapsed)
	// 1000 bytes average * 10 files / 0.5s
	assert.Equal(t, uint64(20_000), sample.BytesPerSecond)
	assert.Equal(t, 10, sample.TotalFiles)
	assert.Equal(t, "500ms, ~20 kB/s (10 files total)", sample.String())
}

func TestSpeedComputeRemaining(t *testing.T) {
	start := time.Unix(0, 0)
	now := func() time.Time { return start.Add(time.Second) }

	tracker := NewSpeedTracker(fixedUsage{usage: store.Usage{Files: 4, Bytes: 400}}, now)
	sample, err := tracker.Compute(start, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), sample.BytesPerSecond)

	sample, err = tracker.Compute(start, 4, 9)
	require.NoError(t, err)
	assert.Zero(t, sample.BytesPerSecond)
}

func TestSpeedComputeFloorsElapsed(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewSpeedTracker(fixedUsage{usage: store.Usage{Files: 1, Bytes: 1}}, func() time.Time { return start })

	sample, err := tracker.Compute(start, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, sample.Elapsed)
	assert.Equal(t, uint64(1000), sample.BytesPerSecond)
}

func TestSpeedComputeUsageError(t *testing.T) {
	tracker := NewSpeedTracker(fixedUsage{err: errors.New("boom")}, nil)
	sample, err := tracker.Compute(time.Now(), 1, 0)
	assert.Error(t, err)
	assert.Nil(t, sample)
}
