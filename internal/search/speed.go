package search

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TimelordUK/mseek/internal/store"
)

// UsageSource reports directory totals
type UsageSource interface {
	Usage() (store.Usage, error)
}

// SpeedSample is the throughput measured for one drained generation
type SpeedSample struct {
	Elapsed        time.Duration
	BytesPerSecond uint64
	TotalFiles     int
}

func (s SpeedSample) String() string {
	return fmt.Sprintf("%dms, ~%s/s (%d files total)",
		s.Elapsed.Milliseconds(), humanize.Bytes(s.BytesPerSecond), s.TotalFiles)
}

// SpeedTracker turns a search duration into a throughput estimate
type SpeedTracker struct {
	usage UsageSource
	now   func() time.Time
}

// NewSpeedTracker creates a tracker reading totals from usage
func NewSpeedTracker(usage UsageSource, now func() time.Time) *SpeedTracker {
	if now == nil {
		now = time.Now
	}
	return &SpeedTracker{usage: usage, now: now}
}

// Compute estimates throughput as average file size times files processed
// over the elapsed time. remaining is the number of queued files that were
// never evaluated.
func (t *SpeedTracker) Compute(start time.Time, totalFiles, remaining int) (*SpeedSample, error) {
	elapsed := t.now().Sub(start)
	if elapsed < time.Millisecond {
		elapsed = time.Millisecond
	}

	u, err := t.usage.Usage()
	if err != nil {
		return nil, fmt.Errorf("measure speed: %w", err)
	}

	processed := totalFiles - remaining
	if processed < 0 {
		processed = 0
	}

	var avg int64
	if u.Files > 0 {
		avg = u.Bytes / int64(u.Files)
	}

	bytes := float64(avg) * float64(processed)
	return &SpeedSample{
		Elapsed:        elapsed,
		BytesPerSecond: uint64(bytes / elapsed.Seconds()),
		TotalFiles:     u.Files,
	}, nil
}
