package logformat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/mseek/internal/config"
)

func TestDetect(t *testing.T) {
	d := NewLevelDetector(&config.DefaultConfig().LogLevels)

	tests := []struct {
		line string
		want Level
	}{
		{"2024-01-15 10:30:45 [INF] started", LevelInfo},
		{"[WARN] disk nearly full", LevelWarn},
		{"ERROR could not connect", LevelError},
		{"INFO retrying after ERROR", LevelError},
		{"[FTL] giving up", LevelFatal},
		{"DEBUG cache miss", LevelDebug},
		{"[TRACE] enter", LevelTrace},
		{"lorem ipsum dolor", LevelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, d.Detect(tt.line), tt.line)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "unknown", Level(42).String())
}
