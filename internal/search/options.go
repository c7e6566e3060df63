package search

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultMaxConcurrency caps live search workers.
	DefaultMaxConcurrency = 15

	// DefaultMaxResults bounds the visible result list.
	DefaultMaxResults = 100

	defaultEventBuffer = 64
)

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithMaxConcurrency sets how many workers may run at once.
func WithMaxConcurrency(n int) Option {
	return func(c *Coordinator) error {
		if n < 1 {
			return fmt.Errorf("max concurrency %d: %w", n, ErrInvalidLimit)
		}
		c.maxConcurrency = n
		return nil
	}
}

// WithMaxResults sets the result list bound.
func WithMaxResults(n int) Option {
	return func(c *Coordinator) error {
		if n < 1 {
			return fmt.Errorf("max results %d: %w", n, ErrInvalidLimit)
		}
		c.maxResults = n
		return nil
	}
}

// WithEventBuffer sets the capacity of the event channel.
func WithEventBuffer(n int) Option {
	return func(c *Coordinator) error {
		if n < 0 {
			n = 0
		}
		c.eventBuffer = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithClock replaces time.Now, for speed measurements in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}
