package ui

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Searcher accepts query changes
type Searcher interface {
	Submit(ctx context.Context, terms []string) error
}

// submitter forwards query changes from the UI to the coordinator on its
// own goroutine so Update never blocks. Only the newest pending query is
// kept; older ones would be superseded anyway.
type submitter struct {
	searcher Searcher
	logger   *slog.Logger

	mu      sync.Mutex
	latest  []string
	pending bool
	wake    chan struct{}
}

func newSubmitter(s Searcher, logger *slog.Logger) *submitter {
	return &submitter{
		searcher: s,
		logger:   logger,
		wake:     make(chan struct{}, 1),
	}
}

// Post records terms as the next query to send
func (s *submitter) Post(terms []string) {
	s.mu.Lock()
	s.latest = slices.Clone(terms)
	s.pending = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run sends posted queries until ctx is done
func (s *submitter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}

		s.mu.Lock()
		terms, ok := s.latest, s.pending
		s.pending = false
		s.mu.Unlock()
		if !ok {
			continue
		}

		if err := s.searcher.Submit(ctx, terms); err != nil {
			s.logger.Warn("submit query", "terms", terms, "error", err)
			return
		}
	}
}
