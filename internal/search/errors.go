package search

import "errors"

var (
	// ErrStoreRequired is returned when no store is given to New.
	ErrStoreRequired = errors.New("log store required")

	// ErrInvalidLimit is returned for a non-positive concurrency or result bound.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrClosed is returned when submitting to a stopped coordinator.
	ErrClosed = errors.New("coordinator closed")
)
