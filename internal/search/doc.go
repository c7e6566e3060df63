// Package search runs AND-combined, case-insensitive substring searches
// over a directory of log files.
//
// A Coordinator owns the search state and processes two kinds of message on
// one goroutine: query changes and worker completions. Each query change
// starts a new generation; files are evaluated by at most MaxConcurrency
// workers and refilled one-for-one as workers finish. Results from an older
// generation are discarded at the Aggregator instead of cancelling the
// workers that produced them.
//
// When a generation's queue drains and its last worker reports back, the
// SpeedTracker turns the elapsed time into a throughput estimate that is
// published as a SpeedMeasured event.
package search
