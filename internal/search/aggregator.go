package search

import (
	"fmt"
	"slices"
)

// LogEntry is one file in the visible result list. Content stays empty
// until the entry is opened.
type LogEntry struct {
	Name    string
	Content string
	Opened  bool
	Failed  bool // last open could not read the file
}

// Toggle opens or closes the entry. Opening reads the file again; a failed
// read shows an inline error instead of content.
func (e *LogEntry) Toggle(r Reader) {
	if e.Opened {
		e.Opened = false
		e.Failed = false
		e.Content = ""
		return
	}

	data, err := r.Read(e.Name)
	e.Failed = err != nil
	if e.Failed {
		e.Content = fmt.Sprintf("Error: Unable to read file %s!", e.Name)
	} else {
		e.Content = string(data)
	}
	e.Opened = true
}

// initialEntries caps the up-front allocation per query; large limits grow
// on demand.
const initialEntries = 64

// Aggregator collects accepted results for the active query into a list
// bounded at max entries. It is not safe for concurrent use; the
// coordinator loop is its only writer.
type Aggregator struct {
	max     int
	active  Query
	entries []LogEntry
}

// NewAggregator creates an aggregator admitting at most max entries
func NewAggregator(max int) *Aggregator {
	return &Aggregator{
		max:     max,
		entries: make([]LogEntry, 0, min(max, initialEntries)),
	}
}

// Reset clears the list and makes q the active query
func (a *Aggregator) Reset(q Query) {
	a.active = q
	a.entries = make([]LogEntry, 0, min(a.max, initialEntries))
}

// Active returns the query results are checked against
func (a *Aggregator) Active() Query {
	return a.active
}

// Accept appends res when it is a match for the active generation and
// term set and there is room. Anything else is dropped.
func (a *Aggregator) Accept(res Result) bool {
	if res.Generation != a.active.Generation {
		return false
	}
	if !slices.Equal(res.Terms, a.active.Terms) {
		return false
	}
	if !res.Matched || a.Full() {
		return false
	}

	a.entries = append(a.entries, LogEntry{Name: res.Name})
	return true
}

// Fill replaces the list with unfiltered names, up to the bound
func (a *Aggregator) Fill(names []string) {
	a.entries = a.entries[:0]
	for _, name := range names {
		if a.Full() {
			break
		}
		a.entries = append(a.entries, LogEntry{Name: name})
	}
}

// Full reports whether the bound has been reached
func (a *Aggregator) Full() bool {
	return len(a.entries) >= a.max
}

// Len returns the number of entries
func (a *Aggregator) Len() int {
	return len(a.entries)
}

// Entries returns a copy of the list in completion order
func (a *Aggregator) Entries() []LogEntry {
	return slices.Clone(a.entries)
}
