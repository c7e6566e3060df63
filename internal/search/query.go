package search

import (
	"fmt"
	"strings"
)

// Query is an ordered set of lowercased terms tagged with the generation
// it was dispatched under. It is not modified after dispatch.
type Query struct {
	Generation uint64
	Terms      []string
}

// Empty reports whether the query filters nothing
func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// NormalizeTerms lowercases terms and drops empty ones. A list with no
// usable term normalises to nil.
func NormalizeTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if t == "" {
			continue
		}
		out = append(out, strings.ToLower(t))
	}
	return out
}

// Action is what the front-end should do after a term slot changes
type Action int

const (
	ActionNone Action = iota
	ActionSearch
	ActionShowAll
)

func (a Action) String() string {
	switch a {
	case ActionSearch:
		return "search"
	case ActionShowAll:
		return "show-all"
	default:
		return "none"
	}
}

// TermSlots holds the values of the search bars. There is always at least
// one slot and the last slot is kept empty for the next term.
type TermSlots struct {
	values []string
}

// NewTermSlots returns a single empty slot
func NewTermSlots() *TermSlots {
	return &TermSlots{values: []string{""}}
}

// Len returns the number of slots
func (s *TermSlots) Len() int {
	return len(s.values)
}

// Value returns the raw value of slot i
func (s *TermSlots) Value(i int) string {
	if i < 0 || i >= len(s.values) {
		return ""
	}
	return s.values[i]
}

// Terms returns a copy of the raw slot values
func (s *TermSlots) Terms() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Set updates slot i and reports what the change requires.
func (s *TermSlots) Set(i int, value string) Action {
	if i < 0 || i >= len(s.values) {
		return ActionNone
	}

	s.values[i] = value
	if i == len(s.values)-1 && value != "" {
		s.values = append(s.values, "")
	}

	if value == "" {
		if i == 0 {
			s.Reset()
			return ActionShowAll
		}
		if i < len(s.values)-1 {
			s.values = append(s.values[:i], s.values[i+1:]...)
		}
		return ActionNone
	}
	return ActionSearch
}

// Reset drops every term and leaves one empty slot
func (s *TermSlots) Reset() {
	s.values = []string{""}
}

// Label is the caption shown before slot i
func Label(i int) string {
	if i == 0 {
		return "Contains:"
	}
	return "and:"
}

// Placeholder is the hint shown inside an empty slot i
func Placeholder(i int) string {
	if i == 0 {
		return "Search"
	}
	return fmt.Sprintf("Search term %d (Optional)", i+1)
}
