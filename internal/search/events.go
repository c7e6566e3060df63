package search

// Phase is the coordinator state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseDraining
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseDraining:
		return "draining"
	default:
		return "idle"
	}
}

// Event is published by the coordinator for the presentation layer
type Event interface {
	event()
}

// QueryStarted is sent when a new generation begins
type QueryStarted struct {
	Query Query
	Files int
}

// ResultsChanged carries a snapshot of the result list
type ResultsChanged struct {
	Generation uint64
	Entries    []LogEntry
	Phase      Phase
	Pending    int
	InFlight   int
	// Truncated is set once the list reached its bound
	Truncated bool
	// Unfiltered is set when the list is a plain directory listing
	Unfiltered bool
}

// SpeedMeasured is sent once per fully drained generation
type SpeedMeasured struct {
	Generation uint64
	Sample     SpeedSample
}

func (QueryStarted) event()   {}
func (ResultsChanged) event() {}
func (SpeedMeasured) event()  {}
