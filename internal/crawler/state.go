package crawler

import "fmt"

// State is a scrape run's lifecycle stage
type State int

const (
	StateNotStarted State = iota
	StateNavigating
	StateExtracting
	StateAggregating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateNavigating:
		return "navigating"
	case StateExtracting:
		return "extracting"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// run tracks one scrape. It only moves forward: to the next stage, or
// straight to done when the run fails.
type run struct {
	state State
}

func (r *run) advance(to State) {
	if r.state == StateDone || (to != r.state+1 && to != StateDone) {
		panic(fmt.Sprintf("crawler: illegal transition %s -> %s", r.state, to))
	}
	r.state = to
}
