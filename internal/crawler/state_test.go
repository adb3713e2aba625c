package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAdvancesForward(t *testing.T) {
	r := &run{}
	for _, s := range []State{StateNavigating, StateExtracting, StateAggregating, StateDone} {
		r.advance(s)
		assert.Equal(t, s, r.state)
	}
}

func TestRunFailsStraightToDone(t *testing.T) {
	r := &run{}
	r.advance(StateNavigating)
	r.advance(StateDone)
	assert.Equal(t, StateDone, r.state)
}

func TestRunIllegalTransitionsPanic(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"skip navigating", StateNotStarted, StateExtracting},
		{"backwards", StateExtracting, StateNavigating},
		{"repeat", StateNavigating, StateNavigating},
		{"after done", StateDone, StateDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &run{state: tt.from}
			assert.Panics(t, func() { r.advance(tt.to) })
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "aggregating", StateAggregating.String())
	assert.Equal(t, "state(9)", State(9).String())
}
