package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateState is returned when a state key is registered twice.
var ErrDuplicateState = errors.New("state already exists")

// ErrUnknownStateOrSymbol is returned when a transition references an
// unregistered state or symbol.
var ErrUnknownStateOrSymbol = errors.New("unknown state or symbol")

// ErrUnknownState is returned when a start or final override names an
// unregistered state.
var ErrUnknownState = errors.New("unknown state")

// ErrNoStatesRegistered is returned when start/final are derived from an
// empty state set.
var ErrNoStatesRegistered = errors.New("no states registered")

// ErrStartFinalNotSet is returned when a run is requested before start and
// final were derived or set.
var ErrStartFinalNotSet = errors.New("start and final states not set")

// ErrStepLimitExceeded is returned when a bounded run exhausts its budget
// without halting.
var ErrStepLimitExceeded = errors.New("step limit exceeded")

// UndefinedTransitionError reports a lookup miss during a run.
// The tape is left exactly as last written.
type UndefinedTransitionError struct {
	State  StateKey
	Symbol Symbol
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition defined for state %d on symbol %d", e.State, e.Symbol)
}
