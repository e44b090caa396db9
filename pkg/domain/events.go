package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventHalt     EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// RunStartEvent is emitted once the tape is initialized.
type RunStartEvent struct {
	EventBase
	Start StateKey `json:"start"`
	Final StateKey `json:"final"`
	Cells int      `json:"cells"`
}

// StepEvent is emitted after each applied transition.
type StepEvent struct {
	EventBase
	Step       int        `json:"step"`
	From       StateKey   `json:"from"`
	Read       Symbol     `json:"read"`
	Transition Transition `json:"transition"`
	Head       int        `json:"head"`
}

// HaltEvent is emitted when a run stops, for whatever reason.
type HaltEvent struct {
	EventBase
	Status RunStatus `json:"status"`
	State  StateKey  `json:"state"`
	Steps  int       `json:"steps"`
	Cells  int       `json:"cells"`
	Error  string    `json:"error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunStartEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *HaltEvent)
}
