package domain

// RunStatus is the meta-state of an execution.
type RunStatus string

const (
	StatusRunning RunStatus = "running" // Steps remain; only seen when execution was bounded or cancelled
	StatusHalted  RunStatus = "halted"  // Final state reached
	StatusFailed  RunStatus = "failed"  // No transition defined for (state, symbol)
)

// Terminal reports whether no further step can be taken.
func (s RunStatus) Terminal() bool {
	return s == StatusHalted || s == StatusFailed
}

// Cell is a touched tape position and its content.
type Cell struct {
	Position int    `json:"position"`
	Symbol   Symbol `json:"symbol"`
}

// Result captures the outcome of a run.
type Result struct {
	Status RunStatus `json:"status"`

	// State is the state the machine was in when execution stopped.
	State StateKey `json:"state"`

	// Steps is the number of transitions applied.
	Steps int `json:"steps"`

	// Head is the head position when execution stopped.
	Head int `json:"head"`

	// Tape lists every touched cell in ascending position order.
	Tape []Cell `json:"tape"`

	// Err is set when Status is StatusFailed, or when a running machine was
	// stopped by a step limit or cancellation.
	Err error `json:"-"`
}
