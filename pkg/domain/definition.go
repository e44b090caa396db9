package domain

// Definition is a declarative machine description.
// Loaders and the DSL produce it; the facade turns it into a runnable machine.
type Definition struct {
	// States are registered in order. Unless overridden, the smallest key is
	// the start state and the largest key is the final state.
	States []StateKey `json:"states" yaml:"states" mapstructure:"states"`

	// Alphabet holds the admissible tape symbols, blank included.
	Alphabet []Symbol `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`

	Transitions []TransitionRule `json:"transitions" yaml:"transitions" mapstructure:"transitions"`

	// Input is the initial tape content. Nil means absent (a single blank cell).
	Input []Symbol `json:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`

	// Start and Final override the min/max key convention when set.
	Start *StateKey `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	Final *StateKey `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final"`
}

// MachineInfo is a read-only description of a configured machine, used for
// diagnostics and rendering.
type MachineInfo struct {
	Alphabet    []Symbol         `json:"alphabet"`
	States      []StateKey       `json:"states"`
	Start       *StateKey        `json:"start,omitempty"`
	Final       *StateKey        `json:"final,omitempty"`
	Transitions []TransitionRule `json:"transitions"`
}
