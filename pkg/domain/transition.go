package domain

// Transition is the rule applied when a given (state, symbol) pair is read:
// write Write under the head, move the head, continue in Target.
// The target is a key resolved through the engine's state registry.
type Transition struct {
	Move   Direction `json:"move" yaml:"move"`
	Write  Symbol    `json:"write" yaml:"write"`
	Target StateKey  `json:"target" yaml:"target"`
}

// TransitionRule is one entry of the delta function in declarative form.
type TransitionRule struct {
	From  StateKey  `json:"from" yaml:"from" mapstructure:"from"`
	On    Symbol    `json:"on" yaml:"on" mapstructure:"on"`
	Write Symbol    `json:"write" yaml:"write" mapstructure:"write"`
	Move  Direction `json:"move" yaml:"move" mapstructure:"move"`
	To    StateKey  `json:"to" yaml:"to" mapstructure:"to"`
}

// Transition returns the runtime form of the rule.
func (r TransitionRule) Transition() Transition {
	return Transition{Move: r.Move, Write: r.Write, Target: r.To}
}
