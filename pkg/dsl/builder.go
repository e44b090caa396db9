package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Builder accumulates a machine definition.
type Builder struct {
	def   domain.Definition
	input bool
	errs  []error
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{}
}

// States registers states in order.
func (b *Builder) States(keys ...domain.StateKey) *Builder {
	b.def.States = append(b.def.States, keys...)
	return b
}

// Symbols adds symbols to the alphabet.
func (b *Builder) Symbols(symbols ...domain.Symbol) *Builder {
	b.def.Alphabet = append(b.def.Alphabet, symbols...)
	return b
}

// StartAt overrides the start state.
func (b *Builder) StartAt(key domain.StateKey) *Builder {
	b.def.Start = &key
	return b
}

// HaltAt overrides the final state.
func (b *Builder) HaltAt(key domain.StateKey) *Builder {
	b.def.Final = &key
	return b
}

// Input sets the initial tape content. Calling it with no symbols yields a
// present but empty input.
func (b *Builder) Input(symbols ...domain.Symbol) *Builder {
	b.def.Input = append([]domain.Symbol{}, symbols...)
	b.input = true
	return b
}

// On starts a transition rule for (state, symbol).
func (b *Builder) On(state domain.StateKey, symbol domain.Symbol) *RuleBuilder {
	return &RuleBuilder{
		builder: b,
		rule:    domain.TransitionRule{From: state, On: symbol},
	}
}

// Build validates references and returns the definition.
func (b *Builder) Build() (*domain.Definition, error) {
	errs := append([]error(nil), b.errs...)

	states := make(map[domain.StateKey]bool, len(b.def.States))
	for _, k := range b.def.States {
		if states[k] {
			errs = append(errs, fmt.Errorf("state %d: %w", k, domain.ErrDuplicateState))
		}
		states[k] = true
	}
	symbols := make(map[domain.Symbol]bool, len(b.def.Alphabet))
	for _, s := range b.def.Alphabet {
		symbols[s] = true
	}

	for _, r := range b.def.Transitions {
		if !states[r.From] || !states[r.To] || !symbols[r.On] {
			errs = append(errs, fmt.Errorf("rule (%d,%d)->%d: %w", r.From, r.On, r.To, domain.ErrUnknownStateOrSymbol))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	def := b.def
	if !b.input {
		def.Input = nil
	}
	return &def, nil
}

// RuleBuilder configures one transition rule.
type RuleBuilder struct {
	builder *Builder
	rule    domain.TransitionRule
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(s domain.Symbol) *RuleBuilder {
	r.rule.Write = s
	return r
}

// Left moves the head left after writing.
func (r *RuleBuilder) Left() *RuleBuilder {
	r.rule.Move = domain.Left
	return r
}

// Right moves the head right after writing.
func (r *RuleBuilder) Right() *RuleBuilder {
	r.rule.Move = domain.Right
	return r
}

// Move sets the head movement.
func (r *RuleBuilder) Move(d domain.Direction) *RuleBuilder {
	r.rule.Move = d
	return r
}

// Goto completes the rule with its target state and returns the builder.
// A rule without a valid direction is reported by Build.
func (r *RuleBuilder) Goto(target domain.StateKey) *Builder {
	r.rule.To = target
	if !r.rule.Move.Valid() {
		r.builder.errs = append(r.builder.errs, fmt.Errorf("rule (%d,%d): missing move direction", r.rule.From, r.rule.On))
		return r.builder
	}
	r.builder.def.Transitions = append(r.builder.def.Transitions, r.rule)
	return r.builder
}
