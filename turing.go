package turing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

// Machine is the high-level entry point of the library.
// It wraps the internal runtime and exposes the construction and run API.
// A Machine is single-purpose: build it, run it (any number of times), and
// inspect it. It is not safe for concurrent use.
type Machine struct {
	engine    *runtime.Engine
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	stepLimit int
	Name      string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithStepLimit bounds each run to n transitions (0 = unbounded).
func WithStepLimit(n int) Option {
	return func(m *Machine) {
		m.stepLimit = n
	}
}

// WithName labels the machine in logs.
func WithName(name string) Option {
	return func(m *Machine) {
		m.Name = name
	}
}

// New creates an empty machine.
func New(opts ...Option) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.Name != "" {
		m.logger = m.logger.With("machine", m.Name)
	}

	m.engine = runtime.NewEngine(
		runtime.WithLifecycleHooks(m.hooks),
		runtime.WithLogger(m.logger),
		runtime.WithStepLimit(m.stepLimit),
	)
	return m
}

// FromDefinition builds a machine from a declarative description.
// States and symbols are registered in definition order, start/final are
// derived by the min/max key convention and then overridden by def.Start and
// def.Final when set.
func FromDefinition(def *domain.Definition, opts ...Option) (*Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is nil")
	}

	m := New(opts...)
	for _, key := range def.States {
		if !m.AddState(key) {
			return nil, fmt.Errorf("state %d: %w", key, domain.ErrDuplicateState)
		}
	}
	for _, s := range def.Alphabet {
		m.AddSymbol(s)
	}
	for i, r := range def.Transitions {
		if !m.AddTransition(r.From, r.To, r.On, r.Write, r.Move) {
			return nil, fmt.Errorf("transition #%d (%d,%d)->(%d,%d,%s): %w",
				i, r.From, r.On, r.To, r.Write, r.Move, domain.ErrUnknownStateOrSymbol)
		}
	}

	if err := m.DeriveStartFinal(); err != nil {
		return nil, err
	}
	if def.Start != nil {
		if err := m.SetStart(*def.Start); err != nil {
			return nil, err
		}
	}
	if def.Final != nil {
		if err := m.SetFinal(*def.Final); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddState registers a state. It returns false if the key already exists.
func (m *Machine) AddState(key domain.StateKey) bool {
	return m.engine.AddState(key)
}

// AddSymbol adds a symbol to the tape alphabet. Idempotent.
func (m *Machine) AddSymbol(s domain.Symbol) {
	m.engine.AddSymbol(s)
}

// AddTransition records the rule δ(from, on) = (dir, write, to).
// It returns false, without mutation, if a state or the symbol is unknown.
func (m *Machine) AddTransition(from, to domain.StateKey, on, write domain.Symbol, dir domain.Direction) bool {
	return m.engine.AddTransition(from, to, on, write, dir)
}

// DeriveStartFinal selects the smallest key as start and the largest as final.
func (m *Machine) DeriveStartFinal() error {
	return m.engine.DeriveStartFinal()
}

// SetStart overrides the start state.
func (m *Machine) SetStart(key domain.StateKey) error {
	return m.engine.SetStart(key)
}

// SetFinal overrides the final state.
func (m *Machine) SetFinal(key domain.StateKey) error {
	return m.engine.SetFinal(key)
}

// Run executes the machine on input. A nil input means no initial content
// (a single blank at the origin); a non-nil empty slice writes nothing.
//
// On an undefined transition the result has StatusFailed and the error is a
// *domain.UndefinedTransitionError. The result is always returned once the
// run started, so the tape can be inspected on every termination path.
func (m *Machine) Run(ctx context.Context, input []domain.Symbol) (*domain.Result, error) {
	return m.engine.Run(ctx, input, input != nil)
}

// RunBlank executes the machine with no initial tape content.
func (m *Machine) RunBlank(ctx context.Context) (*domain.Result, error) {
	return m.Run(ctx, nil)
}

// Current returns the state the machine is in (or stopped in).
func (m *Machine) Current() domain.StateKey {
	return m.engine.Current()
}

// Snapshot returns every touched tape cell in ascending position order.
func (m *Machine) Snapshot() []domain.Cell {
	return m.engine.Snapshot()
}

// Describe returns the machine configuration for diagnostics.
func (m *Machine) Describe() domain.MachineInfo {
	table := m.engine.Table()
	info := domain.MachineInfo{
		Alphabet:    table.Alphabet(),
		States:      table.States(),
		Transitions: table.Rules(),
	}
	if start, ok := m.engine.Start(); ok {
		info.Start = &start
	}
	if final, ok := m.engine.Final(); ok {
		info.Final = &final
	}
	return info
}
