package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/turing/pkg/domain"
)

// Engine owns one Tape and one Table and executes the run-to-halt loop.
// It is a single-purpose construct-then-run object and is not safe for
// concurrent use.
type Engine struct {
	table *Table
	tape  *Tape

	start, final       domain.StateKey
	hasStart, hasFinal bool

	runID   string
	current domain.StateKey
	steps   int
	status  domain.RunStatus
	err     error

	stepLimit int
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// NewEngine creates an engine with an empty table and a blank tape.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		table:  NewTable(),
		tape:   NewTape(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddState registers a state. It returns false if key already exists.
func (e *Engine) AddState(key domain.StateKey) bool {
	if !e.table.AddState(key) {
		e.logger.Debug("state already exists", "state", key)
		return false
	}
	return true
}

// AddSymbol adds a symbol to the alphabet.
func (e *Engine) AddSymbol(s domain.Symbol) {
	e.table.AddSymbol(s)
}

// AddTransition records δ(from, on) = (dir, write, to).
// It returns false, with no mutation, on unknown states or symbol.
func (e *Engine) AddTransition(from, to domain.StateKey, on, write domain.Symbol, dir domain.Direction) bool {
	if !e.table.AddTransition(from, to, on, write, dir) {
		e.logger.Debug("transition rejected", "from", from, "to", to, "symbol", on, "move", dir)
		return false
	}
	return true
}

// DeriveStartFinal selects the smallest key as start and the largest as final.
func (e *Engine) DeriveStartFinal() error {
	lo, hi, ok := e.table.Bounds()
	if !ok {
		return domain.ErrNoStatesRegistered
	}
	e.start, e.final = lo, hi
	e.hasStart, e.hasFinal = true, true
	return nil
}

// SetStart designates key as the start state explicitly.
func (e *Engine) SetStart(key domain.StateKey) error {
	if !e.table.HasState(key) {
		return fmt.Errorf("start %d: %w", key, domain.ErrUnknownState)
	}
	e.start, e.hasStart = key, true
	return nil
}

// SetFinal designates key as the final (halting) state explicitly.
func (e *Engine) SetFinal(key domain.StateKey) error {
	if !e.table.HasState(key) {
		return fmt.Errorf("final %d: %w", key, domain.ErrUnknownState)
	}
	e.final, e.hasFinal = key, true
	return nil
}

// Start returns the start state, if set.
func (e *Engine) Start() (domain.StateKey, bool) {
	return e.start, e.hasStart
}

// Final returns the final state, if set.
func (e *Engine) Final() (domain.StateKey, bool) {
	return e.final, e.hasFinal
}

// Table exposes the delta function for inspection.
func (e *Engine) Table() *Table {
	return e.table
}

// Tape exposes the tape for inspection.
func (e *Engine) Tape() *Tape {
	return e.tape
}

// Current returns the state of the last (or ongoing) run.
func (e *Engine) Current() domain.StateKey {
	return e.current
}

// RunID identifies the last (or ongoing) run in emitted events.
func (e *Engine) RunID() string {
	return e.runID
}

// Steps returns the number of transitions applied in the last run.
func (e *Engine) Steps() int {
	return e.steps
}

// Status returns the meta-state of the last run.
func (e *Engine) Status() domain.RunStatus {
	return e.status
}

// Snapshot returns the touched tape cells in position order.
func (e *Engine) Snapshot() []domain.Cell {
	return e.tape.Snapshot()
}

// Reset initializes the tape and places the machine in its start state.
// It wipes any previous run.
func (e *Engine) Reset(ctx context.Context, input []domain.Symbol, present bool) error {
	if !e.hasStart || !e.hasFinal {
		return domain.ErrStartFinalNotSet
	}

	e.tape.Initialize(input, present)
	e.runID = uuid.NewString()
	e.current = e.start
	e.steps = 0
	e.err = nil
	e.status = domain.StatusRunning
	if e.current == e.final {
		e.status = domain.StatusHalted
	}

	e.emitRunStart(ctx)
	return nil
}

// Step applies one transition. Once the run is halted or failed, Step is a
// no-op returning the terminal status and error.
func (e *Engine) Step(ctx context.Context) (domain.RunStatus, error) {
	if e.status != domain.StatusRunning {
		return e.status, e.err
	}

	symbol := e.tape.Read()
	tr, ok := e.table.Lookup(e.current, symbol)
	if !ok {
		e.status = domain.StatusFailed
		e.err = &domain.UndefinedTransitionError{State: e.current, Symbol: symbol}
		return e.status, e.err
	}

	from := e.current
	e.tape.Write(tr.Write)
	e.tape.Move(tr.Move)
	e.current = tr.Target
	e.steps++

	e.emitStep(ctx, from, symbol, tr)

	if e.current == e.final {
		e.status = domain.StatusHalted
	}
	return e.status, nil
}

// Run initializes the tape with input (present=false means no input) and
// steps until the final state is reached or a transition is undefined.
//
// The loop has no intrinsic bound. A step limit (WithStepLimit) or context
// cancellation stops it between steps; the result then has StatusRunning and
// the error is ErrStepLimitExceeded or the context error.
func (e *Engine) Run(ctx context.Context, input []domain.Symbol, present bool) (*domain.Result, error) {
	if err := e.Reset(ctx, input, present); err != nil {
		return nil, err
	}

	e.logger.Debug("run started", "start", e.start, "final", e.final, "cells", e.tape.Len())

	var stopErr error
loop:
	for e.status == domain.StatusRunning {
		select {
		case <-ctx.Done():
			stopErr = ctx.Err()
			break loop
		default:
		}

		if e.stepLimit > 0 && e.steps >= e.stepLimit {
			stopErr = fmt.Errorf("%w: %d steps", domain.ErrStepLimitExceeded, e.stepLimit)
			break
		}

		e.Step(ctx)
	}

	if stopErr == nil {
		stopErr = e.err
	}

	res := e.result(stopErr)
	e.emitHalt(ctx, res)

	if stopErr != nil {
		e.logger.Debug("run stopped", "status", res.Status, "state", res.State, "steps", res.Steps, "err", stopErr)
		return res, stopErr
	}
	e.logger.Debug("run halted", "state", res.State, "steps", res.Steps)
	return res, nil
}

func (e *Engine) result(err error) *domain.Result {
	return &domain.Result{
		Status: e.status,
		State:  e.current,
		Steps:  e.steps,
		Head:   e.tape.Head(),
		Tape:   e.tape.Snapshot(),
		Err:    err,
	}
}

func (e *Engine) emitRunStart(ctx context.Context) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunStartEvent{
		EventBase: e.event(domain.EventRunStart),
		Start:     e.start,
		Final:     e.final,
		Cells:     e.tape.Len(),
	})
}

func (e *Engine) emitStep(ctx context.Context, from domain.StateKey, read domain.Symbol, tr domain.Transition) {
	if e.hooks.OnStep == nil {
		return
	}
	e.hooks.OnStep(ctx, &domain.StepEvent{
		EventBase:  e.event(domain.EventStep),
		Step:       e.steps,
		From:       from,
		Read:       read,
		Transition: tr,
		Head:       e.tape.Head(),
	})
}

func (e *Engine) emitHalt(ctx context.Context, res *domain.Result) {
	if e.hooks.OnHalt == nil {
		return
	}
	evt := &domain.HaltEvent{
		EventBase: e.event(domain.EventHalt),
		Status:    res.Status,
		State:     res.State,
		Steps:     res.Steps,
		Cells:     len(res.Tape),
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
	}
	e.hooks.OnHalt(ctx, evt)
}

func (e *Engine) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{RunID: e.runID, Timestamp: time.Now(), Type: t}
}
