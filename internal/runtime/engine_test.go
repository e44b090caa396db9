package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSuccessor builds the two-state machine δ(0,0) = (write 1, R, 1).
func newSuccessor(t *testing.T, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	e := runtime.NewEngine(opts...)
	e.AddState(0)
	e.AddState(1)
	e.AddSymbol(0)
	e.AddSymbol(1)
	require.True(t, e.AddTransition(0, 1, 0, 1, domain.Right))
	require.NoError(t, e.DeriveStartFinal())
	return e
}

func TestEngine_DeriveStartFinal(t *testing.T) {
	e := runtime.NewEngine()
	for _, k := range []domain.StateKey{5, 2, 8, 3} {
		e.AddState(k)
	}
	require.NoError(t, e.DeriveStartFinal())

	start, ok := e.Start()
	require.True(t, ok)
	final, ok := e.Final()
	require.True(t, ok)
	assert.Equal(t, domain.StateKey(2), start)
	assert.Equal(t, domain.StateKey(8), final)
}

func TestEngine_DeriveStartFinal_NoStates(t *testing.T) {
	e := runtime.NewEngine()
	err := e.DeriveStartFinal()
	assert.ErrorIs(t, err, domain.ErrNoStatesRegistered)
}

func TestEngine_SetStartFinalOverrides(t *testing.T) {
	e := runtime.NewEngine()
	e.AddState(0)
	e.AddState(1)
	e.AddState(2)
	require.NoError(t, e.DeriveStartFinal())

	require.NoError(t, e.SetStart(1))
	require.NoError(t, e.SetFinal(0))
	assert.ErrorIs(t, e.SetFinal(42), domain.ErrUnknownState)

	start, _ := e.Start()
	final, _ := e.Final()
	assert.Equal(t, domain.StateKey(1), start)
	assert.Equal(t, domain.StateKey(0), final)
}

func TestEngine_RunSuccessor(t *testing.T) {
	e := newSuccessor(t)

	res, err := e.Run(context.Background(), []domain.Symbol{0}, true)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusHalted, res.Status)
	assert.Equal(t, domain.StateKey(1), res.State)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, 1, res.Head)
	assert.Equal(t, []domain.Cell{{Position: 0, Symbol: 1}}, res.Tape)
	assert.Equal(t, res.Tape, e.Snapshot())
}

func TestEngine_RunWithoutStartFinal(t *testing.T) {
	e := runtime.NewEngine()
	e.AddState(0)

	_, err := e.Run(context.Background(), nil, false)
	assert.ErrorIs(t, err, domain.ErrStartFinalNotSet)
}

func TestEngine_RunUndefinedTransition(t *testing.T) {
	e := runtime.NewEngine()
	e.AddState(0)
	e.AddState(1)
	e.AddSymbol(0)
	e.AddSymbol(1)
	e.AddTransition(0, 1, 0, 1, domain.Right)
	require.NoError(t, e.DeriveStartFinal())

	res, err := e.Run(context.Background(), []domain.Symbol{1, 1}, true)

	var undefined *domain.UndefinedTransitionError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, domain.StateKey(0), undefined.State)
	assert.Equal(t, domain.Symbol(1), undefined.Symbol)

	assert.Equal(t, domain.StatusFailed, res.Status)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, []domain.Cell{{Position: 0, Symbol: 1}, {Position: 1, Symbol: 1}}, res.Tape,
		"tape must equal its initialized content")
	assert.Equal(t, res.Tape, e.Snapshot(), "engine stays inspectable after an error-halt")
}

func TestEngine_RunStartIsFinal(t *testing.T) {
	e := runtime.NewEngine()
	e.AddState(4)
	e.AddSymbol(0)
	require.NoError(t, e.DeriveStartFinal())

	res, err := e.Run(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalted, res.Status)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, []domain.Cell{{Position: 0, Symbol: domain.Blank}}, res.Tape)
}

func TestEngine_RunIsDeterministic(t *testing.T) {
	// Binary increment: walk right to the end, then carry leftwards.
	e := runtime.NewEngine()
	for _, k := range []domain.StateKey{0, 1, 2} {
		e.AddState(k)
	}
	for _, s := range []domain.Symbol{0, 1, 2} {
		e.AddSymbol(s)
	}
	// Symbols: 0 blank, 1 = bit zero, 2 = bit one.
	e.AddTransition(0, 0, 1, 1, domain.Right)
	e.AddTransition(0, 0, 2, 2, domain.Right)
	e.AddTransition(0, 1, 0, 0, domain.Left)
	e.AddTransition(1, 1, 2, 1, domain.Left)
	e.AddTransition(1, 2, 1, 2, domain.Left)
	e.AddTransition(1, 2, 0, 2, domain.Left)
	require.NoError(t, e.DeriveStartFinal())

	input := []domain.Symbol{2, 1, 2, 2} // 1011
	first, err := e.Run(context.Background(), input, true)
	require.NoError(t, err)
	second, err := e.Run(context.Background(), input, true)
	require.NoError(t, err)

	assert.Equal(t, first.Tape, second.Tape)
	assert.Equal(t, first.Steps, second.Steps)
	assert.Equal(t, []domain.Cell{
		{Position: 0, Symbol: 2},
		{Position: 1, Symbol: 2},
		{Position: 2, Symbol: 1},
		{Position: 3, Symbol: 1},
		{Position: 4, Symbol: 0},
	}, first.Tape) // 1100
}

func TestEngine_StepLimitContainsInfiniteLoop(t *testing.T) {
	e := runtime.NewEngine(runtime.WithStepLimit(500))
	e.AddState(0)
	e.AddState(1)
	e.AddSymbol(0)
	e.AddTransition(0, 0, 0, 0, domain.Right)
	require.NoError(t, e.DeriveStartFinal())

	res, err := e.Run(context.Background(), nil, false)

	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Equal(t, domain.StatusRunning, res.Status, "run is still running at cap exhaustion")
	assert.Equal(t, domain.StateKey(0), res.State)
	assert.Equal(t, 500, res.Steps)
	assert.Equal(t, 500, res.Head)
	assert.Len(t, res.Tape, 500)
}

func TestEngine_StepLimitNotHitWhenHaltingOnLastStep(t *testing.T) {
	e := newSuccessor(t, runtime.WithStepLimit(1))

	res, err := e.Run(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalted, res.Status)
}

func TestEngine_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	steps := 0
	e := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(context.Context, *domain.StepEvent) {
			steps++
			if steps == 10 {
				cancel()
			}
		},
	}))
	e.AddState(0)
	e.AddState(1)
	e.AddSymbol(0)
	e.AddTransition(0, 0, 0, 0, domain.Left)
	require.NoError(t, e.DeriveStartFinal())

	res, err := e.Run(ctx, nil, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StatusRunning, res.Status)
	assert.Equal(t, 10, res.Steps)
	assert.Equal(t, -10, res.Head)
}

func TestEngine_SingleStep(t *testing.T) {
	e := newSuccessor(t)
	ctx := context.Background()
	require.NoError(t, e.Reset(ctx, nil, false))
	assert.Equal(t, domain.StatusRunning, e.Status())

	status, err := e.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalted, status)

	status, err = e.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHalted, status, "terminal states absorb further steps")
	assert.Equal(t, 1, e.Steps())
}
