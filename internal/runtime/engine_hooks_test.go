package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var started, halted int
	var steps []domain.StepEvent
	var halt *domain.HaltEvent

	hooks := domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunStartEvent) {
			started++
			if e.Start != 0 || e.Final != 1 {
				t.Errorf("Expected start=0 final=1, got start=%d final=%d", e.Start, e.Final)
			}
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			steps = append(steps, *e)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			halted++
			halt = e
		},
	}

	engine := newSuccessor(t, runtime.WithLifecycleHooks(hooks))
	if _, err := engine.Run(context.Background(), []domain.Symbol{0}, true); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if started != 1 || halted != 1 {
		t.Fatalf("Expected one start and one halt event, got %d/%d", started, halted)
	}
	if len(steps) != 1 {
		t.Fatalf("Expected 1 step event, got %d", len(steps))
	}
	if steps[0].From != 0 || steps[0].Read != 0 || steps[0].Transition.Target != 1 || steps[0].Head != 1 {
		t.Errorf("Unexpected step event: %+v", steps[0])
	}
	if halt.Status != domain.StatusHalted || halt.Error != "" || halt.Steps != 1 {
		t.Errorf("Unexpected halt event: %+v", halt)
	}
	if halt.RunID == "" || halt.RunID != steps[0].RunID || halt.RunID != engine.RunID() {
		t.Errorf("Expected events to share run id %q, got step=%q halt=%q", engine.RunID(), steps[0].RunID, halt.RunID)
	}

	first := engine.RunID()
	if _, err := engine.Run(context.Background(), []domain.Symbol{0}, true); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if engine.RunID() == first {
		t.Errorf("Expected a fresh run id per run")
	}
}

func TestEngine_LifecycleHooks_ErrorHalt(t *testing.T) {
	var halt *domain.HaltEvent
	engine := runtime.NewEngine(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) { halt = e },
	}))
	engine.AddState(0)
	engine.AddState(1)
	engine.AddSymbol(0)
	if err := engine.DeriveStartFinal(); err != nil {
		t.Fatal(err)
	}

	_, _ = engine.Run(context.Background(), nil, false)

	if halt == nil {
		t.Fatal("Expected halt event")
	}
	if halt.Status != domain.StatusFailed {
		t.Errorf("Expected failed status, got %s", halt.Status)
	}
	if halt.Error != "no transition defined for state 0 on symbol 0" {
		t.Errorf("Unexpected error message: %q", halt.Error)
	}
}
