package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// DebugHooks logs the run lifecycle. Steps are logged at debug level, so
// they cost nothing unless the logger enables it.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunStartEvent) {
			logger.DebugContext(ctx, "run_start", "start", e.Start, "final", e.Final, "cells", e.Cells)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"steps", e.Step,
				"state", e.From,
				"symbol", e.Read,
				"write", e.Transition.Write,
				"move", e.Transition.Move.String(),
				"target", e.Transition.Target,
				"head", e.Head,
			)
		},
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			attrs := []any{"status", e.Status, "state", e.State, "steps", e.Steps, "cells", e.Cells}
			if e.Error != "" {
				logger.WarnContext(ctx, "run_halt", append(attrs, "error", e.Error)...)
				return
			}
			logger.InfoContext(ctx, "run_halt", attrs...)
		},
	}
}

// Combine fans out every event to each hook set, in argument order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var combined domain.LifecycleHooks

	var onStart []func(context.Context, *domain.RunStartEvent)
	var onStep []func(context.Context, *domain.StepEvent)
	var onHalt []func(context.Context, *domain.HaltEvent)
	for _, h := range hooks {
		if h.OnRunStart != nil {
			onStart = append(onStart, h.OnRunStart)
		}
		if h.OnStep != nil {
			onStep = append(onStep, h.OnStep)
		}
		if h.OnHalt != nil {
			onHalt = append(onHalt, h.OnHalt)
		}
	}

	if len(onStart) > 0 {
		combined.OnRunStart = func(ctx context.Context, e *domain.RunStartEvent) {
			for _, fn := range onStart {
				fn(ctx, e)
			}
		}
	}
	if len(onStep) > 0 {
		combined.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			for _, fn := range onStep {
				fn(ctx, e)
			}
		}
	}
	if len(onHalt) > 0 {
		combined.OnHalt = func(ctx context.Context, e *domain.HaltEvent) {
			for _, fn := range onHalt {
				fn(ctx, e)
			}
		}
	}
	return combined
}
