package runtime

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithStepLimit bounds Run to n transitions. Zero or negative means unbounded.
func WithStepLimit(n int) EngineOption {
	return func(e *Engine) {
		e.stepLimit = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
