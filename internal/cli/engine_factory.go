package cli

import (
	"log/slog"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
)

// createHooks assembles the lifecycle hooks shared by every command that runs
// machines: debug tracing when --debug is set and the Redis halt publisher
// when an address is configured. The returned cleanup releases the publisher.
func createHooks(debug bool, rc RedisConfig, logger *slog.Logger, extra ...domain.LifecycleHooks) (domain.LifecycleHooks, func()) {
	var sets []domain.LifecycleHooks
	cleanup := func() {}

	if debug {
		sets = append(sets, observability.DebugHooks(logger))
	}

	if rc.Addr != "" {
		pubOpts := []redis.Option{redis.WithLogger(logger)}
		if rc.Prefix != "" {
			pubOpts = append(pubOpts, redis.WithPrefix(rc.Prefix))
		}
		if rc.Steps {
			pubOpts = append(pubOpts, redis.WithSteps())
		}
		pub := redis.New(rc.Addr, rc.Password, rc.DB, pubOpts...)
		sets = append(sets, pub.Hooks())
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Warn("failed to close redis publisher", "error", err)
			}
		}
		logger.Debug("publishing halt events", "addr", rc.Addr, "channel", pub.HaltChannel())
	}

	sets = append(sets, extra...)
	return observability.Combine(sets...), cleanup
}

// createMachine builds a machine from def with standard CLI conventions.
func createMachine(def *domain.Definition, name string, maxSteps int, hooks domain.LifecycleHooks, logger *slog.Logger) (*turing.Machine, error) {
	return turing.FromDefinition(def,
		turing.WithName(name),
		turing.WithLogger(logger),
		turing.WithStepLimit(maxSteps),
		turing.WithLifecycleHooks(hooks),
	)
}
