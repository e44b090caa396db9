// Package redis publishes engine lifecycle events over Redis pub/sub.
//
// Nothing is stored: events are broadcast to whoever is subscribed when a run
// finishes, and are lost otherwise.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/turing/pkg/domain"
)

// DefaultPrefix is prepended to every channel name.
const DefaultPrefix = "turing:"

// Publisher broadcasts lifecycle events as JSON messages.
type Publisher struct {
	client *backend.Client
	prefix string
	steps  bool
	logger *slog.Logger
}

type Option func(*Publisher)

// WithPrefix sets the channel prefix.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithSteps also publishes every step event. Chatty; meant for tracing
// short machines.
func WithSteps() Option {
	return func(p *Publisher) {
		p.steps = true
	}
}

// WithLogger sets the logger used to report publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a publisher connected to address.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client: client,
		prefix: DefaultPrefix,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// HaltChannel is the channel halt events are published on.
func (p *Publisher) HaltChannel() string {
	return p.prefix + "halts"
}

// StepChannel is the channel step events are published on (see WithSteps).
func (p *Publisher) StepChannel() string {
	return p.prefix + "steps"
}

// Publish sends v as JSON on channel.
func (p *Publisher) Publish(ctx context.Context, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("redis publish on %s: %w", channel, err)
	}
	return nil
}

// Hooks returns lifecycle hooks that publish events. Publish failures are
// logged and never interrupt the run.
func (p *Publisher) Hooks() domain.LifecycleHooks {
	hooks := domain.LifecycleHooks{
		OnHalt: func(ctx context.Context, e *domain.HaltEvent) {
			// A cancelled run still reports its halt.
			if err := p.Publish(context.WithoutCancel(ctx), p.HaltChannel(), e); err != nil {
				p.logger.Warn("failed to publish halt event", "error", err)
			}
		},
	}
	if p.steps {
		hooks.OnStep = func(ctx context.Context, e *domain.StepEvent) {
			if err := p.Publish(ctx, p.StepChannel(), e); err != nil {
				p.logger.Warn("failed to publish step event", "error", err, "steps", e.Step)
			}
		}
	}
	return hooks
}

// Close releases the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}
