package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/mcp"
)

// ServeOptions configures the HTTP and MCP servers.
type ServeOptions struct {
	Addr     string
	MaxSteps int
	Debug    bool
	Redis    RedisConfig
}

// Serve runs the stateless HTTP server until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, opts ServeOptions, logger *slog.Logger) error {
	hooks, cleanup := createHooks(opts.Debug, opts.Redis, logger)
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlerOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithLifecycleHooks(hooks),
		httpAdapter.WithMetrics(reg),
	}
	if opts.MaxSteps > 0 {
		handlerOpts = append(handlerOpts, httpAdapter.WithStepLimit(opts.MaxSteps))
	}
	handler, err := httpAdapter.NewHandler(handlerOpts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Turing Server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Turing Server stopped gracefully")
		return nil
	}
}

// ServeMCP runs the MCP server over the given transport ("stdio" or "sse").
func ServeMCP(ctx context.Context, transport string, port int, opts ServeOptions, logger *slog.Logger) error {
	hooks, cleanup := createHooks(opts.Debug, opts.Redis, logger)
	defer cleanup()

	mcpOpts := []mcp.Option{
		mcp.WithLogger(logger),
		mcp.WithLifecycleHooks(hooks),
	}
	if opts.MaxSteps > 0 {
		mcpOpts = append(mcpOpts, mcp.WithStepLimit(opts.MaxSteps))
	}
	srv := mcp.NewServer(mcpOpts...)

	switch transport {
	case "stdio":
		logger.Info("Starting Turing MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting Turing MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
}
