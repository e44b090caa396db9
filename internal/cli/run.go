package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/report"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Path string

	// Input replaces the description's initial tape when non-nil.
	Input *string

	MaxSteps int
	Info     bool
	Debug    bool
	JSON     bool
	Summary  bool
	Trace    bool
	Redis    RedisConfig
}

// RunOutput is the --json rendering of a run.
type RunOutput struct {
	Status     domain.RunStatus `json:"status"`
	State      domain.StateKey  `json:"state"`
	Steps      int              `json:"steps"`
	Head       int              `json:"head"`
	Tape       []domain.Cell    `json:"tape"`
	TapeString string           `json:"tape_string"`
	Error      string           `json:"error,omitempty"`
}

// Run loads the machine at opts.Path, runs it and prints the tape.
//
// The tape is printed on every termination path, as one line of
// concatenated symbols. Failed and step-limited runs return their error after
// printing; an interrupted run is reported on stderr and is not an error.
func Run(ctx context.Context, opts RunOptions, logger *slog.Logger, stdout, stderr io.Writer) error {
	def, err := loader.LoadFile(opts.Path)
	if err != nil {
		return err
	}
	if opts.Input != nil {
		if def.Input, err = loader.ParseInput(*opts.Input); err != nil {
			return fmt.Errorf("invalid --input: %w", err)
		}
	}

	trace := &graph.Trace{}
	var extra []domain.LifecycleHooks
	if opts.Trace {
		extra = append(extra, trace.Hooks())
	}
	hooks, cleanup := createHooks(opts.Debug, opts.Redis, logger, extra...)
	defer cleanup()

	m, err := createMachine(def, filepath.Base(opts.Path), opts.MaxSteps, hooks, logger)
	if err != nil {
		return fmt.Errorf("error initializing machine: %w", err)
	}

	if opts.Info && !opts.JSON {
		render := tui.NewRenderer()
		out, err := render(report.Info(m.Describe()))
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, out)
	}

	res, runErr := m.Run(ctx, def.Input)
	if res == nil {
		return runErr
	}

	if opts.JSON {
		out := RunOutput{
			Status:     res.Status,
			State:      res.State,
			Steps:      res.Steps,
			Head:       res.Head,
			Tape:       res.Tape,
			TapeString: report.TapeString(res.Tape),
		}
		if runErr != nil {
			out.Error = runErr.Error()
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(stdout, report.TapeString(res.Tape))
	}

	if opts.Trace {
		fmt.Fprint(stdout, graph.GenerateMermaid(m.Describe(), trace.Overlay()))
	}
	if opts.Summary {
		fmt.Fprintln(stderr, tui.Colorize(res.Status, report.Summary(res)))
	}

	if isInterrupted(runErr) {
		fmt.Fprintf(stderr, ">>> Interrupted in state %d after %d steps.\n", res.State, res.Steps)
		return nil
	}
	var undefined *domain.UndefinedTransitionError
	if errors.As(runErr, &undefined) {
		return fmt.Errorf("machine failed: %w", runErr)
	}
	return runErr
}
