package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/report"
)

// Info prints the machine configuration as markdown, styled when stdout is a
// terminal. With plain set it prints a box-drawn table instead.
func Info(path string, plain bool, stdout io.Writer) error {
	m, err := loadMachine(path)
	if err != nil {
		return err
	}
	if plain {
		report.Table(stdout, m.Describe())
		return nil
	}
	render := tui.NewRenderer()
	out, err := render(report.Info(m.Describe()))
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

// Graph prints the machine as a Mermaid flowchart.
func Graph(path string, stdout io.Writer) error {
	m, err := loadMachine(path)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, graph.GenerateMermaid(m.Describe(), nil))
	return nil
}

// Validate checks the description statically. Unreachable states are
// warnings; everything else is an error.
func Validate(path string, stdout io.Writer) error {
	def, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if err := validator.Validate(def); err != nil {
		return err
	}

	for _, key := range validator.Unreachable(def) {
		fmt.Fprintf(stdout, "warning: state %d is unreachable from the start state\n", key)
	}
	if !validator.FinalReachable(def) {
		fmt.Fprintln(stdout, "warning: the final state is unreachable, the machine can never halt")
	}
	return nil
}

func loadMachine(path string) (*turing.Machine, error) {
	def, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := turing.FromDefinition(def)
	if err != nil {
		return nil, fmt.Errorf("error initializing machine: %w", err)
	}
	return m, nil
}
