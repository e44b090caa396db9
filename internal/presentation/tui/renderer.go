package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/turing/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// When stdout is not a terminal the markdown is returned untouched, so piped
// output stays machine-readable.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Colorize paints a status line according to the run outcome.
// Colors degrade to plain text on terminals without color support.
func Colorize(status domain.RunStatus, line string) string {
	p := termenv.ColorProfile()
	s := termenv.String(line)
	switch status {
	case domain.StatusHalted:
		s = s.Foreground(p.Color("#22c55e"))
	case domain.StatusFailed:
		s = s.Foreground(p.Color("#ef4444")).Bold()
	default:
		s = s.Foreground(p.Color("#eab308"))
	}
	return s.String()
}
