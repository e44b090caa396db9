package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Tape-like gradient (Teal/Cyan)
	lines := []termenv.Style{
		termenv.String("  _____           _").Foreground(p.Color("#2dd4bf")),
		termenv.String(" |_   _|   _ _ __(_)_ __   __ _").Foreground(p.Color("#22d3ee")),
		termenv.String("   | || | | | '__| | '_ \\ / _` |").Foreground(p.Color("#38bdf8")),
		termenv.String("   | || |_| | |  | | | | | (_| |").Foreground(p.Color("#60a5fa")),
		termenv.String("   |_| \\__,_|_|  |_|_| |_|\\__, |").Foreground(p.Color("#818cf8")),
		termenv.String("                          |___/").Foreground(p.Color("#a78bfa")),
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
}
