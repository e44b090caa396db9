// Package report renders run results and machine configurations as text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aretw0/turing/pkg/domain"
)

// TapeString concatenates the symbols of the touched cells in ascending
// position order. Cells must already be sorted (as returned by Snapshot).
func TapeString(cells []domain.Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteString(strconv.Itoa(int(c.Symbol)))
	}
	return sb.String()
}

// Info renders the machine configuration as a markdown document.
func Info(info domain.MachineInfo) string {
	var sb strings.Builder
	sb.WriteString("# Turing Machine\n\n")

	fmt.Fprintf(&sb, "- **Alphabet:** %s\n", joinInts(info.Alphabet))
	fmt.Fprintf(&sb, "- **States:** %s\n", joinInts(info.States))
	fmt.Fprintf(&sb, "- **Start:** %s\n", keyOrUnset(info.Start))
	fmt.Fprintf(&sb, "- **Final:** %s\n", keyOrUnset(info.Final))

	sb.WriteString("\n## Transitions\n\n")
	if len(info.Transitions) == 0 {
		sb.WriteString("_none_\n")
		return sb.String()
	}
	sb.WriteString("| From | Read | Write | Move | To |\n")
	sb.WriteString("|-----:|-----:|------:|:----:|---:|\n")
	for _, r := range info.Transitions {
		fmt.Fprintf(&sb, "| %d | %d | %d | %s | %d |\n", r.From, r.On, r.Write, r.Move, r.To)
	}
	return sb.String()
}

// Table writes the machine configuration as a plain box-drawn table, for
// terminals without markdown styling and for piping.
func Table(w io.Writer, info domain.MachineInfo) {
	fmt.Fprintf(w, "Alphabet: %s\n", joinInts(info.Alphabet))
	fmt.Fprintf(w, "States:   %s\n", joinInts(info.States))
	fmt.Fprintf(w, "Start:    %s\n", keyOrUnset(info.Start))
	fmt.Fprintf(w, "Final:    %s\n", keyOrUnset(info.Final))

	if len(info.Transitions) == 0 {
		fmt.Fprintln(w, "(0 transitions)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"From", "Read", "Write", "Move", "To"})
	for _, r := range info.Transitions {
		t.AppendRow(table.Row{r.From, r.On, r.Write, r.Move.String(), r.To})
	}
	t.Render()
	fmt.Fprintf(w, "(%d transitions)\n", len(info.Transitions))
}

// Summary is a one-line description of a result.
func Summary(res *domain.Result) string {
	if res == nil {
		return "no result"
	}
	line := fmt.Sprintf("%s in state %d after %d steps (head at %d, %d cells)",
		res.Status, res.State, res.Steps, res.Head, len(res.Tape))
	if res.Err != nil {
		line += ": " + res.Err.Error()
	}
	return line
}

func keyOrUnset(k *domain.StateKey) string {
	if k == nil {
		return "not set"
	}
	return strconv.Itoa(int(*k))
}

func joinInts[T ~int](values []T) string {
	if len(values) == 0 {
		return "{}"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(int(v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
