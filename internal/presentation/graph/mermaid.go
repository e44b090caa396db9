package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// GraphOverlay contains dynamic run data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.StateKey
	CurrentState  *domain.StateKey
	Failed        bool
}

// GenerateMermaid produces a Mermaid flowchart of the machine's states and
// transitions. It applies semantic styling:
// - Start: ((Circle))
// - Final: (((Double circle)))
// - Default: [Rectangle]
// Rules sharing a (from, to) pair are merged onto one edge, labelled
// "read/write,move" per rule.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(info domain.MachineInfo, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, key := range info.States {
		id := nodeID(key)

		opener, closer := "[", "]"
		switch {
		case info.Final != nil && key == *info.Final:
			opener, closer = "(((", ")))"
		case info.Start != nil && key == *info.Start:
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%d\"%s\n", id, opener, key, closer)
	}

	type edge struct{ from, to domain.StateKey }
	var order []edge
	labels := make(map[edge][]string)
	for _, r := range info.Transitions {
		e := edge{r.From, r.To}
		if _, ok := labels[e]; !ok {
			order = append(order, e)
		}
		labels[e] = append(labels[e], fmt.Sprintf("%d/%d,%s", r.On, r.Write, r.Move))
	}
	for _, e := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(e.from), strings.Join(labels[e], "<br/>"), nodeID(e.to))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#c62828,stroke-width:4px,color:#000;\n")

		visited := make(map[domain.StateKey]bool)
		for _, key := range overlay.VisitedStates {
			if !visited[key] {
				visited[key] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(key))
			}
		}

		if overlay.CurrentState != nil {
			class := "current"
			if overlay.Failed {
				class = "failed"
			}
			fmt.Fprintf(&sb, "    class %s %s;\n", nodeID(*overlay.CurrentState), class)
		}
	}

	return sb.String()
}

func nodeID(key domain.StateKey) string {
	return fmt.Sprintf("q%d", key)
}

// Trace records the states a run passes through so they can be drawn as an
// overlay. Bind it with Hooks before running.
type Trace struct {
	visited []domain.StateKey
	current *domain.StateKey
	failed  bool
}

// Hooks returns lifecycle hooks that feed the trace.
func (t *Trace) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(_ context.Context, e *domain.RunStartEvent) {
			t.visited = []domain.StateKey{e.Start}
			t.current = nil
			t.failed = false
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			t.visited = append(t.visited, e.Transition.Target)
		},
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			state := e.State
			t.current = &state
			t.failed = e.Status == domain.StatusFailed
		},
	}
}

// Overlay returns the recorded run as a graph overlay.
func (t *Trace) Overlay() *GraphOverlay {
	return &GraphOverlay{
		VisitedStates: append([]domain.StateKey(nil), t.visited...),
		CurrentState:  t.current,
		Failed:        t.failed,
	}
}
