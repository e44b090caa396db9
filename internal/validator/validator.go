package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Validate checks a definition for problems the engine would reject or that
// make a run meaningless: duplicate states, rules referencing unknown states
// or symbols, missing move directions, overrides naming unknown states and
// input symbols outside the alphabet.
// All findings are aggregated into a single error.
func Validate(def *domain.Definition) error {
	if def == nil {
		return fmt.Errorf("definition is nil")
	}

	var errors []string

	if len(def.States) == 0 {
		errors = append(errors, "no states declared")
	}

	states := make(map[domain.StateKey]bool, len(def.States))
	for _, k := range def.States {
		if k < 0 {
			errors = append(errors, fmt.Sprintf("negative state %d", k))
		}
		if states[k] {
			errors = append(errors, fmt.Sprintf("duplicate state %d", k))
		}
		states[k] = true
	}

	alphabet := make(map[domain.Symbol]bool, len(def.Alphabet))
	for _, s := range def.Alphabet {
		if s < 0 {
			errors = append(errors, fmt.Sprintf("negative symbol %d", s))
		}
		alphabet[s] = true
	}

	for i, r := range def.Transitions {
		if !states[r.From] {
			errors = append(errors, fmt.Sprintf("transition #%d: unknown source state %d", i, r.From))
		}
		if !states[r.To] {
			errors = append(errors, fmt.Sprintf("transition #%d: unknown target state %d", i, r.To))
		}
		if !alphabet[r.On] {
			errors = append(errors, fmt.Sprintf("transition #%d: read symbol %d not in alphabet", i, r.On))
		}
		if !alphabet[r.Write] {
			errors = append(errors, fmt.Sprintf("transition #%d: written symbol %d not in alphabet", i, r.Write))
		}
		if !r.Move.Valid() {
			errors = append(errors, fmt.Sprintf("transition #%d: missing move direction", i))
		}
	}

	if def.Start != nil && !states[*def.Start] {
		errors = append(errors, fmt.Sprintf("start state %d is not declared", *def.Start))
	}
	if def.Final != nil && !states[*def.Final] {
		errors = append(errors, fmt.Sprintf("final state %d is not declared", *def.Final))
	}

	for i, s := range def.Input {
		if !alphabet[s] {
			errors = append(errors, fmt.Sprintf("input symbol %d at offset %d not in alphabet", s, i))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Unreachable lists the declared states that no sequence of transitions
// leads to from the start state, in declaration order.
// The start state is the override when set, otherwise the smallest key.
func Unreachable(def *domain.Definition) []domain.StateKey {
	start, ok := startOf(def)
	if !ok {
		return nil
	}

	edges := make(map[domain.StateKey][]domain.StateKey)
	for _, r := range def.Transitions {
		edges[r.From] = append(edges[r.From], r.To)
	}

	// Crawler
	visited := map[domain.StateKey]bool{}
	queue := []domain.StateKey{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range edges[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var out []domain.StateKey
	seen := map[domain.StateKey]bool{}
	for _, k := range def.States {
		if !visited[k] && !seen[k] {
			out = append(out, k)
		}
		seen[k] = true
	}
	return out
}

// FinalReachable reports whether the final state can be reached from start.
// A machine whose final state is unreachable never halts successfully.
func FinalReachable(def *domain.Definition) bool {
	if def == nil || len(def.States) == 0 {
		return false
	}
	final := slices.Max(def.States)
	if def.Final != nil {
		final = *def.Final
	}
	return !slices.Contains(Unreachable(def), final)
}

func startOf(def *domain.Definition) (domain.StateKey, bool) {
	if def == nil || len(def.States) == 0 {
		return 0, false
	}
	if def.Start != nil {
		return *def.Start, true
	}
	return slices.Min(def.States), true
}
