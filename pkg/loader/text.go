package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/turing/pkg/domain"
)

// MaxAlphabetSize bounds the alphabet size line of the text format.
const MaxAlphabetSize = 1 << 16

type sourceLine struct {
	number int
	text   string
}

// ParseText reads the line-oriented simulator format.
func ParseText(r io.Reader) (*domain.Definition, error) {
	var lines []sourceLine
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		lines = append(lines, sourceLine{number: n, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}

	if len(lines) < 2 {
		return nil, &ParseError{Reason: "expected state count and alphabet size"}
	}

	numStates, err := parseCount(lines[0], "state count")
	if err != nil {
		return nil, err
	}
	if numStates < 1 {
		return nil, &ParseError{Line: lines[0].number, Reason: "at least one state is required"}
	}
	sigma, err := parseCount(lines[1], "alphabet size")
	if err != nil {
		return nil, err
	}
	if sigma > MaxAlphabetSize {
		return nil, &ParseError{Line: lines[1].number, Reason: fmt.Sprintf("alphabet size %d exceeds %d", sigma, MaxAlphabetSize)}
	}
	alphabetLen := sigma + 1 // blank is implicit

	// The halting state has no outgoing rules, so every other state needs
	// alphabetLen lines. Check against what was read before allocating.
	body := lines[2:]
	rules := numStates - 1
	if rules > 0 && alphabetLen > len(body)/rules {
		if rules > len(body) {
			return nil, &ParseError{Reason: fmt.Sprintf("expected at least %d transition lines for %d states, found %d", rules, numStates, len(body))}
		}
		return nil, &ParseError{Reason: fmt.Sprintf("expected %d transition lines, found %d", rules*alphabetLen, len(body))}
	}
	want := rules * alphabetLen

	def := &domain.Definition{
		States:   make([]domain.StateKey, numStates),
		Alphabet: make([]domain.Symbol, alphabetLen),
	}
	for i := range def.States {
		def.States[i] = domain.StateKey(i)
	}
	for i := range def.Alphabet {
		def.Alphabet[i] = domain.Symbol(i)
	}

	def.Transitions = make([]domain.TransitionRule, 0, want)
	for i := 0; i < want; i++ {
		rule, err := parseRule(body[i], numStates)
		if err != nil {
			return nil, err
		}
		rule.From = domain.StateKey(i / alphabetLen)
		rule.On = domain.Symbol(i % alphabetLen)
		def.Transitions = append(def.Transitions, rule)
	}

	rest := body[want:]
	switch {
	case len(rest) == 1 && !strings.Contains(rest[0].text, ","):
		input, err := ParseInput(rest[0].text)
		if err != nil {
			return nil, &ParseError{Line: rest[0].number, Reason: err.Error()}
		}
		def.Input = input
	case len(rest) > 0:
		return nil, &ParseError{Line: rest[0].number, Reason: "unexpected trailing line"}
	}

	return def, nil
}

func parseCount(l sourceLine, what string) (int, error) {
	v, err := strconv.Atoi(l.text)
	if err != nil || v < 0 {
		return 0, &ParseError{Line: l.number, Reason: fmt.Sprintf("invalid %s %q", what, l.text)}
	}
	return v, nil
}

func parseRule(l sourceLine, numStates int) (domain.TransitionRule, error) {
	parts := strings.Split(l.text, ",")
	if len(parts) != 3 {
		return domain.TransitionRule{}, &ParseError{Line: l.number, Reason: fmt.Sprintf("expected next,write,move but got %q", l.text)}
	}

	next, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || next < 0 || next >= numStates {
		return domain.TransitionRule{}, &ParseError{Line: l.number, Reason: fmt.Sprintf("invalid next state %q", parts[0])}
	}
	write, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || write < 0 {
		return domain.TransitionRule{}, &ParseError{Line: l.number, Reason: fmt.Sprintf("invalid write symbol %q", parts[1])}
	}
	move, err := domain.ParseDirection(parts[2])
	if err != nil {
		return domain.TransitionRule{}, &ParseError{Line: l.number, Reason: err.Error()}
	}

	return domain.TransitionRule{
		Write: domain.Symbol(write),
		Move:  move,
		To:    domain.StateKey(next),
	}, nil
}

// ParseInput converts a tape string into symbols, one character per cell.
// Digits map to 0-9 and letters to 10-35, case-insensitively.
func ParseInput(s string) ([]domain.Symbol, error) {
	out := make([]domain.Symbol, 0, len(s))
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, domain.Symbol(r-'0'))
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			out = append(out, domain.Symbol(unicode.ToLower(r)-'a'+10))
		default:
			return nil, fmt.Errorf("invalid tape character %q at offset %d", r, i)
		}
	}
	return out, nil
}
