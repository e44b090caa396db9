package domain

import (
	"fmt"
	"strings"
)

// Symbol is a tape alphabet element. Symbols are non-negative integers.
type Symbol int

// Blank is the symbol read from every cell that was never written.
const Blank Symbol = 0

// StateKey identifies a machine state. Keys are non-negative integers.
type StateKey int

// Direction is the head movement applied after a write.
// The zero value is not a valid direction.
type Direction uint8

const (
	Left Direction = iota + 1
	Right
)

// ParseDirection accepts "L", "R", "left" and "right" (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "l", "left":
		return Left, nil
	case "r", "right":
		return Right, nil
	}
	return 0, fmt.Errorf("invalid move direction %q (expected L or R)", s)
}

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// MarshalText encodes the direction as "L" or "R".
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes "L", "R", "left" or "right".
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
