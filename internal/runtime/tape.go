package runtime

import (
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Tape is a sparse, logically bi-infinite tape with a single head.
// Cells that were never written read as blank. Writing blank is a normal
// write: entries are never reclaimed.
type Tape struct {
	cells map[int]domain.Symbol
	head  int
}

// NewTape creates an empty tape with the head at position 0.
func NewTape() *Tape {
	return &Tape{cells: make(map[int]domain.Symbol)}
}

// Initialize wipes the tape and loads content starting at position 0.
// When present is false a single blank is written at the origin. Otherwise
// each symbol is written moving right, and the head is restored to 0.
func (t *Tape) Initialize(content []domain.Symbol, present bool) {
	t.cells = make(map[int]domain.Symbol, len(content))
	t.head = 0

	if !present {
		t.Write(domain.Blank)
		return
	}
	for _, s := range content {
		t.Write(s)
		t.MoveRight()
	}
	t.head = 0
}

// Read returns the symbol under the head.
func (t *Tape) Read() domain.Symbol {
	return t.cells[t.head]
}

// Write stores s under the head, overwriting any prior value.
func (t *Tape) Write(s domain.Symbol) {
	t.cells[t.head] = s
}

func (t *Tape) MoveLeft()  { t.head-- }
func (t *Tape) MoveRight() { t.head++ }

// Move shifts the head one cell in direction d.
func (t *Tape) Move(d domain.Direction) {
	if d == domain.Left {
		t.MoveLeft()
		return
	}
	t.MoveRight()
}

// Head returns the current head position.
func (t *Tape) Head() int {
	return t.head
}

// Len returns the number of touched cells.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Snapshot returns every touched cell sorted by ascending position.
// Untouched gaps are not synthesized.
func (t *Tape) Snapshot() []domain.Cell {
	out := make([]domain.Cell, 0, len(t.cells))
	for pos, s := range t.cells {
		out = append(out, domain.Cell{Position: pos, Symbol: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
