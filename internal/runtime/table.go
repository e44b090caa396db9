package runtime

import (
	"github.com/aretw0/turing/pkg/domain"
)

// state holds the outgoing delta of one machine state.
type state struct {
	key         domain.StateKey
	transitions map[domain.Symbol]domain.Transition
}

// Table is the machine's state registry, alphabet and partial transition
// function δ: (state, symbol) ⇀ transition.
// States and symbols are append-only and keep insertion order.
type Table struct {
	states   map[domain.StateKey]*state
	order    []domain.StateKey
	alphabet map[domain.Symbol]struct{}
	symbols  []domain.Symbol
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		states:   make(map[domain.StateKey]*state),
		alphabet: make(map[domain.Symbol]struct{}),
	}
}

// AddState registers key. It returns false, without mutation, if key exists.
func (t *Table) AddState(key domain.StateKey) bool {
	if _, ok := t.states[key]; ok {
		return false
	}
	t.states[key] = &state{key: key, transitions: make(map[domain.Symbol]domain.Transition)}
	t.order = append(t.order, key)
	return true
}

// HasState reports whether key is registered.
func (t *Table) HasState(key domain.StateKey) bool {
	_, ok := t.states[key]
	return ok
}

// States returns the registered keys in insertion order.
func (t *Table) States() []domain.StateKey {
	return append([]domain.StateKey(nil), t.order...)
}

// AddSymbol adds s to the alphabet. Idempotent.
func (t *Table) AddSymbol(s domain.Symbol) {
	if _, ok := t.alphabet[s]; ok {
		return
	}
	t.alphabet[s] = struct{}{}
	t.symbols = append(t.symbols, s)
}

// HasSymbol reports whether s is in the alphabet.
func (t *Table) HasSymbol(s domain.Symbol) bool {
	_, ok := t.alphabet[s]
	return ok
}

// Alphabet returns the symbols in insertion order.
func (t *Table) Alphabet() []domain.Symbol {
	return append([]domain.Symbol(nil), t.symbols...)
}

// AddTransition records δ(from, on) = (dir, write, to), overwriting any
// previous rule for the pair. It returns false, without mutation, when from
// or to is not a registered state, on is not in the alphabet, or dir is not
// a valid direction.
func (t *Table) AddTransition(from, to domain.StateKey, on, write domain.Symbol, dir domain.Direction) bool {
	src, ok := t.states[from]
	if !ok || !t.HasState(to) || !t.HasSymbol(on) || !dir.Valid() {
		return false
	}
	src.transitions[on] = domain.Transition{Move: dir, Write: write, Target: to}
	return true
}

// Lookup returns δ(key, s). The second result is false when the state is
// unknown or no rule is registered for s.
func (t *Table) Lookup(key domain.StateKey, s domain.Symbol) (domain.Transition, bool) {
	st, ok := t.states[key]
	if !ok {
		return domain.Transition{}, false
	}
	tr, ok := st.transitions[s]
	return tr, ok
}

// Rules lists every defined transition, state-major in registration order
// and symbol-minor in alphabet order. Rules on symbols outside the current
// alphabet cannot exist.
func (t *Table) Rules() []domain.TransitionRule {
	var rules []domain.TransitionRule
	for _, key := range t.order {
		st := t.states[key]
		for _, s := range t.symbols {
			tr, ok := st.transitions[s]
			if !ok {
				continue
			}
			rules = append(rules, domain.TransitionRule{
				From:  key,
				On:    s,
				Write: tr.Write,
				Move:  tr.Move,
				To:    tr.Target,
			})
		}
	}
	return rules
}

// Bounds returns the smallest and largest registered keys.
// ok is false when no state is registered.
func (t *Table) Bounds() (lo, hi domain.StateKey, ok bool) {
	if len(t.order) == 0 {
		return 0, 0, false
	}
	lo, hi = t.order[0], t.order[0]
	for _, k := range t.order[1:] {
		if k < lo {
			lo = k
		}
		if k > hi {
			hi = k
		}
	}
	return lo, hi, true
}
