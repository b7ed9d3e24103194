package ahocorasick

import "fmt"

// state is a DAT slot index. state 0 is always the root.
type state = int

// Automaton is the immutable, built multi-pattern matcher. It holds
// nothing but flat integer/value arrays, so it is safe to share across
// goroutines with no synchronization — every method here is a pure
// function of the arrays and its arguments.
type Automaton[TValue any] struct {
	base  []int
	check []int
	size  int // pre-padding slot count: len(base) == size+65535

	fail   []int
	output [][]int

	keyLengths []int
	values     []TValue
	hasValues  bool

	ignoreCase   bool
	patternCount int
}

// Count returns the number of patterns the Automaton was built from.
func (a *Automaton[TValue]) Count() int {
	return a.patternCount
}

// ValueAt returns the value associated with pattern index, with no
// bounds check: callers promise 0 <= index < Count(). It returns the
// zero value of TValue when the Automaton was loaded without values.
func (a *Automaton[TValue]) ValueAt(index int) TValue {
	if !a.hasValues {
		var zero TValue
		return zero
	}
	return a.values[index]
}

// gotoState implements the DAT goto primitive. Leaf states (a negative
// base) have no forward transitions of their own — a negative base is
// the sentinel stored directly in a leaf's slot, not a block pointer —
// so any attempt to transition out of one always fails except via the
// root's self-loop.
func (a *Automaton[TValue]) gotoState(s state, c codeUnit) (state, bool) {
	b := a.base[s]
	if b >= 0 {
		p := b + int(c) + 1
		if a.check[p] == b {
			return p, true
		}
	}
	if s == 0 {
		return 0, true
	}
	return 0, false
}

// transition follows goto/fail until a transition succeeds. It always
// terminates because gotoState(0, _) never reports failure.
func (a *Automaton[TValue]) transition(s state, c codeUnit) state {
	for {
		next, ok := a.gotoState(s, c)
		if ok {
			return next
		}
		s = a.fail[s]
	}
}

// ValueOf performs an exact-match search: key matches iff some inserted
// pattern equals it exactly (prefixes and superstrings don't count).
// The second return is false when key was never inserted.
func (a *Automaton[TValue]) ValueOf(key string) (TValue, bool) {
	units := toCodeUnits(key)
	if a.ignoreCase {
		units = upperCodeUnits(units)
	}
	return a.valueOfUnits(units)
}

func (a *Automaton[TValue]) valueOfUnits(units []codeUnit) (TValue, bool) {
	var zero TValue
	s := state(0)
	for _, c := range units {
		b := a.base[s]
		if b < 0 {
			return zero, false
		}
		p := b + int(c) + 1
		if p < 0 || p >= len(a.check) || a.check[p] != b {
			return zero, false
		}
		s = p
	}

	idx, ok := a.terminalPatternIndex(s)
	if !ok {
		return zero, false
	}
	return a.ValueAt(idx), true
}

// terminalPatternIndex reports the pattern index accepted at state s, if
// any, resolving both accepting-state encodings: a leaf whose own base
// slot directly holds the negative sentinel, or an internal state whose
// terminal slot (base[s] itself, self-checked) holds it.
func (a *Automaton[TValue]) terminalPatternIndex(s state) (int, bool) {
	b := a.base[s]
	if b < 0 {
		return -b - 1, true
	}
	p := b
	if p < 0 || p >= len(a.check) || a.check[p] != b {
		return 0, false
	}
	if tb := a.base[p]; tb < 0 {
		return -tb - 1, true
	}
	return 0, false
}

// hasOutput returns the emits list of state s, or nil when s emits
// nothing or lies outside the output array.
func (a *Automaton[TValue]) hasOutput(s state) []int {
	if s < 0 || s >= len(a.output) {
		return nil
	}
	return a.output[s]
}

func (a *Automaton[TValue]) hitAt(k int, end int) Hit[TValue] {
	return Hit[TValue]{
		Begin:        end - a.keyLengths[k],
		End:          end,
		PatternIndex: k,
		Value:        a.ValueAt(k),
	}
}

// Parse scans text and returns every occurrence of every pattern, in
// scan order, including overlapping occurrences.
func (a *Automaton[TValue]) Parse(text string) []Hit[TValue] {
	var hits []Hit[TValue]
	a.ParseVisitor(text, func(h Hit[TValue]) bool {
		hits = append(hits, h)
		return true
	})
	return hits
}

// ParseVisitor scans text, invoking visit once per hit in scan order.
// visit returning false halts the scan immediately, with no further
// emits, including any remaining hits at the same end position. It
// fails with ErrInvalidArgument when visit is nil.
func (a *Automaton[TValue]) ParseVisitor(text string, visit func(Hit[TValue]) bool) error {
	if visit == nil {
		return newErr(ErrInvalidArgument, "visitor must be non-nil")
	}
	units := toCodeUnits(text)
	a.parseUnits(units, 0, len(units), visit)
	return nil
}

// ParseRange scans buf[start:start+length], the code-unit buffer
// overload of Parse. It fails with ErrInvalidArgument when the range is
// out of bounds or visit is nil.
func (a *Automaton[TValue]) ParseRange(buf []codeUnit, start, length int, visit func(Hit[TValue]) bool) error {
	if buf == nil {
		return newErr(ErrInvalidArgument, "buffer must be non-nil")
	}
	if visit == nil {
		return newErr(ErrInvalidArgument, "visitor must be non-nil")
	}
	if start < 0 || length < 0 || start+length < start || start+length > len(buf) {
		return newErr(ErrInvalidArgument, "start/length out of range")
	}
	a.parseUnits(buf, start, start+length, visit)
	return nil
}

// parseUnits is the shared match-time state machine, walking
// buf[from:to] and reporting hit positions relative to the whole buf
// (not relative to from), so ParseRange callers recover absolute
// offsets.
func (a *Automaton[TValue]) parseUnits(buf []codeUnit, from, to int, visit func(Hit[TValue]) bool) bool {
	s := state(0)
	for i := from; i < to; i++ {
		c := buf[i]
		if a.ignoreCase {
			c = upperCodeUnit(c)
		}
		s = a.transition(s, c)

		if out := a.hasOutput(s); len(out) > 0 {
			end := i + 1
			for _, k := range out {
				if !visit(a.hitAt(k, end)) {
					return false
				}
			}
		}
	}
	return true
}

// Matches reports whether any pattern occurs anywhere in text.
func (a *Automaton[TValue]) Matches(text string) bool {
	found := false
	a.ParseVisitor(text, func(Hit[TValue]) bool {
		found = true
		return false
	})
	return found
}

// FindFirst returns the first hit in scan order (by End), or
// (zero-Hit, false) if text contains no occurrence of any pattern.
func (a *Automaton[TValue]) FindFirst(text string) (Hit[TValue], bool) {
	var first Hit[TValue]
	found := false
	a.ParseVisitor(text, func(h Hit[TValue]) bool {
		first = h
		found = true
		return false
	})
	return first, found
}

// Dump renders the (base, check, fail, output) quadruple of every slot
// from 0 to size, one line per slot, for debugging a built Automaton.
func (a *Automaton[TValue]) Dump() string {
	// fail/output are only populated for reachable DAT slots
	// (len(fail) == size+1); base/check carry a construction-time
	// padding tail that never holds a real state.
	s := ""
	for i := range a.fail {
		s += fmt.Sprintf("i: %d [base=%d, check=%d, fail=%d, out=%v]\n",
			i, a.base[i], a.check[i], a.fail[i], a.output[i])
	}
	return s
}
