package ahocorasick

import "fmt"

// Hit describes one occurrence of a pattern found while scanning. Begin
// is inclusive and End is exclusive, both code-unit offsets into the
// text that was scanned; Length is End-Begin.
//
// Value holds the caller-supplied TValue for the matched pattern, or the
// zero value of TValue when the Automaton was loaded without values and
// without a restore function.
type Hit[TValue any] struct {
	Begin        int
	End          int
	PatternIndex int
	Value        TValue
}

// Length returns End-Begin.
func (h Hit[TValue]) Length() int {
	return h.End - h.Begin
}

// String renders the hit as "[begin:end]=value".
func (h Hit[TValue]) String() string {
	return fmt.Sprintf("[%d:%d]=%v", h.Begin, h.End, h.Value)
}
