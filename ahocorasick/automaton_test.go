package ahocorasick

import (
	"errors"
	"testing"
)

func buildAutomaton(t *testing.T, ignoreCase bool, patterns ...string) *Automaton[int] {
	t.Helper()
	b := NewBuilder[int](ignoreCase)
	for i, p := range patterns {
		if err := b.Add(p, i); err != nil {
			t.Fatalf("Add(%q): %v", p, err)
		}
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return a
}

func collectHits(a *Automaton[int], text string) []Hit[int] {
	return a.Parse(text)
}

func TestParse_HersHisSheHe(t *testing.T) {
	a := buildAutomaton(t, false, "he", "she", "his", "hers")
	hits := collectHits(a, "ushers")

	if len(hits) != 3 {
		t.Fatalf("expected 3 overlapping hits, got %d: %v", len(hits), hits)
	}

	found := make(map[int]bool)
	for _, h := range hits {
		found[h.PatternIndex] = true
	}
	for _, want := range []int{0, 1, 3} { // he, she, hers
		if !found[want] {
			t.Errorf("expected pattern index %d among hits, got %v", want, hits)
		}
	}
}

func TestParse_NoMatch(t *testing.T) {
	a := buildAutomaton(t, false, "foo", "bar")
	if hits := collectHits(a, "nothing here"); len(hits) != 0 {
		t.Errorf("expected 0 hits, got %d", len(hits))
	}
}

func TestParse_EmptyText(t *testing.T) {
	a := buildAutomaton(t, false, "abc")
	if hits := collectHits(a, ""); len(hits) != 0 {
		t.Errorf("expected 0 hits, got %d", len(hits))
	}
}

func TestParse_SubstringPatterns(t *testing.T) {
	a := buildAutomaton(t, false, "a", "ab", "abc")
	hits := collectHits(a, "abc")
	if len(hits) != 3 {
		t.Fatalf("expected 3 overlapping hits, got %d: %v", len(hits), hits)
	}
	for _, h := range hits {
		if h.End != 1 && h.End != 2 && h.End != 3 {
			t.Errorf("unexpected end offset %d", h.End)
		}
	}
}

func TestParse_IgnoreCase(t *testing.T) {
	a := buildAutomaton(t, true, "AutoOpen")
	hits := collectHits(a, "malware calls autoopen() on load")
	if len(hits) != 1 {
		t.Fatalf("expected 1 case-insensitive hit, got %d", len(hits))
	}
	if hits[0].Begin != 14 || hits[0].End != 22 {
		t.Errorf("expected [14:22), got [%d:%d)", hits[0].Begin, hits[0].End)
	}
}

func TestParseVisitor_CancelAfterFirstHit(t *testing.T) {
	a := buildAutomaton(t, false, "he", "she", "his", "hers")
	var seen []Hit[int]
	a.ParseVisitor("ushers", func(h Hit[int]) bool {
		seen = append(seen, h)
		return false
	})
	if len(seen) != 1 {
		t.Fatalf("expected exactly 1 hit before cancellation, got %d", len(seen))
	}
}

func TestParseVisitor_RejectsNilVisitor(t *testing.T) {
	a := buildAutomaton(t, false, "he", "she")
	err := a.ParseVisitor("ushers", nil)
	if err == nil {
		t.Fatal("expected an error for a nil visitor")
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind != ErrInvalidArgument {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMatches(t *testing.T) {
	a := buildAutomaton(t, false, "needle")
	if !a.Matches("a needle in a haystack") {
		t.Error("expected Matches to report true")
	}
	if a.Matches("nothing to see") {
		t.Error("expected Matches to report false")
	}
}

func TestFindFirst(t *testing.T) {
	a := buildAutomaton(t, false, "he", "she", "his", "hers")
	hit, ok := a.FindFirst("ushers")
	if !ok {
		t.Fatal("expected a hit")
	}
	// "she" and "he" both end at code-unit offset 4 in "ushers"
	// (u-s-h-e-r-s); FindFirst returns whichever the scan visits
	// first at that position.
	if hit.End != 4 {
		t.Errorf("expected the first hit to end at 4, got %d", hit.End)
	}
}

func TestValueOf_ExactMatchOnly(t *testing.T) {
	a := buildAutomaton(t, false, "he", "hers")
	if _, ok := a.ValueOf("her"); ok {
		t.Error("expected \"her\" (a proper prefix of \"hers\") to not exact-match")
	}
	if v, ok := a.ValueOf("hers"); !ok || v != 1 {
		t.Errorf("expected ValueOf(\"hers\") = (1, true), got (%d, %v)", v, ok)
	}
	if _, ok := a.ValueOf("hershey"); ok {
		t.Error("expected \"hershey\" (a superstring of \"hers\") to not exact-match")
	}
}

func TestValueOf_AcceptingInternalNode(t *testing.T) {
	// "he" terminates at a node that also has children (via "hers"),
	// exercising the internal-but-accepting encoding of spec §3.
	a := buildAutomaton(t, false, "he", "hers")
	if v, ok := a.ValueOf("he"); !ok || v != 0 {
		t.Errorf("expected ValueOf(\"he\") = (0, true), got (%d, %v)", v, ok)
	}
}

func TestBuilder_RejectsEmptyKey(t *testing.T) {
	b := NewBuilder[int](false)
	err := b.Add("", 0)
	if err == nil {
		t.Fatal("expected an error adding an empty key")
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Kind != ErrInvalidArgument {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuilder_RejectsMutationAfterBuild(t *testing.T) {
	b := NewBuilder[int](false)
	if err := b.Add("x", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("y", 1); err == nil {
		t.Fatal("expected Add after Build to fail")
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected Build called twice to fail")
	}
}

func TestParseRange_OffsetsRelativeToWholeBuffer(t *testing.T) {
	a := buildAutomaton(t, false, "cd")
	units := toCodeUnits("abcdef")
	var hits []Hit[int]
	err := a.ParseRange(units, 2, 4, func(h Hit[int]) bool {
		hits = append(hits, h)
		return true
	})
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if len(hits) != 1 || hits[0].Begin != 2 || hits[0].End != 4 {
		t.Fatalf("expected 1 hit at [2:4), got %v", hits)
	}
}

func TestParseRange_RejectsOutOfRange(t *testing.T) {
	a := buildAutomaton(t, false, "cd")
	units := toCodeUnits("abcdef")
	err := a.ParseRange(units, 3, 10, func(Hit[int]) bool { return true })
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestEmptyAutomaton(t *testing.T) {
	b := NewBuilder[int](false)
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Matches("anything at all") {
		t.Error("expected an empty automaton to never match")
	}
	if a.Count() != 0 {
		t.Errorf("expected Count() == 0, got %d", a.Count())
	}
}
