package ahocorasick

import "testing"

func TestBuilder_AddAll(t *testing.T) {
	b := NewBuilder[int](false)
	err := b.AddAll([]PatternValue[int]{
		{Key: "foo", Value: 1},
		{Key: "bar", Value: 2},
	})
	if err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	a, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Count() != 2 {
		t.Errorf("expected Count() == 2, got %d", a.Count())
	}
	if v, ok := a.ValueOf("bar"); !ok || v != 2 {
		t.Errorf("ValueOf(\"bar\") = (%d, %v), want (2, true)", v, ok)
	}
}

func TestBuilder_AddAllRejectsNil(t *testing.T) {
	b := NewBuilder[int](false)
	if err := b.AddAll(nil); err == nil {
		t.Fatal("expected AddAll(nil) to fail")
	}
}
