package ahocorasick

import (
	"bytes"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 1 << 40, -(1 << 40)}
	for _, v := range values {
		var buf bytes.Buffer
		if err := writeVarint(&buf, v); err != nil {
			t.Fatalf("writeVarint(%d): %v", v, err)
		}
		got, err := readVarint(&limitedByteReader{r: &buf})
		if err != nil {
			t.Fatalf("readVarint after writing %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip of %d produced %d", v, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeString(&buf, "hello, 世界"); err != nil {
		t.Fatal(err)
	}
	got, err := readString(&limitedByteReader{r: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello, 世界" {
		t.Errorf("got %q", got)
	}
}
