package ssz

import (
	"bytes"
	"testing"
)

func TestVectorFixedLengthEnforced(t *testing.T) {
	v := NewVector[uint32](3)
	v.Items = v.Items[:2]
	if _, err := v.appendTo(nil); err == nil {
		t.Fatal("expected error for wrong-length vector")
	}
}

func TestVectorRoundTrip(t *testing.T) {
	v := NewVector[uint8](4)
	copy(v.Items, []uint8{1, 2, 3, 4})

	enc, err := v.appendTo(nil)
	if err != nil {
		t.Fatalf("appendTo: %v", err)
	}
	if !bytes.Equal(enc, []byte{1, 2, 3, 4}) {
		t.Fatalf("got %x", enc)
	}

	out := NewVector[uint8](4)
	if err := out.populateFrom(enc); err != nil {
		t.Fatalf("populateFrom: %v", err)
	}
	if !bytes.Equal(out.Items, v.Items) {
		t.Fatalf("got %v, want %v", out.Items, v.Items)
	}
}
