package ssz

import (
	"bytes"
	"testing"
)

func TestBitListEmptySentinel(t *testing.T) {
	b := NewBitList(16)
	enc, err := b.appendTo(nil)
	if err != nil {
		t.Fatalf("appendTo: %v", err)
	}
	if !bytes.Equal(enc, []byte{0x01}) {
		t.Fatalf("got %x, want 0x01", enc)
	}
}

func TestBitListSetAndReadBits(t *testing.T) {
	b := NewBitList(16)
	for _, i := range []int{0, 2} {
		if err := b.SetBitAt(i, true); err != nil {
			t.Fatalf("SetBitAt(%d): %v", i, err)
		}
	}
	if b.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", b.Len())
	}
	if !b.BitAt(0) || b.BitAt(1) || !b.BitAt(2) {
		t.Fatalf("unexpected bit pattern")
	}
	enc, err := b.appendTo(nil)
	if err != nil {
		t.Fatalf("appendTo: %v", err)
	}
	if !bytes.Equal(enc, []byte{0x0d}) {
		t.Fatalf("got %x, want 0x0d", enc)
	}
}

func TestBitListRejectsMissingSentinel(t *testing.T) {
	if err := validateBitlistBytes([]byte{0x00}, 16); err == nil {
		t.Fatal("expected error for missing sentinel")
	}
	if err := validateBitlistBytes(nil, 16); err == nil {
		t.Fatal("expected error for empty buffer")
	}
}

func TestBitListRejectsOverNmax(t *testing.T) {
	// 9 logical bits (sentinel at position 9) against Nmax=4.
	buf := []byte{0x00, 0x02}
	if err := validateBitlistBytes(buf, 4); err == nil {
		t.Fatal("expected MaxLengthExceeded")
	}
}

func TestBitListParseStripsSentinelAndTrailingZeros(t *testing.T) {
	content, length, err := parseBitlistBytes([]byte{0x0d})
	if err != nil {
		t.Fatalf("parseBitlistBytes: %v", err)
	}
	if length != 3 {
		t.Fatalf("length = %d, want 3", length)
	}
	if !bytes.Equal(content, []byte{0x05}) {
		t.Fatalf("content = %x, want 05", content)
	}
}

func TestBitListGrowsByteWidth(t *testing.T) {
	b := NewBitList(32)
	if err := b.SetBitAt(10, true); err != nil {
		t.Fatalf("SetBitAt: %v", err)
	}
	if b.Len() != 11 {
		t.Fatalf("Len() = %d, want 11", b.Len())
	}
	if !b.BitAt(10) {
		t.Fatal("bit 10 should be set")
	}
}

func TestBitListRejectsPastCapacity(t *testing.T) {
	b := NewBitList(4)
	if err := b.SetBitAt(4, true); err == nil {
		t.Fatal("expected error past Nmax")
	}
}
