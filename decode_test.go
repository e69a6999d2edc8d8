package ssz

import (
	"bytes"
	"testing"
)

func TestUnmarshalRoundTripFixedContainer(t *testing.T) {
	in := fork{PreviousVersion: [4]byte{9, 8, 7, 6}, CurrentVersion: [4]byte{1, 2, 3, 4}, Epoch: 42}
	enc, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out fork
	if err := Unmarshal(enc, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestUnmarshalRoundTripVariableContainer(t *testing.T) {
	type pair struct {
		A uint32
		B []uint8 `ssz-max:"4"`
	}
	in := pair{A: 0x11223344, B: []uint8{0xAA, 0xBB}}
	enc, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out pair
	if err := Unmarshal(enc, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.A != in.A || !bytes.Equal(out.B, in.B) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestUnmarshalRoundTripBeaconState(t *testing.T) {
	in := beaconState{
		GenesisTime: 1,
		Slot:        2,
		Fork:        fork{Epoch: 3},
		Validators: []validator{
			{EffectiveBalance: 32_000_000_000, Slashed: false},
		},
		Balances: []uint64{1, 2, 3},
		PreviousEpochAttestations: []pendingAttestation{
			{AggregationBits: []byte{0x05}, InclusionDelay: 1},
		},
	}
	enc, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out beaconState
	if err := Unmarshal(enc, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	reenc, err := Marshal(out)
	if err != nil {
		t.Fatalf("re-Marshal: %v", err)
	}
	if !bytes.Equal(enc, reenc) {
		t.Fatalf("round trip not canonical: %x != %x", enc, reenc)
	}
}

func TestUnmarshalRejectsTrailingOffsetOutOfBounds(t *testing.T) {
	type pair struct {
		A uint32
		B []uint8 `ssz-max:"4"`
	}
	buf := []byte{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF}
	var out pair
	err := Unmarshal(buf, &out)
	if err == nil {
		t.Fatal("expected error for out-of-bounds offset")
	}
	de, ok := err.(*DeserializeError)
	if !ok {
		t.Fatalf("got %T, want *DeserializeError", err)
	}
	if de.Code != ErrOffsetOutOfBounds {
		t.Fatalf("got code %s, want %s", de.Code, ErrOffsetOutOfBounds)
	}
}

func TestUnmarshalRejectsNonMonotonicOffsets(t *testing.T) {
	type two struct {
		A []uint8 `ssz-max:"4"`
		B []uint8 `ssz-max:"4"`
	}
	// offsets: A=12 (wrong, should be 8), B=8 — decreasing.
	buf := []byte{12, 0, 0, 0, 8, 0, 0, 0, 1, 2, 3, 4}
	var out two
	err := Unmarshal(buf, &out)
	if err == nil {
		t.Fatal("expected an offset validation error")
	}
}

func TestUnmarshalRejectsInvalidBool(t *testing.T) {
	var out bool
	err := Unmarshal([]byte{0x02}, &out)
	if err == nil {
		t.Fatal("expected error for invalid bool byte")
	}
	de, ok := err.(*DeserializeError)
	if !ok || de.Code != ErrInvalidBool {
		t.Fatalf("got %v, want ErrInvalidBool", err)
	}
}

func TestUnmarshalRejectsWrongFixedLength(t *testing.T) {
	var out uint32
	if err := Unmarshal([]byte{1, 2, 3}, &out); err == nil {
		t.Fatal("expected error for short uint32")
	}
}

func TestUnmarshalRejectsTrailingGarbageOnFixedContainer(t *testing.T) {
	in := fork{PreviousVersion: [4]byte{9, 8, 7, 6}, CurrentVersion: [4]byte{1, 2, 3, 4}, Epoch: 42}
	enc, err := Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	withGarbage := append(append([]byte{}, enc...), 0xFF)
	var out fork
	err = Unmarshal(withGarbage, &out)
	if err == nil {
		t.Fatal("expected error for trailing bytes past a fully-fixed container")
	}
	de, ok := err.(*DeserializeError)
	if !ok {
		t.Fatalf("got %T, want *DeserializeError", err)
	}
	if de.Code != ErrInvalidByteLength {
		t.Fatalf("got code %s, want %s", de.Code, ErrInvalidByteLength)
	}
}
