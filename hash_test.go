package ssz

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func rightPad32(b []byte) [32]byte {
	var out [32]byte
	copy(out[:], b)
	return out
}

func TestHashTreeRootUint32(t *testing.T) {
	root, err := HashTreeRoot(uint32(0x01020304))
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	want := rightPad32([]byte{0x04, 0x03, 0x02, 0x01})
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootBool(t *testing.T) {
	root, err := HashTreeRoot(true)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	want := rightPad32([]byte{0x01})
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootListUint16(t *testing.T) {
	type holder struct {
		Items []uint16 `ssz-max:"4"`
	}
	root, err := HashTreeRoot(holder{Items: []uint16{0x0A, 0x0B, 0x0C}})
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}

	packed := rightPad32([]byte{0x0A, 0x00, 0x0B, 0x00, 0x0C, 0x00})
	inner, err := merkleizeChunks(DefaultDigest, [][]byte{packed[:]}, calculateLimit(4, 2))
	if err != nil {
		t.Fatalf("merkleizeChunks: %v", err)
	}
	fieldRoot := mixInLength(DefaultDigest, inner, 3)
	want, err := merkleizeRoots(DefaultDigest, [][32]byte{fieldRoot}, 1)
	if err != nil {
		t.Fatalf("merkleizeRoots: %v", err)
	}
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootBitlistBytes(t *testing.T) {
	type holder struct {
		Bits []byte `ssz:"bitlist" ssz-max:"8"`
	}
	// bits 1,0,1 then sentinel at position 3 => 0b0000_1101 = 0x0d
	root, err := HashTreeRoot(holder{Bits: []byte{0x0d}})
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	contentChunk := rightPad32([]byte{0x05})
	inner, err := merkleizeChunks(DefaultDigest, [][]byte{contentChunk[:]}, bitlistChunkLimit(8))
	if err != nil {
		t.Fatalf("merkleizeChunks: %v", err)
	}
	fieldRoot := mixInLength(DefaultDigest, inner, 3)
	want, err := merkleizeRoots(DefaultDigest, [][32]byte{fieldRoot}, 1)
	if err != nil {
		t.Fatalf("merkleizeRoots: %v", err)
	}
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootContainerOfTwoFields(t *testing.T) {
	type pair struct {
		A uint32
		B []uint8 `ssz-max:"4"`
	}
	v := pair{A: 0x11223344, B: []uint8{0xAA, 0xBB}}
	root, err := HashTreeRoot(v)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}

	aRoot := rightPad32([]byte{0x44, 0x33, 0x22, 0x11})
	bContent := rightPad32([]byte{0xAA, 0xBB})
	bInner, err := merkleizeChunks(DefaultDigest, [][]byte{bContent[:]}, calculateLimit(4, 1))
	if err != nil {
		t.Fatalf("merkleizeChunks: %v", err)
	}
	bRoot := mixInLength(DefaultDigest, bInner, 2)
	want, err := merkleizeRoots(DefaultDigest, [][32]byte{aRoot, bRoot}, 2)
	if err != nil {
		t.Fatalf("merkleizeRoots: %v", err)
	}
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootOptionNone(t *testing.T) {
	o := None[uint8]()
	root, err := (&o).root(DefaultDigest)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	var lenBytes [32]byte
	binary.LittleEndian.PutUint64(lenBytes[:8], 0)
	want := DefaultDigest(append(append([]byte{}, make([]byte, 32)...), lenBytes[:]...))
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootOptionSome(t *testing.T) {
	o := Some[uint8](7)
	root, err := (&o).root(DefaultDigest)
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	inner := rightPad32([]byte{7})
	want := mixInSelector(DefaultDigest, inner, 1)
	if root != want {
		t.Fatalf("got %x, want %x", root, want)
	}
}

func TestHashTreeRootStable(t *testing.T) {
	v := fork{Epoch: 99}
	r1, err := HashTreeRoot(v)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	r2, err := HashTreeRoot(v)
	if err != nil {
		t.Fatalf("HashTreeRoot: %v", err)
	}
	if !bytes.Equal(r1[:], r2[:]) {
		t.Fatalf("root not stable across calls: %x != %x", r1, r2)
	}
}
