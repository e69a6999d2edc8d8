package ssz

import (
	"math/bits"

	bitfield "github.com/OffchainLabs/go-bitfield"
)

// validateBitlistBytes checks the wire-format invariants of a BitList
// encoding (§3, §4.2): it must be non-empty, its last byte must carry a
// set sentinel bit, and the resulting logical length must not exceed
// maxBits (maxBits <= 0 means unbounded).
func validateBitlistBytes(buf []byte, maxBits int) error {
	if len(buf) == 0 {
		return newDeserializeError(ErrInvalidBitlistTerminator, "BitList", -1)
	}
	last := buf[len(buf)-1]
	if last == 0 {
		return newDeserializeError(ErrInvalidBitlistTerminator, "BitList", len(buf)-1)
	}
	if maxBits <= 0 {
		return nil
	}
	maxBytes := (maxBits >> 3) + 1
	if len(buf) > maxBytes {
		return newDeserializeError(ErrMaxLengthExceeded, "BitList", len(buf)-1)
	}
	msb := bits.Len8(last)
	numBits := 8*(len(buf)-1) + msb - 1
	if numBits > maxBits {
		return newDeserializeError(ErrMaxLengthExceeded, "BitList", len(buf)-1)
	}
	return nil
}

// parseBitlistBytes splits a validated BitList encoding into its logical
// content bytes (sentinel bit cleared, trailing zero bytes trimmed — the
// shape Merkleization chunks) and its logical bit length.
func parseBitlistBytes(buf []byte) (content []byte, length uint64, err error) {
	if err := validateBitlistBytes(buf, 0); err != nil {
		return nil, 0, err
	}
	last := buf[len(buf)-1]
	msb := uint8(bits.Len8(last)) - 1
	size := uint64(8*(len(buf)-1) + int(msb))

	out := append([]byte(nil), buf...)
	out[len(out)-1] &^= uint8(1 << msb)

	newLen := len(out)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0x00 {
			newLen = i + 1
			break
		}
		newLen = i
	}
	return out[:newLen], size, nil
}

// BitList is the BitList[Nmax] collection wrapper (§4.4): a bit-packed,
// sentinel-terminated variable-length bit sequence, carrying its Nmax
// bound on the value so encode/decode/root stay total functions of the
// wrapper. Random access is delegated to go-bitfield's Bitlist, which
// uses the identical on-wire representation (bit-packed LSB-first, with
// the length sentinel as its final set bit) as its native storage.
type BitList struct {
	data    []byte
	maxBits int
}

// NewBitList returns an empty BitList with capacity maxBits.
func NewBitList(maxBits int) *BitList {
	return &BitList{data: []byte{0x01}, maxBits: maxBits}
}

// BitListFromBytes wraps a pre-encoded BitList, validating it against
// maxBits.
func BitListFromBytes(data []byte, maxBits int) (*BitList, error) {
	if err := validateBitlistBytes(data, maxBits); err != nil {
		return nil, err
	}
	return &BitList{data: append([]byte(nil), data...), maxBits: maxBits}, nil
}

func (b *BitList) view() bitfield.Bitlist { return bitfield.Bitlist(b.data) }

// Len returns the number of logical bits currently held.
func (b *BitList) Len() int { return int(b.view().Len()) }

// Cap returns Nmax.
func (b *BitList) Cap() int { return b.maxBits }

// BitAt returns the bit at position i.
func (b *BitList) BitAt(i int) bool { return b.view().BitAt(uint64(i)) }

// SetBitAt sets the bit at position i, growing the backing bitlist (and
// its sentinel) if i is beyond the current length. It rejects i >= Nmax.
func (b *BitList) SetBitAt(i int, val bool) error {
	if i < 0 || (b.maxBits > 0 && i >= b.maxBits) {
		return newSerializeError(ErrBitListTooLong, "BitList", b.maxBits, i+1)
	}
	if i >= b.Len() {
		grown := bitfield.NewBitlist(uint64(i + 1))
		old := b.view()
		for j := 0; j < b.Len(); j++ {
			grown.SetBitAt(uint64(j), old.BitAt(uint64(j)))
		}
		b.data = grown
	}
	b.view().SetBitAt(uint64(i), val)
	return nil
}

// Append adds one more bit past the current length.
func (b *BitList) Append(bit bool) error {
	return b.SetBitAt(b.Len(), bit)
}

// Bytes returns the canonical SSZ encoding (sentinel included).
func (b *BitList) Bytes() []byte { return append([]byte(nil), b.data...) }

func (b *BitList) isVariable() bool           { return true }
func (b *BitList) fixedWidth() (int, bool)    { return 0, false }
func (b *BitList) limit() uint64              { return bitlistChunkLimit(b.maxBits) }

func (b *BitList) appendTo(dst []byte) ([]byte, error) {
	if err := validateBitlistBytes(b.data, b.maxBits); err != nil {
		return dst, err
	}
	return append(dst, b.data...), nil
}

func (b *BitList) populateFrom(buf []byte) error {
	if err := validateBitlistBytes(buf, b.maxBits); err != nil {
		return err
	}
	b.data = append([]byte(nil), buf...)
	return nil
}

func (b *BitList) root(d Digest) ([32]byte, error) {
	content, length, err := parseBitlistBytes(b.data)
	if err != nil {
		return [32]byte{}, err
	}
	chunks := chunkify(content)
	root, err := merkleizeChunks(d, chunks, b.limit())
	if err != nil {
		return [32]byte{}, err
	}
	return mixInLength(d, root, length), nil
}
