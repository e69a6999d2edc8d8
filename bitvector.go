package ssz

// BitVector is the BitVector[N] collection wrapper (§4.4): a fixed-length
// bit-packed sequence with no sentinel and no length mix-in, N fixed at
// construction. go-bitfield only ships fixed power-of-two widths
// (Bitvector4/8/16/32/64/512) for specific beacon-chain fields, not a
// BitVector parametrized by an arbitrary N, so arbitrary-N storage here
// is the same LSB-first bit-packing go-bitfield itself uses internally.
// Like Vector, N lives on the value rather than the type, so this is for
// top-level or standalone use; a container field instead uses a fixed
// [K]byte array or an `ssz-size`-tagged []byte field.
type BitVector struct {
	data []byte
	n    int
}

// NewBitVector returns an all-zero BitVector of length n bits.
func NewBitVector(n int) *BitVector {
	return &BitVector{data: make([]byte, (n+7)/8), n: n}
}

// BitVectorFromBytes wraps a pre-encoded BitVector, validating that its
// byte length matches n and that any unused high bits of the final byte
// are clear (§4.2).
func BitVectorFromBytes(data []byte, n int) (*BitVector, error) {
	want := (n + 7) / 8
	if len(data) != want {
		return nil, newDeserializeError(ErrInvalidByteLength, "BitVector", len(data))
	}
	if rem := n % 8; rem != 0 && len(data) > 0 {
		mask := byte(0xFF << rem)
		if data[len(data)-1]&mask != 0 {
			return nil, newDeserializeError(ErrInvalidLength, "BitVector", len(data)-1)
		}
	}
	return &BitVector{data: append([]byte(nil), data...), n: n}, nil
}

// Len returns N.
func (b *BitVector) Len() int { return b.n }

// BitAt returns the bit at position i.
func (b *BitVector) BitAt(i int) bool {
	return b.data[i/8]&(1<<uint(i%8)) != 0
}

// SetBitAt sets the bit at position i.
func (b *BitVector) SetBitAt(i int, val bool) {
	if val {
		b.data[i/8] |= 1 << uint(i%8)
	} else {
		b.data[i/8] &^= 1 << uint(i%8)
	}
}

// Bytes returns the canonical SSZ encoding.
func (b *BitVector) Bytes() []byte { return append([]byte(nil), b.data...) }

func (b *BitVector) isVariable() bool        { return false }
func (b *BitVector) fixedWidth() (int, bool) { return len(b.data), true }
func (b *BitVector) limit() uint64           { return bitlistChunkLimit(b.n) }

func (b *BitVector) appendTo(dst []byte) ([]byte, error) {
	return append(dst, b.data...), nil
}

func (b *BitVector) populateFrom(buf []byte) error {
	v, err := BitVectorFromBytes(buf, b.n)
	if err != nil {
		return err
	}
	b.data = v.data
	return nil
}

func (b *BitVector) root(d Digest) ([32]byte, error) {
	chunks := chunkify(b.data)
	limit := bitlistChunkLimit(b.n)
	return merkleizeChunks(d, chunks, limit)
}
