package ssz

import "github.com/holiman/uint256"

// Uint256 is the uint256 basic kind (§3), backed by holiman/uint256's
// fixed-width big integer rather than hand-rolled word arithmetic.
type Uint256 struct {
	inner uint256.Int
}

// NewUint256 wraps a holiman/uint256.Int.
func NewUint256(v *uint256.Int) Uint256 {
	var u Uint256
	u.inner.Set(v)
	return u
}

// Int returns the underlying holiman/uint256.Int for arithmetic.
func (u *Uint256) Int() *uint256.Int { return &u.inner }

// Uint256FromBytes reads 32 little-endian bytes into a Uint256.
func Uint256FromBytes(b []byte) Uint256 {
	be := reverse32(b)
	var u Uint256
	u.inner.SetBytes32(be[:])
	return u
}

// Bytes returns the 32-byte little-endian encoding of u.
func (u Uint256) Bytes() [32]byte {
	be := u.inner.Bytes32()
	return reverse32(be[:])
}

func reverse32(b []byte) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[i] = b[31-i]
	}
	return out
}
