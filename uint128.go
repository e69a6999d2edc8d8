package ssz

import "encoding/binary"

// Uint128 is the uint128 basic kind (§3). No third-party 128-bit integer
// type appears anywhere in the retrieved corpus — holiman/uint256 only
// goes to 256 bits and has no 128-bit sibling — so this is a small,
// self-contained pair of uint64 words rather than a dependency reach.
type Uint128 struct {
	Lo uint64 // bits 0..63
	Hi uint64 // bits 64..127
}

// Uint128FromBytes reads 16 little-endian bytes into a Uint128.
func Uint128FromBytes(b []byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Bytes returns the 16-byte little-endian encoding of u.
func (u Uint128) Bytes() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], u.Lo)
	binary.LittleEndian.PutUint64(out[8:16], u.Hi)
	return out
}
