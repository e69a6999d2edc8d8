package ssz

import sha256simd "github.com/minio/sha256-simd"

// Digest is the opaque hash primitive the Merkleizer reduces through
// (§6). The codec never assumes anything about the digest beyond
// "32 bytes out for any bytes in" — implementations may bind it to a
// different primitive entirely.
type Digest func(data []byte) [32]byte

// DefaultDigest binds the opaque digest function to SHA-256, computed
// through the SIMD-accelerated implementation rather than crypto/sha256.
var DefaultDigest Digest = sha256simd.Sum256

func digestConcat(d Digest, left, right []byte) [32]byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	return d(buf)
}
