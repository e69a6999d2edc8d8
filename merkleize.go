package ssz

import (
	"encoding/binary"
	"reflect"

	hashtree "github.com/prysmaticlabs/gohashtree"
)

// zeroHashes[d] is the root of a perfectly balanced, all-zero subtree of
// depth d, memoized once per process (§9 design note: Merkleization of
// sparse lists is dominated by zero-hash chains).
var zeroHashes = computeZeroHashes(40)

func computeZeroHashes(depth int) [][32]byte {
	out := make([][32]byte, depth+1)
	for d := 1; d <= depth; d++ {
		out[d] = DefaultDigest(append(append([]byte{}, out[d-1][:]...), out[d-1][:]...))
	}
	return out
}

// merkleizeChunks reduces a chunk sequence to a single root under the
// given chunk_limit (§4.3 Padding, Reduction).
func merkleizeChunks(d Digest, chunks [][]byte, limit uint64) ([32]byte, error) {
	if limit == 0 {
		limit = 1
	}
	if uint64(len(chunks)) > limit {
		return [32]byte{}, newSerializeError(ErrListTooLong, "chunks", int(limit), len(chunks))
	}

	leafCount := nextPowerOfTwo(limit)
	leaves := make([][32]byte, leafCount)
	for i, c := range chunks {
		copy(leaves[i][:], c)
	}
	return reduceLeaves(d, leaves)
}

// merkleizeRoots is merkleizeChunks specialized for a sequence of
// already-computed 32-byte roots (e.g. a container's field roots, or a
// list-of-composites' element roots).
func merkleizeRoots(d Digest, roots [][32]byte, limit uint64) ([32]byte, error) {
	if limit == 0 {
		limit = 1
	}
	if uint64(len(roots)) > limit {
		return [32]byte{}, newSerializeError(ErrListTooLong, "roots", int(limit), len(roots))
	}
	leafCount := nextPowerOfTwo(limit)
	leaves := make([][32]byte, leafCount)
	copy(leaves, roots)
	return reduceLeaves(d, leaves)
}

// reduceLeaves pairwise-hashes a power-of-two-sized leaf layer up to its
// root, short-circuiting to the memoized zero-subtree root when the
// default digest is in use and the whole layer is zero, and otherwise
// hashing level by level through hashPairs.
func reduceLeaves(d Digest, leaves [][32]byte) ([32]byte, error) {
	if len(leaves) == 1 {
		return leaves[0], nil
	}

	depth := 0
	for n := len(leaves); n > 1; n >>= 1 {
		depth++
	}
	if isDefaultDigest(d) && allZeroLeaves(leaves) && depth < len(zeroHashes) {
		return zeroHashes[depth], nil
	}

	level := leaves
	for len(level) > 1 {
		next := make([][32]byte, len(level)/2)
		if err := hashPairs(d, next, level); err != nil {
			return [32]byte{}, err
		}
		level = next
	}
	return level[0], nil
}

func allZeroLeaves(level [][32]byte) bool {
	for _, l := range level {
		if l != [32]byte{} {
			return false
		}
	}
	return true
}

// hashPairs fills dst[i] = digest(level[2i] || level[2i+1]) for every
// pair in level. With the default digest it uses gohashtree's batched SIMD
// implementation, falling back to the scalar Digest if that returns an
// error; any other digest goes straight to the scalar path, since the
// accelerator always computes SHA-256.
func hashPairs(d Digest, dst, level [][32]byte) error {
	if isDefaultDigest(d) {
		if err := hashtree.Hash(dst, level); err == nil {
			return nil
		}
		Log.Debug("ssz: gohashtree batch hash failed, falling back to scalar digest")
	}
	for i := range dst {
		dst[i] = digestConcat(d, level[2*i][:], level[2*i+1][:])
	}
	return nil
}

// isDefaultDigest reports whether d is DefaultDigest, by comparing the
// underlying function pointers (func values are otherwise incomparable).
// gohashtree's batch hasher always computes SHA-256; it must only be used
// when the caller hasn't swapped in a different digest primitive.
func isDefaultDigest(d Digest) bool {
	return reflect.ValueOf(d).Pointer() == reflect.ValueOf(DefaultDigest).Pointer()
}

func mixInLength(d Digest, root [32]byte, length uint64) [32]byte {
	var lenBytes [32]byte
	binary.LittleEndian.PutUint64(lenBytes[:8], length)
	return d(append(append([]byte{}, root[:]...), lenBytes[:]...))
}

func mixInSelector(d Digest, root [32]byte, selector uint8) [32]byte {
	var selBytes [32]byte
	binary.LittleEndian.PutUint64(selBytes[:8], uint64(selector))
	return d(append(append([]byte{}, root[:]...), selBytes[:]...))
}
