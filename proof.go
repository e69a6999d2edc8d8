package ssz

import (
	"bytes"
	"math/bits"
	"sort"

	"github.com/pkg/errors"
)

// VerifyMultiproof verifies a multi-proof of a set of generalized-index
// leaves against root.
func VerifyMultiproof(root [32]byte, proof [][]byte, leaves [][]byte, indices []int) (bool, error) {
	return VerifyMultiproofWithDigest(DefaultDigest, root, proof, leaves, indices)
}

// VerifyMultiproofWithDigest is VerifyMultiproof parameterized over the
// digest primitive, for callers that bound HashTreeRoot to a non-default
// digest and must verify proofs consistently with it. Generalized-index
// multiproof verification is the standard algorithm consensus-layer
// clients all implement the same way (reconstruct every ancestor of a
// known node up to the root); this is a direct-recursion rendition of it
// rather than the level-by-level queue merge of the teacher's original
// verifier, since a proof's supplied nodes can sit at mixed depths and a
// top-down walk from the root naturally stops as soon as it hits a node
// the caller already supplied.
func VerifyMultiproofWithDigest(d Digest, root [32]byte, proof [][]byte, leaves [][]byte, indices []int) (bool, error) {
	if len(indices) == 0 {
		return false, errors.New("ssz: indices length is zero")
	}
	if len(leaves) != len(indices) {
		return false, errors.New("ssz: number of leaves and indices mismatch")
	}

	reqIndices := requiredIndices(indices)
	if len(reqIndices) != len(proof) {
		return false, errors.Errorf("ssz: number of proof hashes %d and required indices %d mismatch", len(proof), len(reqIndices))
	}

	known := make(map[int][]byte, len(indices)+len(reqIndices))
	deepest := 1
	for i, leaf := range leaves {
		known[indices[i]] = normalize32(leaf)
		if indices[i] > deepest {
			deepest = indices[i]
		}
	}
	for i, h := range proof {
		known[reqIndices[i]] = normalize32(h)
		if reqIndices[i] > deepest {
			deepest = reqIndices[i]
		}
	}

	computed, err := reconstructNode(d, known, 1, bits.Len(uint(deepest))-1)
	if err != nil {
		return false, err
	}
	return bytes.Equal(computed, root[:]), nil
}

// reconstructNode returns the value at generalized index idx, taking it
// directly from known when the caller already supplied it (a leaf or a
// proof hash) and otherwise recursing into idx's two children and
// hashing them together. maxDepth bounds the descent: once a node's own
// depth reaches it without being found in known, the multiproof is
// missing a node the caller never supplied.
func reconstructNode(d Digest, known map[int][]byte, idx, maxDepth int) ([]byte, error) {
	if v, ok := known[idx]; ok {
		return v, nil
	}
	if bits.Len(uint(idx))-1 >= maxDepth {
		return nil, errors.Errorf("ssz: proof is missing required node %d", idx)
	}
	left, err := reconstructNode(d, known, 2*idx, maxDepth)
	if err != nil {
		return nil, err
	}
	right, err := reconstructNode(d, known, 2*idx+1, maxDepth)
	if err != nil {
		return nil, err
	}
	parent := digestConcat(d, left, right)
	known[idx] = parent[:]
	return parent[:], nil
}

// Prove builds a multi-proof for the leaves at the given 0-based leaf
// positions (converted internally to generalized indices by adding
// 2^depth) over a tree whose full set of leaf chunks (at the given depth)
// is supplied by the caller. It is the companion the teacher never wrote: a verifier
// without a generator only checks proofs someone else produced.
func Prove(leaves [][32]byte, depth int, indices []int) (proof [][]byte, err error) {
	total := 1 << depth
	if len(leaves) > total {
		return nil, errors.Errorf("ssz: leaf count %d exceeds tree capacity %d at depth %d", len(leaves), total, depth)
	}

	tree := make(map[int][32]byte, 2*total)
	for i := 0; i < total; i++ {
		idx := total + i
		if i < len(leaves) {
			tree[idx] = leaves[i]
		} else {
			tree[idx] = zeroHashes[0]
		}
	}
	for d := depth - 1; d >= 0; d-- {
		lo, hi := 1<<d, 1<<(d+1)
		for idx := lo; idx < hi; idx++ {
			left, right := tree[2*idx], tree[2*idx+1]
			tree[idx] = digestConcat(DefaultDigest, left[:], right[:])
		}
	}

	genIndices := make([]int, len(indices))
	copy(genIndices, indices)
	for i := range genIndices {
		genIndices[i] += total
	}

	req := requiredIndices(genIndices)
	proof = make([][]byte, len(req))
	for i, idx := range req {
		root := tree[idx]
		proof[i] = append([]byte{}, root[:]...)
	}
	return proof, nil
}

func normalize32(input []byte) []byte {
	if len(input) == bytesPerChunk {
		return input
	}
	out := make([]byte, bytesPerChunk)
	copy(out, input)
	return out
}

func parentIndex(index int) int { return index >> 1 }
func siblingIndex(index int) int { return index ^ 1 }

// requiredIndices computes the generalized indices that must be supplied
// externally (as proof hashes) to reconstruct the root for leafIndices,
// excluding indices the caller already supplies as leaves or that get
// computed along the way.
func requiredIndices(leafIndices []int) []int {
	required := make(map[int]struct{})
	computed := make(map[int]struct{})
	leaves := make(map[int]struct{})

	for _, leaf := range leafIndices {
		leaves[leaf] = struct{}{}
		cur := leaf
		for cur > 1 {
			sibling := siblingIndex(cur)
			parent := parentIndex(cur)
			required[sibling] = struct{}{}
			computed[parent] = struct{}{}
			cur = parent
		}
	}
	for leaf := range leaves {
		delete(required, leaf)
	}
	for comp := range computed {
		delete(required, comp)
	}

	res := make([]int, 0, len(required))
	for i := range required {
		res = append(res, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(res)))
	return res
}
