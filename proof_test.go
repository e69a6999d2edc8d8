package ssz

import "testing"

func TestProveAndVerifyMultiproof(t *testing.T) {
	leaves := make([][32]byte, 8)
	for i := range leaves {
		leaves[i] = DefaultDigest([]byte{byte(i)})
	}
	depth := 3 // 8 = 2^3 leaves

	tree := make(map[int][32]byte)
	total := 1 << depth
	for i, l := range leaves {
		tree[total+i] = l
	}
	for d := depth - 1; d >= 0; d-- {
		for idx := 1 << d; idx < 1<<(d+1); idx++ {
			left, right := tree[2*idx], tree[2*idx+1]
			tree[idx] = digestConcat(DefaultDigest, left[:], right[:])
		}
	}
	root := tree[1]

	indices := []int{2, 5}
	proof, err := Prove(leaves, depth, indices)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	genIndices := make([]int, len(indices))
	proofLeaves := make([][]byte, len(indices))
	for i, idx := range indices {
		genIndices[i] = total + idx
		leaf := leaves[idx]
		proofLeaves[i] = leaf[:]
	}

	ok, err := VerifyMultiproof(root, proof, proofLeaves, genIndices)
	if err != nil {
		t.Fatalf("VerifyMultiproof: %v", err)
	}
	if !ok {
		t.Fatal("proof did not verify")
	}
}

func TestVerifyMultiproofRejectsWrongRoot(t *testing.T) {
	leaves := make([][32]byte, 4)
	for i := range leaves {
		leaves[i] = DefaultDigest([]byte{byte(i)})
	}
	proof, err := Prove(leaves, 2, []int{0})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	leaf := leaves[0]
	ok, err := VerifyMultiproof([32]byte{0xFF}, proof, [][]byte{leaf[:]}, []int{4})
	if err != nil {
		t.Fatalf("VerifyMultiproof: %v", err)
	}
	if ok {
		t.Fatal("proof verified against the wrong root")
	}
}
