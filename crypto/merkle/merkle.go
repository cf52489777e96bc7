// Package merkle implements a binary SHA-256 Merkle tree over raw
// leaf data, with inclusion proofs suitable for letting a voter verify
// their ballot was recorded without exposing the full leaf set.
package merkle

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// Direction marks which side of a proof step a sibling hash sits on.
type Direction byte

const (
	Left  Direction = 'L'
	Right Direction = 'R'
)

// ProofStep is one level of an inclusion proof: the sibling hash and
// which side it was on.
type ProofStep struct {
	Sibling   []byte
	Direction Direction
}

// Tree is a binary SHA-256 Merkle tree built bottom-up, with the last
// node of an odd-sized level duplicated so every level pairs evenly.
type Tree struct {
	leaves [][]byte
	levels [][][]byte
}

func hashLeaf(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func hashPair(left, right []byte) []byte {
	buf := make([]byte, 0, len(left)+len(right))
	buf = append(buf, left...)
	buf = append(buf, right...)
	h := sha256.Sum256(buf)
	return h[:]
}

// Build constructs a tree over dataList, hashing each entry to a leaf.
// It fails on an empty input.
func Build(dataList [][]byte) (*Tree, error) {
	if len(dataList) == 0 {
		return nil, engerr.New(engerr.InvalidInput, "merkle.Build", fmt.Errorf("data list must not be empty"))
	}

	leaves := make([][]byte, len(dataList))
	for i, d := range dataList {
		leaves[i] = hashLeaf(d)
	}

	levels := [][][]byte{leaves}
	current := leaves
	for len(current) > 1 {
		if len(current)%2 == 1 {
			current = append(current, current[len(current)-1])
		}
		next := make([][]byte, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			next = append(next, hashPair(current[i], current[i+1]))
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{leaves: leaves, levels: levels}, nil
}

// Root returns the tree's root hash.
func (t *Tree) Root() []byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// GetProof returns the inclusion proof for the leaf at index.
func (t *Tree) GetProof(index int) ([]ProofStep, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, engerr.New(engerr.InvalidInput, "merkle.Tree.GetProof", fmt.Errorf("index %d out of range [0, %d)", index, len(t.leaves)))
	}

	var proof []ProofStep
	idx := index
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]

		if len(nodes)%2 == 1 && idx == len(nodes)-1 {
			// idx is paired with a duplicate of itself: record itself as
			// the sibling so VerifyProof recomputes hashPair(node, node).
			proof = append(proof, ProofStep{Sibling: nodes[idx], Direction: Right})
			idx /= 2
			continue
		}

		var siblingIdx int
		var dir Direction
		if idx%2 == 0 {
			siblingIdx = idx + 1
			dir = Right
		} else {
			siblingIdx = idx - 1
			dir = Left
		}

		if siblingIdx < len(nodes) {
			proof = append(proof, ProofStep{Sibling: nodes[siblingIdx], Direction: dir})
		}
		idx /= 2
	}
	return proof, nil
}

// VerifyProof recomputes the root from leafData and proof, and reports
// whether it matches root.
func VerifyProof(leafData []byte, proof []ProofStep, root []byte) bool {
	current := hashLeaf(leafData)
	for _, step := range proof {
		switch step.Direction {
		case Left:
			current = hashPair(step.Sibling, current)
		default:
			current = hashPair(current, step.Sibling)
		}
	}
	return subtle.ConstantTimeCompare(current, root) == 1
}
