package merkle

import (
	"encoding/hex"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// RootHex returns the tree's root hash, hex-encoded.
func (t *Tree) RootHex() string {
	return hex.EncodeToString(t.Root())
}

// ProofStepHex is the hex-encoded wire form of a ProofStep.
type ProofStepHex struct {
	Sibling   string `json:"sibling"`
	Direction string `json:"direction"`
}

// GetProofHex returns the inclusion proof for index with sibling hashes
// hex-encoded.
func (t *Tree) GetProofHex(index int) ([]ProofStepHex, error) {
	proof, err := t.GetProof(index)
	if err != nil {
		return nil, err
	}
	out := make([]ProofStepHex, len(proof))
	for i, step := range proof {
		out[i] = ProofStepHex{
			Sibling:   hex.EncodeToString(step.Sibling),
			Direction: string(step.Direction),
		}
	}
	return out, nil
}

// ProofFromHex decodes a hex-encoded proof back into binary ProofSteps.
func ProofFromHex(proof []ProofStepHex) ([]ProofStep, error) {
	out := make([]ProofStep, len(proof))
	for i, step := range proof {
		sib, err := hex.DecodeString(step.Sibling)
		if err != nil {
			return nil, engerr.New(engerr.InvalidInput, "merkle.ProofFromHex", err)
		}
		var dir Direction
		if len(step.Direction) == 1 {
			dir = Direction(step.Direction[0])
		}
		out[i] = ProofStep{Sibling: sib, Direction: dir}
	}
	return out, nil
}
