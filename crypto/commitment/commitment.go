// Package commitment implements a SHA-256 commit-reveal scheme for
// individual votes, plus a vote-existence proof a voter can hand to an
// auditor without revealing which candidate they chose.
package commitment

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

const saltLength = 32

// GenerateSalt returns saltLength fresh random bytes.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, engerr.New(engerr.InvalidInput, "commitment.GenerateSalt", err)
	}
	return salt, nil
}

// CreateCommitment computes commitment = SHA256(be32(vote) || salt). If
// salt is nil, a fresh one is generated. Returns (commitment, salt).
func CreateCommitment(vote int, salt []byte) ([]byte, []byte, error) {
	if vote < 0 {
		return nil, nil, engerr.New(engerr.InvalidInput, "commitment.CreateCommitment", fmt.Errorf("vote must be non-negative"))
	}
	if salt == nil {
		s, err := GenerateSalt()
		if err != nil {
			return nil, nil, err
		}
		salt = s
	}

	h := sha256.Sum256(append(voteBytes(vote), salt...))
	return h[:], salt, nil
}

// VerifyCommitment reports whether (vote, salt) opens commitment.
func VerifyCommitment(vote int, salt, commitment []byte) bool {
	h := sha256.Sum256(append(voteBytes(vote), salt...))
	return subtle.ConstantTimeCompare(h[:], commitment) == 1
}

// GenerateVoteProof produces a proof that voterAddress cast the vote
// behind commitment in electionID, plus a verifyKey the voter can use
// to later demonstrate possession of the original salt without
// revealing the vote. If salt is nil, a fresh one is generated and
// returned alongside the proof — callers must persist it, since it is
// required to later verify or reveal the commitment.
//
//	proof     = SHA256(address || be32(electionID) || commitment)
//	verifyKey = SHA256(salt || address)
func GenerateVoteProof(voterAddress string, vote int, salt []byte, electionID int) (proof, verifyKey, usedSalt []byte, err error) {
	commitment, usedSalt, err := CreateCommitment(vote, salt)
	if err != nil {
		return nil, nil, nil, err
	}

	proofData := append([]byte(voterAddress), voteBytes(electionID)...)
	proofData = append(proofData, commitment...)
	p := sha256.Sum256(proofData)

	vkData := append(append([]byte{}, usedSalt...), []byte(voterAddress)...)
	vk := sha256.Sum256(vkData)
	return p[:], vk[:], usedSalt, nil
}

// VerifyVoteProof recomputes the proof hash from the public commitment
// and compares it against expectedProof.
func VerifyVoteProof(voterAddress string, electionID int, commitment, expectedProof []byte) bool {
	proofData := append([]byte(voterAddress), voteBytes(electionID)...)
	proofData = append(proofData, commitment...)
	computed := sha256.Sum256(proofData)
	return subtle.ConstantTimeCompare(computed[:], expectedProof) == 1
}

// CommitmentToHex hex-encodes a commitment for storage or transport.
func CommitmentToHex(commitment []byte) string {
	return hex.EncodeToString(commitment)
}

// HexToCommitment decodes a hex-encoded commitment.
func HexToCommitment(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, engerr.New(engerr.InvalidInput, "commitment.HexToCommitment", err)
	}
	return b, nil
}

func voteBytes(v int) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return buf
}
