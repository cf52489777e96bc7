package commitment

import (
	"crypto/sha256"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCreateAndVerifyCommitment(t *testing.T) {
	c := qt.New(t)

	commit, salt, err := CreateCommitment(2, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(len(salt), qt.Equals, saltLength)

	c.Assert(VerifyCommitment(2, salt, commit), qt.IsTrue)
	c.Assert(VerifyCommitment(3, salt, commit), qt.IsFalse)
}

func TestCreateCommitmentWithFixedSalt(t *testing.T) {
	c := qt.New(t)
	salt := make([]byte, saltLength)

	commit1, gotSalt, err := CreateCommitment(1, salt)
	c.Assert(err, qt.IsNil)
	c.Assert(gotSalt, qt.DeepEquals, salt)

	commit2, _, err := CreateCommitment(1, salt)
	c.Assert(err, qt.IsNil)
	c.Assert(commit1, qt.DeepEquals, commit2)
}

func TestVerifyCommitmentRejectsTamperedSalt(t *testing.T) {
	c := qt.New(t)
	commit, salt, err := CreateCommitment(0, nil)
	c.Assert(err, qt.IsNil)

	tampered := append([]byte{}, salt...)
	tampered[0] ^= 0xFF
	c.Assert(VerifyCommitment(0, tampered, commit), qt.IsFalse)
}

func TestVoteProofRoundTrip(t *testing.T) {
	c := qt.New(t)
	_, salt, err := CreateCommitment(1, nil)
	c.Assert(err, qt.IsNil)

	address := "0xabc123"
	electionID := 7

	commit, _, err := CreateCommitment(1, salt)
	c.Assert(err, qt.IsNil)

	proof, verifyKey, usedSalt, err := GenerateVoteProof(address, 1, salt, electionID)
	c.Assert(err, qt.IsNil)
	c.Assert(len(verifyKey), qt.Equals, 32)
	c.Assert(usedSalt, qt.DeepEquals, salt)

	c.Assert(VerifyVoteProof(address, electionID, commit, proof), qt.IsTrue)
}

func TestVoteProofRejectsWrongElection(t *testing.T) {
	c := qt.New(t)
	address := "0xabc123"
	salt, err := GenerateSalt()
	c.Assert(err, qt.IsNil)

	commit, _, err := CreateCommitment(1, salt)
	c.Assert(err, qt.IsNil)

	proof, _, _, err := GenerateVoteProof(address, 1, salt, 1)
	c.Assert(err, qt.IsNil)

	c.Assert(VerifyVoteProof(address, 2, commit, proof), qt.IsFalse)
}

func TestVoteProofWithNilSaltGeneratesConsistentVerifyKey(t *testing.T) {
	c := qt.New(t)
	address := "0xabc123"
	electionID := 42

	proof, verifyKey, usedSalt, err := GenerateVoteProof(address, 1, nil, electionID)
	c.Assert(err, qt.IsNil)
	c.Assert(len(usedSalt), qt.Equals, saltLength)

	commit, _, err := CreateCommitment(1, usedSalt)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyVoteProof(address, electionID, commit, proof), qt.IsTrue)

	wantVerifyKey := sha256.Sum256(append(append([]byte{}, usedSalt...), []byte(address)...))
	c.Assert(verifyKey, qt.DeepEquals, wantVerifyKey[:])
}

func TestHexRoundTrip(t *testing.T) {
	c := qt.New(t)
	commit, _, err := CreateCommitment(5, nil)
	c.Assert(err, qt.IsNil)

	hexStr := CommitmentToHex(commit)
	got, err := HexToCommitment(hexStr)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, commit)
}
