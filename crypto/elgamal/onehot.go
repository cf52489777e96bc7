package elgamal

import (
	"fmt"
	"math/big"

	"github.com/vocdoni-labs/ballotcore/crypto/bjj"
	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// EncryptVoteOneHot encrypts a single vote for candidateID out of
// numCandidates as a one-hot vector: ciphertext[candidateID] encrypts 1,
// every other ciphertext encrypts 0. rs supplies the per-slot encryption
// randomness; if nil, fresh randomness is sampled for each slot.
func EncryptVoteOneHot(candidateID, numCandidates int, pk bjj.Point, rs []*big.Int) ([]*Ciphertext, error) {
	if numCandidates <= 0 {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.EncryptVoteOneHot", fmt.Errorf("numCandidates must be positive"))
	}
	if candidateID < 0 || candidateID >= numCandidates {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.EncryptVoteOneHot", fmt.Errorf("candidateID %d out of range [0, %d)", candidateID, numCandidates))
	}
	if rs != nil && len(rs) != numCandidates {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.EncryptVoteOneHot", fmt.Errorf("rs length %d does not match numCandidates %d", len(rs), numCandidates))
	}

	out := make([]*Ciphertext, numCandidates)
	for i := 0; i < numCandidates; i++ {
		msg := big.NewInt(0)
		if i == candidateID {
			msg = big.NewInt(1)
		}

		var ct *Ciphertext
		var err error
		if rs != nil {
			ct, err = EncryptWithR(pk, msg, rs[i])
		} else {
			ct, err = Encrypt(pk, msg)
		}
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}

// HomomorphicTally sums a batch of one-hot ballots column-wise — one
// running ciphertext per candidate — then decrypts each column's total
// via BSGS bounded by maxVotes. All ballots must have the same length
// (numCandidates).
func HomomorphicTally(votes [][]*Ciphertext, numCandidates int, sk *big.Int, maxVotes uint64) ([]*big.Int, error) {
	if numCandidates <= 0 {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.HomomorphicTally", fmt.Errorf("numCandidates must be positive"))
	}
	sums := make([]*Ciphertext, numCandidates)
	for i := 0; i < numCandidates; i++ {
		sums[i] = &Ciphertext{C1: bjj.Identity, C2: bjj.Identity}
	}

	for vi, ballot := range votes {
		if len(ballot) != numCandidates {
			return nil, engerr.New(engerr.InvalidInput, "elgamal.HomomorphicTally",
				fmt.Errorf("ballot %d has %d ciphertexts, expected %d", vi, len(ballot), numCandidates))
		}
		for i, ct := range ballot {
			sums[i] = &Ciphertext{
				C1: bjj.Add(sums[i].C1, ct.C1),
				C2: bjj.Add(sums[i].C2, ct.C2),
			}
		}
	}

	results := make([]*big.Int, numCandidates)
	for i, sum := range sums {
		count, err := Decrypt(sum, sk, maxVotes)
		if err != nil {
			return nil, err
		}
		results[i] = count
	}
	return results, nil
}
