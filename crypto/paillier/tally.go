package paillier

import (
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// EncryptVoteOneHot encrypts a single vote for candidateID out of
// numCandidates as a one-hot vector under pk.
func EncryptVoteOneHot(pk *PublicKey, candidateID, numCandidates int) ([]*Ciphertext, error) {
	if numCandidates < 2 {
		return nil, engerr.New(engerr.InvalidInput, "paillier.EncryptVoteOneHot", fmt.Errorf("numCandidates must be at least 2"))
	}
	if candidateID < 0 || candidateID >= numCandidates {
		return nil, engerr.New(engerr.InvalidInput, "paillier.EncryptVoteOneHot", fmt.Errorf("candidateID %d out of range [0, %d)", candidateID, numCandidates))
	}

	out := make([]*Ciphertext, numCandidates)
	for i := 0; i < numCandidates; i++ {
		value := int64(0)
		if i == candidateID {
			value = 1
		}
		ct, err := Encrypt(pk, big.NewInt(value))
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}

// HomomorphicTally sums a batch of one-hot ballots column-wise and
// decrypts each candidate's total sequentially.
func HomomorphicTally(sk *PrivateKey, votes [][]*Ciphertext, numCandidates int) ([]*big.Int, error) {
	if err := validateBallots(votes, numCandidates); err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return zeroResults(numCandidates), nil
	}

	results := make([]*big.Int, numCandidates)
	for i := 0; i < numCandidates; i++ {
		column := columnAt(votes, i)
		sum, err := AddEncrypted(sk.PublicKey, column)
		if err != nil {
			return nil, err
		}
		m, err := Decrypt(sk, sum)
		if err != nil {
			return nil, err
		}
		results[i] = m
	}
	return results, nil
}

// HomomorphicTallyParallel is equivalent to HomomorphicTally but sums
// and decrypts each candidate's column concurrently, one goroutine per
// candidate, via a fork-join errgroup. Results are written into a
// fixed-size slice indexed by candidate so ordering matches the
// sequential path exactly regardless of goroutine completion order.
func HomomorphicTallyParallel(sk *PrivateKey, votes [][]*Ciphertext, numCandidates int) ([]*big.Int, error) {
	if err := validateBallots(votes, numCandidates); err != nil {
		return nil, err
	}
	if len(votes) == 0 {
		return zeroResults(numCandidates), nil
	}

	results := make([]*big.Int, numCandidates)
	var g errgroup.Group
	for i := 0; i < numCandidates; i++ {
		i := i
		g.Go(func() error {
			column := columnAt(votes, i)
			sum, err := AddEncrypted(sk.PublicKey, column)
			if err != nil {
				return err
			}
			m, err := Decrypt(sk, sum)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateBallots(votes [][]*Ciphertext, numCandidates int) error {
	if numCandidates < 2 {
		return engerr.New(engerr.InvalidInput, "paillier.validateBallots", fmt.Errorf("numCandidates must be at least 2"))
	}
	for vi, ballot := range votes {
		if len(ballot) != numCandidates {
			return engerr.New(engerr.InvalidInput, "paillier.validateBallots",
				fmt.Errorf("ballot %d has %d ciphertexts, expected %d", vi, len(ballot), numCandidates))
		}
	}
	return nil
}

func columnAt(votes [][]*Ciphertext, candidate int) []*Ciphertext {
	col := make([]*Ciphertext, len(votes))
	for i, ballot := range votes {
		col[i] = ballot[candidate]
	}
	return col
}

func zeroResults(numCandidates int) []*big.Int {
	out := make([]*big.Int, numCandidates)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	return out
}
