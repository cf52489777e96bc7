package tally

import (
	"fmt"
	"math/big"

	"github.com/vocdoni-labs/ballotcore/crypto/bjj"
	"github.com/vocdoni-labs/ballotcore/crypto/elgamal"
	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
	"github.com/vocdoni-labs/ballotcore/crypto/paillier"
)

// ElGamalEngine tallies one-hot ballots encrypted under exponential
// ElGamal. MaxVotes bounds the BSGS discrete-log search per candidate
// and should be set to the electorate size or ballot count, whichever
// is known to be smaller.
type ElGamalEngine struct {
	SK       *big.Int
	MaxVotes uint64
}

var _ Tallier = (*ElGamalEngine)(nil)

// Tally implements Tallier. Each element of votes must be a
// []*elgamal.Ciphertext of length numCandidates.
func (e *ElGamalEngine) Tally(votes []any, numCandidates int) ([]uint64, error) {
	ballots := make([][]*elgamal.Ciphertext, len(votes))
	for i, v := range votes {
		ct, ok := v.([]*elgamal.Ciphertext)
		if !ok {
			return nil, engerr.New(engerr.InvalidInput, "tally.ElGamalEngine.Tally",
				fmt.Errorf("ballot %d is not an ElGamal one-hot ciphertext slice", i))
		}
		ballots[i] = ct
	}

	counts, err := elgamal.HomomorphicTally(ballots, numCandidates, e.SK, e.MaxVotes)
	if err != nil {
		return nil, err
	}
	return toUint64Slice(counts), nil
}

// PaillierEngine tallies one-hot ballots encrypted under Paillier.
// Parallel selects between the sequential and fork-join tally paths;
// both must produce identical results.
type PaillierEngine struct {
	SK       *paillier.PrivateKey
	Parallel bool
}

var _ Tallier = (*PaillierEngine)(nil)

// Tally implements Tallier. Each element of votes must be a
// []*paillier.Ciphertext of length numCandidates.
func (e *PaillierEngine) Tally(votes []any, numCandidates int) ([]uint64, error) {
	ballots := make([][]*paillier.Ciphertext, len(votes))
	for i, v := range votes {
		ct, ok := v.([]*paillier.Ciphertext)
		if !ok {
			return nil, engerr.New(engerr.InvalidInput, "tally.PaillierEngine.Tally",
				fmt.Errorf("ballot %d is not a Paillier one-hot ciphertext slice", i))
		}
		ballots[i] = ct
	}

	tallyFn := paillier.HomomorphicTally
	if e.Parallel {
		tallyFn = paillier.HomomorphicTallyParallel
	}
	counts, err := tallyFn(e.SK, ballots, numCandidates)
	if err != nil {
		return nil, err
	}
	return toUint64Slice(counts), nil
}

func toUint64Slice(vals []*big.Int) []uint64 {
	out := make([]uint64, len(vals))
	for i, v := range vals {
		out[i] = v.Uint64()
	}
	return out
}

// EncryptOneHotElGamal is a convenience wrapper around
// elgamal.EncryptVoteOneHot for ballot-box callers that don't want to
// import the crypto/elgamal package directly.
func EncryptOneHotElGamal(candidateID, numCandidates int, pk bjj.Point) ([]*elgamal.Ciphertext, error) {
	return elgamal.EncryptVoteOneHot(candidateID, numCandidates, pk, nil)
}

// EncryptOneHotPaillier is the Paillier equivalent of EncryptOneHotElGamal.
func EncryptOneHotPaillier(pk *paillier.PublicKey, candidateID, numCandidates int) ([]*paillier.Ciphertext, error) {
	return paillier.EncryptVoteOneHot(pk, candidateID, numCandidates)
}
