// Package tally drives a ballot box through its Accepting -> Sealed ->
// Tallied lifecycle, accumulating encrypted ballots and producing a
// final per-candidate tally via a pluggable homomorphic engine.
package tally

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
	"github.com/vocdoni-labs/ballotcore/internal/log"
)

// State is one of the ballot box's lifecycle stages.
type State int

const (
	// Accepting accepts new ballots via Append.
	Accepting State = iota
	// Sealed rejects further ballots; awaiting Tally.
	Sealed
	// Tallied holds a final, immutable result.
	Tallied
)

func (s State) String() string {
	switch s {
	case Accepting:
		return "accepting"
	case Sealed:
		return "sealed"
	case Tallied:
		return "tallied"
	default:
		return "unknown"
	}
}

// Tallier abstracts a homomorphic tally engine (ElGamal or Paillier):
// it folds a batch of one-hot encoded ballots into per-candidate
// counts.
type Tallier interface {
	// Tally sums votes column-wise and decrypts each candidate's total.
	// votes is a slice of one-hot ballots; each ballot is an opaque,
	// engine-specific per-candidate ciphertext slice.
	Tally(votes []any, numCandidates int) ([]uint64, error)
}

// BallotBox accumulates ballots for one election and drives them
// through Accepting -> Sealed -> Tallied. It is safe for concurrent use.
type BallotBox struct {
	mu            sync.Mutex
	id            uuid.UUID
	state         State
	numCandidates int
	tallier       Tallier

	ballots []any
	result  []uint64
}

// New creates a ballot box accepting one-hot ballots over numCandidates
// candidates, using tallier to compute the final result. Each box is
// assigned an opaque ID for logging and cross-referencing.
func New(numCandidates int, tallier Tallier) (*BallotBox, error) {
	if numCandidates < 2 {
		return nil, engerr.New(engerr.InvalidInput, "tally.New", fmt.Errorf("numCandidates must be at least 2"))
	}
	if tallier == nil {
		return nil, engerr.New(engerr.MissingKey, "tally.New", fmt.Errorf("tallier must not be nil"))
	}
	return &BallotBox{
		id:            uuid.New(),
		state:         Accepting,
		numCandidates: numCandidates,
		tallier:       tallier,
	}, nil
}

// ID returns the ballot box's opaque identifier.
func (b *BallotBox) ID() uuid.UUID {
	return b.id
}

// State reports the box's current lifecycle state.
func (b *BallotBox) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Append records a one-hot ballot. It fails if the box is not Accepting.
func (b *BallotBox) Append(ballot any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Accepting {
		return engerr.New(engerr.StateError, "tally.BallotBox.Append",
			fmt.Errorf("cannot append in state %s", b.state))
	}
	b.ballots = append(b.ballots, ballot)
	return nil
}

// Count returns the number of ballots accepted so far.
func (b *BallotBox) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ballots)
}

// Seal transitions Accepting -> Sealed, after which no further ballots
// are accepted.
func (b *BallotBox) Seal() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != Accepting {
		return engerr.New(engerr.StateError, "tally.BallotBox.Seal",
			fmt.Errorf("cannot seal in state %s", b.state))
	}
	b.state = Sealed
	log.Infof("ballot box %s sealed with %d ballots", b.id, len(b.ballots))
	return nil
}

// Tally transitions Sealed -> Tallied, invoking the configured Tallier
// over the accumulated ballots. The result is cached; subsequent calls
// return the same slice without recomputation.
func (b *BallotBox) Tally() ([]uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == Tallied {
		return b.result, nil
	}
	if b.state != Sealed {
		return nil, engerr.New(engerr.StateError, "tally.BallotBox.Tally",
			fmt.Errorf("cannot tally in state %s", b.state))
	}

	result, err := b.tallier.Tally(b.ballots, b.numCandidates)
	if err != nil {
		return nil, err
	}

	b.result = result
	b.state = Tallied
	log.Infof("ballot box %s tallied: %v", b.id, result)
	return result, nil
}
