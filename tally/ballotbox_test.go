package tally

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni-labs/ballotcore/crypto/elgamal"
	"github.com/vocdoni-labs/ballotcore/crypto/paillier"
)

func TestBallotBoxRejectsTooFewCandidates(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(1))
	_, err := New(1, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNotNil)
}

func TestBallotBoxStateMachine(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(777))

	box, err := New(3, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNil)
	c.Assert(box.State(), qt.Equals, Accepting)

	ballot, err := EncryptOneHotElGamal(1, 3, kp.PK)
	c.Assert(err, qt.IsNil)
	c.Assert(box.Append(ballot), qt.IsNil)
	c.Assert(box.Count(), qt.Equals, 1)

	c.Assert(box.Seal(), qt.IsNil)
	c.Assert(box.State(), qt.Equals, Sealed)

	err = box.Append(ballot)
	c.Assert(err, qt.IsNotNil)

	results, err := box.Tally()
	c.Assert(err, qt.IsNil)
	c.Assert(box.State(), qt.Equals, Tallied)
	c.Assert(results[1], qt.Equals, uint64(1))

	// Tally is idempotent once Tallied.
	again, err := box.Tally()
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.DeepEquals, results)
}

func TestBallotBoxHasUniqueID(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(1))
	box1, err := New(2, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNil)
	box2, err := New(2, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNil)

	c.Assert(box1.ID(), qt.Not(qt.Equals), box2.ID())
}

func TestBallotBoxRejectsSecondSeal(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(1))
	box, err := New(2, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNil)

	c.Assert(box.Seal(), qt.IsNil)
	c.Assert(box.Seal(), qt.IsNotNil)
}

func TestBallotBoxRejectsTallyBeforeSeal(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(1))
	box, err := New(2, &ElGamalEngine{SK: kp.SK, MaxVotes: 10})
	c.Assert(err, qt.IsNil)

	_, err = box.Tally()
	c.Assert(err, qt.IsNotNil)
}

func TestBallotBoxWithPaillierEngine(t *testing.T) {
	c := qt.New(t)
	sk, err := paillier.GenerateKeyPair(256)
	c.Assert(err, qt.IsNil)

	box, err := New(2, &PaillierEngine{SK: sk, Parallel: true})
	c.Assert(err, qt.IsNil)

	for _, cand := range []int{0, 1, 0} {
		ballot, err := EncryptOneHotPaillier(sk.PublicKey, cand, 2)
		c.Assert(err, qt.IsNil)
		c.Assert(box.Append(ballot), qt.IsNil)
	}

	c.Assert(box.Seal(), qt.IsNil)
	results, err := box.Tally()
	c.Assert(err, qt.IsNil)
	c.Assert(results[0], qt.Equals, uint64(2))
	c.Assert(results[1], qt.Equals, uint64(1))
}

func TestElGamalEngineRejectsWrongBallotType(t *testing.T) {
	c := qt.New(t)
	kp := elgamal.FromSK(big.NewInt(1))
	engine := &ElGamalEngine{SK: kp.SK, MaxVotes: 10}

	_, err := engine.Tally([]any{"not a ballot"}, 2)
	c.Assert(err, qt.IsNotNil)
}
