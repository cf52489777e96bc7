package elgamal

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/vocdoni-labs/ballotcore/crypto/bjj"
	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(424242))

	for _, m := range []int64{0, 1, 7, 100} {
		ct, err := Encrypt(kp.PK, big.NewInt(m))
		c.Assert(err, qt.IsNil)

		got, err := Decrypt(ct, kp.SK, 1000)
		c.Assert(err, qt.IsNil)
		c.Assert(got.Int64(), qt.Equals, m)
	}
}

func TestEncryptRejectsOffCurvePK(t *testing.T) {
	c := qt.New(t)
	bad := bjj.Point{X: big.NewInt(1), Y: big.NewInt(1)}
	_, err := Encrypt(bad, big.NewInt(1))
	c.Assert(err, qt.ErrorIs, engerr.ErrNotOnCurve)
}

func TestHomomorphicAddMatchesSumOfPlaintexts(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(13))

	values := []int64{3, 5, 9}
	cts := make([]*Ciphertext, len(values))
	for i, v := range values {
		ct, err := Encrypt(kp.PK, big.NewInt(v))
		c.Assert(err, qt.IsNil)
		cts[i] = ct
	}

	sum, err := HomomorphicAdd(cts)
	c.Assert(err, qt.IsNil)

	got, err := Decrypt(sum, kp.SK, 100)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Int64(), qt.Equals, int64(17))
}

func TestHomomorphicAddRejectsEmptyList(t *testing.T) {
	c := qt.New(t)
	_, err := HomomorphicAdd(nil)
	c.Assert(err, qt.IsNotNil)
}

func TestSolveDLogOutOfRange(t *testing.T) {
	c := qt.New(t)
	target := bjj.ScalarBaseMul(big.NewInt(500))
	_, err := SolveDLog(target, 10)
	c.Assert(err, qt.IsNotNil)
}

func TestSolveDLogIdentityIsZero(t *testing.T) {
	c := qt.New(t)
	got, err := SolveDLog(bjj.Identity, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Int64(), qt.Equals, int64(0))
}

func TestOneHotEncodingHasExactlyOneVote(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(7))

	ballot, err := EncryptVoteOneHot(2, 4, kp.PK, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(len(ballot), qt.Equals, 4)

	for i, ct := range ballot {
		m, err := Decrypt(ct, kp.SK, 1)
		c.Assert(err, qt.IsNil)
		if i == 2 {
			c.Assert(m.Int64(), qt.Equals, int64(1))
		} else {
			c.Assert(m.Int64(), qt.Equals, int64(0))
		}
	}
}

func TestOneHotRejectsOutOfRangeCandidate(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(7))
	_, err := EncryptVoteOneHot(5, 4, kp.PK, nil)
	c.Assert(err, qt.IsNotNil)
}

func TestHomomorphicTallyOfOneHotBallots(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(909))

	numCandidates := 3
	ballots := [][]int{{0}, {0}, {1}, {2}, {1}, {1}}
	wantTally := []int64{2, 3, 1}

	var votes [][]*Ciphertext
	for _, b := range ballots {
		ct, err := EncryptVoteOneHot(b[0], numCandidates, kp.PK, nil)
		c.Assert(err, qt.IsNil)
		votes = append(votes, ct)
	}

	results, err := HomomorphicTally(votes, numCandidates, kp.SK, uint64(len(ballots)))
	c.Assert(err, qt.IsNil)
	for i, want := range wantTally {
		c.Assert(results[i].Int64(), qt.Equals, want)
	}
}

func TestKeyPairJSONRoundTrip(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(55555))

	data, err := json.Marshal(kp)
	c.Assert(err, qt.IsNil)

	var got KeyPair
	c.Assert(json.Unmarshal(data, &got), qt.IsNil)
	c.Assert(got.SK.Cmp(kp.SK), qt.Equals, 0)
	c.Assert(got.PK.Equal(kp.PK), qt.IsTrue)
}

func TestCiphertextJSONRoundTrip(t *testing.T) {
	c := qt.New(t)
	kp := FromSK(big.NewInt(3))
	ct, err := Encrypt(kp.PK, big.NewInt(42))
	c.Assert(err, qt.IsNil)

	data, err := json.Marshal(ct)
	c.Assert(err, qt.IsNil)

	var got Ciphertext
	c.Assert(json.Unmarshal(data, &got), qt.IsNil)
	c.Assert(got.C1.Equal(ct.C1), qt.IsTrue)
	c.Assert(got.C2.Equal(ct.C2), qt.IsTrue)
}

func TestCiphertextUnmarshalRejectsOffCurve(t *testing.T) {
	c := qt.New(t)
	data := []byte(`["1","1","1","1"]`)
	var got Ciphertext
	c.Assert(json.Unmarshal(data, &got), qt.IsNotNil)
}
