package elgamal

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/vocdoni-labs/ballotcore/crypto/bjj"
	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
	"github.com/vocdoni-labs/ballotcore/types"
)

// Ciphertext is an exponential ElGamal ciphertext (C1, C2) with
// C1 = r*G, C2 = m*G + r*pk.
type Ciphertext struct {
	C1, C2 bjj.Point
}

// RandR samples a random scalar in [1, n-1] suitable for use as
// encryption randomness.
func RandR() (*big.Int, error) {
	r, err := rand.Int(rand.Reader, new(big.Int).Sub(bjj.SubgroupOrder, big.NewInt(1)))
	if err != nil {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.RandR", err)
	}
	r.Add(r, big.NewInt(1))
	return r, nil
}

// Encrypt encrypts message m under the given public key, sampling fresh
// randomness. Use EncryptWithR for deterministic encryption (tests,
// circuit witnesses).
func Encrypt(pk bjj.Point, m *big.Int) (*Ciphertext, error) {
	r, err := RandR()
	if err != nil {
		return nil, err
	}
	return EncryptWithR(pk, m, r)
}

// EncryptWithR encrypts message m under pk using the caller-supplied
// randomness r. Message is reduced modulo the subgroup order before
// encoding.
func EncryptWithR(pk bjj.Point, m, r *big.Int) (*Ciphertext, error) {
	if !bjj.IsOnCurve(pk) {
		return nil, engerr.New(engerr.NotOnCurve, "elgamal.EncryptWithR", nil)
	}
	msg := new(big.Int).Mod(m, bjj.SubgroupOrder)

	c1 := bjj.ScalarBaseMul(r)
	rPK := bjj.ScalarMul(r, pk)
	mG := bjj.ScalarBaseMul(msg)
	c2 := bjj.Add(mG, rPK)

	return &Ciphertext{C1: c1, C2: c2}, nil
}

// DecryptToPoint returns M = C2 - sk*C1, the message point m*G, without
// solving the discrete log.
func (ct *Ciphertext) DecryptToPoint(sk *big.Int) bjj.Point {
	skC1 := bjj.ScalarMul(sk, ct.C1)
	return bjj.Sub(ct.C2, skC1)
}

// Decrypt recovers the integer message m via baby-step/giant-step,
// bounded by maxValue.
func Decrypt(ct *Ciphertext, sk *big.Int, maxValue uint64) (*big.Int, error) {
	m := ct.DecryptToPoint(sk)
	return SolveDLog(m, maxValue)
}

// HomomorphicAdd folds a list of ciphertexts component-wise:
// sum = (sum(C1_i), sum(C2_i)). Fails on an empty list.
func HomomorphicAdd(cts []*Ciphertext) (*Ciphertext, error) {
	if len(cts) == 0 {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.HomomorphicAdd", fmt.Errorf("empty ciphertext list"))
	}
	c1 := cts[0].C1
	c2 := cts[0].C2
	for _, ct := range cts[1:] {
		c1 = bjj.Add(c1, ct.C1)
		c2 = bjj.Add(c2, ct.C2)
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// ciphertextJSON is the flat wire shape: [C1.x, C1.y, C2.x, C2.y] as
// decimal strings, per the serialization table.
type ciphertextJSON [4]*types.BigInt

// Flat returns the ciphertext as the four decimal-string coordinates
// [C1.x, C1.y, C2.x, C2.y].
func (ct *Ciphertext) Flat() [4]*types.BigInt {
	return [4]*types.BigInt{
		types.NewBigInt(ct.C1.X), types.NewBigInt(ct.C1.Y),
		types.NewBigInt(ct.C2.X), types.NewBigInt(ct.C2.Y),
	}
}

// MarshalJSON encodes the ciphertext as the flat ordered list of decimal
// strings [C1.x, C1.y, C2.x, C2.y].
func (ct *Ciphertext) MarshalJSON() ([]byte, error) {
	flat := ct.Flat()
	return json.Marshal(ciphertextJSON(flat))
}

// UnmarshalJSON decodes a ciphertext encoded by MarshalJSON, verifying
// both points lie on the curve.
func (ct *Ciphertext) UnmarshalJSON(data []byte) error {
	var aux ciphertextJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return engerr.New(engerr.MalformedCiphertext, "elgamal.Ciphertext.UnmarshalJSON", err)
	}
	for _, v := range aux {
		if v == nil {
			return engerr.New(engerr.MalformedCiphertext, "elgamal.Ciphertext.UnmarshalJSON", fmt.Errorf("missing coordinate"))
		}
	}
	c1 := bjj.NewPoint(aux[0].MathBigInt(), aux[1].MathBigInt())
	c2 := bjj.NewPoint(aux[2].MathBigInt(), aux[3].MathBigInt())
	if !bjj.IsOnCurve(c1) || !bjj.IsOnCurve(c2) {
		return engerr.New(engerr.NotOnCurve, "elgamal.Ciphertext.UnmarshalJSON", nil)
	}
	ct.C1, ct.C2 = c1, c2
	return nil
}
