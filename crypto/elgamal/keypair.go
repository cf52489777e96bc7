// Package elgamal implements exponential ElGamal encryption over the
// BabyJubJub curve: key generation, encryption/decryption, additive
// homomorphism, one-hot ballot encoding, and baby-step/giant-step
// discrete-log recovery.
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

// KeyPair holds an ElGamal secret key and its corresponding public key
// point pk = sk*G.
type KeyPair struct {
	SK *big.Int
	PK bjj.Point
}

// GenerateKey samples a uniformly random secret key in [1, n-1] and
// derives the public key.
func GenerateKey() (*KeyPair, error) {
	sk, err := rand.Int(rand.Reader, new(big.Int).Sub(bjj.SubgroupOrder, big.NewInt(1)))
	if err != nil {
		return nil, engerr.New(engerr.InvalidInput, "elgamal.GenerateKey", err)
	}
	sk.Add(sk, big.NewInt(1)) // shift into [1, n-1]
	return FromSK(sk), nil
}

// FromSK deterministically derives a key pair from a known secret key.
func FromSK(sk *big.Int) *KeyPair {
	k := new(big.Int).Mod(sk, bjj.SubgroupOrder)
	return &KeyPair{SK: k, PK: bjj.ScalarBaseMul(k)}
}

// keyPairJSON is the wire shape for KeyPair: sk and pk coordinates as
// decimal strings, per the serialization table.
type keyPairJSON struct {
	SK *types.BigInt    `json:"sk"`
	PK [2]*types.BigInt `json:"pk"`
}

// MarshalJSON encodes sk and pk as decimal strings.
func (kp *KeyPair) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyPairJSON{
		SK: types.NewBigInt(kp.SK),
		PK: [2]*types.BigInt{types.NewBigInt(kp.PK.X), types.NewBigInt(kp.PK.Y)},
	})
}

// UnmarshalJSON decodes a key pair encoded by MarshalJSON.
func (kp *KeyPair) UnmarshalJSON(data []byte) error {
	var aux keyPairJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return engerr.New(engerr.MalformedCiphertext, "elgamal.KeyPair.UnmarshalJSON", err)
	}
	if aux.SK == nil || aux.PK[0] == nil || aux.PK[1] == nil {
		return engerr.New(engerr.InvalidInput, "elgamal.KeyPair.UnmarshalJSON", fmt.Errorf("missing field"))
	}
	kp.SK = aux.SK.MathBigInt()
	kp.PK = bjj.NewPoint(aux.PK[0].MathBigInt(), aux.PK[1].MathBigInt())
	if !bjj.IsOnCurve(kp.PK) {
		return engerr.New(engerr.NotOnCurve, "elgamal.KeyPair.UnmarshalJSON", nil)
	}
	return nil
}
