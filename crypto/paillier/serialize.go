package paillier

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
	"github.com/vocdoni-labs/ballotcore/types"
)

// publicKeyJSON is the phe-compatible public key wire shape: just n.
type publicKeyJSON struct {
	N *types.BigInt `json:"n"`
}

// SerializePublicKey encodes pk as {"n": "<decimal>"}.
func SerializePublicKey(pk *PublicKey) ([]byte, error) {
	return json.Marshal(publicKeyJSON{N: types.NewBigInt(pk.N)})
}

// DeserializePublicKey decodes a public key produced by SerializePublicKey.
func DeserializePublicKey(data []byte) (*PublicKey, error) {
	var aux publicKeyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, engerr.New(engerr.MalformedCiphertext, "paillier.DeserializePublicKey", err)
	}
	if aux.N == nil {
		return nil, engerr.New(engerr.InvalidInput, "paillier.DeserializePublicKey", fmt.Errorf("missing n"))
	}
	return newPublicKey(aux.N.MathBigInt()), nil
}

// privateKeyJSON is the phe-compatible private key wire shape: the
// prime factors p and q. The public modulus n = p*q is not repeated.
type privateKeyJSON struct {
	P *types.BigInt `json:"p"`
	Q *types.BigInt `json:"q"`
}

// SerializePrivateKey encodes sk's prime factors as {"p": ..., "q": ...}.
func SerializePrivateKey(sk *PrivateKey) ([]byte, error) {
	return json.Marshal(privateKeyJSON{P: types.NewBigInt(sk.P), Q: types.NewBigInt(sk.Q)})
}

// DeserializePrivateKey reconstructs a private key from its serialized
// prime factors.
func DeserializePrivateKey(data []byte) (*PrivateKey, error) {
	var aux privateKeyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return nil, engerr.New(engerr.MalformedCiphertext, "paillier.DeserializePrivateKey", err)
	}
	if aux.P == nil || aux.Q == nil {
		return nil, engerr.New(engerr.InvalidInput, "paillier.DeserializePrivateKey", fmt.Errorf("missing p or q"))
	}
	sk, err := NewPrivateKey(aux.P.MathBigInt(), aux.Q.MathBigInt())
	if err != nil {
		return nil, err
	}
	return sk, nil
}

// ciphertextJSON mirrors phe's EncryptedNumber serialization: the raw
// ciphertext integer and its exponent.
type ciphertextJSON struct {
	Ciphertext *types.BigInt `json:"ciphertext"`
	Exponent   int           `json:"exponent"`
}

// SerializeEncrypted base64-encodes a JSON {ciphertext, exponent}
// object, matching the reference library's on-the-wire representation.
func SerializeEncrypted(ct *Ciphertext) (string, error) {
	raw, err := json.Marshal(ciphertextJSON{Ciphertext: types.NewBigInt(ct.C), Exponent: ct.Exponent})
	if err != nil {
		return "", engerr.New(engerr.MalformedCiphertext, "paillier.SerializeEncrypted", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DeserializeEncrypted decodes a ciphertext produced by SerializeEncrypted.
func DeserializeEncrypted(s string) (*Ciphertext, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, engerr.New(engerr.MalformedCiphertext, "paillier.DeserializeEncrypted", err)
	}
	var aux ciphertextJSON
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, engerr.New(engerr.MalformedCiphertext, "paillier.DeserializeEncrypted", err)
	}
	if aux.Ciphertext == nil {
		return nil, engerr.New(engerr.InvalidInput, "paillier.DeserializeEncrypted", fmt.Errorf("missing ciphertext"))
	}
	return &Ciphertext{C: aux.Ciphertext.MathBigInt(), Exponent: aux.Exponent}, nil
}

// SerializeVote serializes a one-hot encrypted vote vector.
func SerializeVote(vote []*Ciphertext) ([]string, error) {
	out := make([]string, len(vote))
	for i, ct := range vote {
		s, err := SerializeEncrypted(ct)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// DeserializeVote decodes a one-hot encrypted vote vector.
func DeserializeVote(serialized []string) ([]*Ciphertext, error) {
	out := make([]*Ciphertext, len(serialized))
	for i, s := range serialized {
		ct, err := DeserializeEncrypted(s)
		if err != nil {
			return nil, err
		}
		out[i] = ct
	}
	return out, nil
}
