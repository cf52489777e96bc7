// Package paillier implements textbook Paillier homomorphic encryption
// with a wire format compatible with the reference phe library: public
// keys carry only n, private keys carry the prime factors p and q, and
// ciphertexts serialize as a (ciphertext, exponent) pair. No suitable
// generic Paillier library was found in the dependency corpus (the
// purpose-built Paillier packages available there are wired into
// threshold-ECDSA signing protocols and do not expose this shape), so
// this package is built directly on math/big.
package paillier

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// PublicKey holds n = p*q and the derived values used in every
// encryption: g = n+1 (the standard simplification) and nSquared.
type PublicKey struct {
	N        *big.Int
	G        *big.Int
	NSquared *big.Int
}

// PrivateKey holds the prime factorization of the associated public
// key's n, plus the precomputed Carmichael totient lambda and modular
// inverse mu used during decryption.
type PrivateKey struct {
	PublicKey *PublicKey
	P, Q      *big.Int
	Lambda    *big.Int
	Mu        *big.Int
}

func newPublicKey(n *big.Int) *PublicKey {
	return &PublicKey{
		N:        n,
		G:        new(big.Int).Add(n, big.NewInt(1)),
		NSquared: new(big.Int).Mul(n, n),
	}
}

// GenerateKeyPair samples two random primes of bitLen/2 bits each and
// derives a Paillier key pair with modulus n = p*q of bitLen bits.
func GenerateKeyPair(bitLen int) (*PrivateKey, error) {
	if bitLen < 16 || bitLen%2 != 0 {
		return nil, engerr.New(engerr.InvalidInput, "paillier.GenerateKeyPair", fmt.Errorf("bitLen must be even and >= 16, got %d", bitLen))
	}
	half := bitLen / 2

	for {
		p, err := rand.Prime(rand.Reader, half)
		if err != nil {
			return nil, engerr.New(engerr.InvalidInput, "paillier.GenerateKeyPair", err)
		}
		q, err := rand.Prime(rand.Reader, half)
		if err != nil {
			return nil, engerr.New(engerr.InvalidInput, "paillier.GenerateKeyPair", err)
		}
		if p.Cmp(q) == 0 {
			continue
		}
		return NewPrivateKey(p, q)
	}
}

// NewPrivateKey derives a key pair from known primes p and q.
func NewPrivateKey(p, q *big.Int) (*PrivateKey, error) {
	n := new(big.Int).Mul(p, q)
	pub := newPublicKey(n)

	pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
	qMinus1 := new(big.Int).Sub(q, big.NewInt(1))
	lambda := new(big.Int).Mul(pMinus1, qMinus1)
	lambda.Div(lambda, new(big.Int).GCD(nil, nil, pMinus1, qMinus1))

	mu := lFunction(new(big.Int).Exp(pub.G, lambda, pub.NSquared), n)
	if mu.ModInverse(mu, n) == nil {
		return nil, engerr.New(engerr.InvalidInput, "paillier.NewPrivateKey", fmt.Errorf("g is not invertible mod n^2"))
	}

	return &PrivateKey{
		PublicKey: pub,
		P:         p,
		Q:         q,
		Lambda:    lambda,
		Mu:        mu,
	}, nil
}

// lFunction computes L(x) = (x-1)/n, the standard Paillier helper.
func lFunction(x, n *big.Int) *big.Int {
	l := new(big.Int).Sub(x, big.NewInt(1))
	return l.Div(l, n)
}

// Ciphertext is a Paillier-encrypted integer with its scaling exponent,
// matching the reference library's EncryptedNumber shape.
type Ciphertext struct {
	C        *big.Int
	Exponent int
}

// Encrypt encrypts a non-negative integer value under pk with fresh
// randomness. The exponent is always 0: this engine encrypts exact
// integer vote counts, never the arbitrary-precision fixed-point
// encoding phe uses for floats.
func Encrypt(pk *PublicKey, value *big.Int) (*Ciphertext, error) {
	if pk == nil {
		return nil, engerr.New(engerr.MissingKey, "paillier.Encrypt", nil)
	}

	r, err := rand.Int(rand.Reader, pk.N)
	if err != nil {
		return nil, engerr.New(engerr.InvalidInput, "paillier.Encrypt", err)
	}
	for r.Sign() == 0 {
		r, err = rand.Int(rand.Reader, pk.N)
		if err != nil {
			return nil, engerr.New(engerr.InvalidInput, "paillier.Encrypt", err)
		}
	}

	m := new(big.Int).Mod(value, pk.N)

	// c = g^m * r^n mod n^2, with g = n+1 so g^m mod n^2 == 1 + m*n mod n^2.
	gm := new(big.Int).Mul(m, pk.N)
	gm.Add(gm, big.NewInt(1))
	gm.Mod(gm, pk.NSquared)

	rn := new(big.Int).Exp(r, pk.N, pk.NSquared)

	c := new(big.Int).Mul(gm, rn)
	c.Mod(c, pk.NSquared)

	return &Ciphertext{C: c, Exponent: 0}, nil
}

// Decrypt recovers the plaintext integer encrypted in ct.
func Decrypt(sk *PrivateKey, ct *Ciphertext) (*big.Int, error) {
	if sk == nil {
		return nil, engerr.New(engerr.MissingKey, "paillier.Decrypt", nil)
	}
	pub := sk.PublicKey
	cLambda := new(big.Int).Exp(ct.C, sk.Lambda, pub.NSquared)
	l := lFunction(cLambda, pub.N)
	m := new(big.Int).Mul(l, sk.Mu)
	m.Mod(m, pub.N)
	return m, nil
}

// AddEncrypted homomorphically sums ciphertexts by multiplying them mod
// n^2. All ciphertexts must share exponent 0 and be under the same
// public key; fails on an empty list.
func AddEncrypted(pk *PublicKey, cts []*Ciphertext) (*Ciphertext, error) {
	if len(cts) == 0 {
		return nil, engerr.New(engerr.InvalidInput, "paillier.AddEncrypted", fmt.Errorf("empty ciphertext list"))
	}
	sum := new(big.Int).Set(cts[0].C)
	for _, ct := range cts[1:] {
		if ct.Exponent != cts[0].Exponent {
			return nil, engerr.New(engerr.InvalidInput, "paillier.AddEncrypted", fmt.Errorf("mismatched exponents"))
		}
		sum.Mul(sum, ct.C)
		sum.Mod(sum, pk.NSquared)
	}
	return &Ciphertext{C: sum, Exponent: cts[0].Exponent}, nil
}
