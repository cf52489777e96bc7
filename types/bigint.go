// Package types holds small value types shared across the crypto engine,
// so every package emits the same wire representation for big integers.
package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a big.Int that marshals to/from JSON as a decimal string and
// to/from CBOR as its underlying bytes, matching the serialization the
// rest of the engine expects for curve coordinates and key material.
type BigInt big.Int

// NewBigInt wraps a *big.Int as a *BigInt. A nil input yields a BigInt
// holding zero.
func NewBigInt(v *big.Int) *BigInt {
	if v == nil {
		return (*BigInt)(new(big.Int))
	}
	return (*BigInt)(new(big.Int).Set(v))
}

// MathBigInt returns the underlying *big.Int.
func (b *BigInt) MathBigInt() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return (*big.Int)(b)
}

// String returns the decimal representation.
func (b *BigInt) String() string {
	return b.MathBigInt().String()
}

// MarshalJSON encodes the value as a JSON string of decimal digits.
func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, (*big.Int)(&b).String())), nil
}

// UnmarshalJSON decodes a JSON string of decimal digits.
func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("types: invalid decimal big integer %q", s)
	}
	*b = BigInt(*z)
	return nil
}

// MarshalCBOR encodes the value as CBOR bytes of its big-endian magnitude.
func (b BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal((*big.Int)(&b).Bytes())
}

// UnmarshalCBOR decodes CBOR bytes produced by MarshalCBOR.
func (b *BigInt) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	z := new(big.Int).SetBytes(raw)
	*b = BigInt(*z)
	return nil
}
