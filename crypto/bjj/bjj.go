// Package bjj implements field and point arithmetic for the BabyJubJub
// twisted Edwards curve over the BN254 scalar field: the modular
// inverse, unified point addition, negation, scalar multiplication, and
// curve-membership check that the rest of the engine builds on.
package bjj

import "math/big"

// FieldPrime is the BN254 scalar field prime, also the base field of
// BabyJubJub.
var FieldPrime, _ = new(big.Int).SetString(
	"21888242871839275222246405745257275088548364400416034343698204186575808495617", 10)

// Twisted Edwards curve parameters: a*x^2 + y^2 = 1 + d*x^2*y^2.
var (
	A = big.NewInt(168700)
	D = big.NewInt(168696)
)

// SubgroupOrder is the order of the generator point G.
var SubgroupOrder, _ = new(big.Int).SetString(
	"2736030358979909402780800718157159386076813972158567259200215660948447373041", 10)

// Generator is the fixed BabyJubJub Base8 point (circomlib's generator).
var Generator = Point{
	X: bigFromDecimal("5299619240641551281634865583518297030282874472190772894086521144482721001553"),
	Y: bigFromDecimal("16950150798460657717958625567821834550301663161624707787222815936182638968203"),
}

// Identity is the neutral element of the twisted Edwards group law.
var Identity = Point{X: big.NewInt(0), Y: big.NewInt(1)}

func bigFromDecimal(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bjj: invalid decimal constant " + s)
	}
	return v
}

// Point is an affine point on the BabyJubJub curve, or the identity.
// Zero value is not a valid point; use Identity or Generator.
type Point struct {
	X, Y *big.Int
}

// NewPoint constructs a Point from two field coordinates, reducing them
// modulo FieldPrime.
func NewPoint(x, y *big.Int) Point {
	return Point{
		X: new(big.Int).Mod(x, FieldPrime),
		Y: new(big.Int).Mod(y, FieldPrime),
	}
}

// Equal reports whether p and q have identical field representatives.
func (p Point) Equal(q Point) bool {
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// ModInverse computes the modular inverse of a mod p using the extended
// Euclidean algorithm. It returns (nil, false) if a is zero or a and p
// are not coprime.
func ModInverse(a, p *big.Int) (*big.Int, bool) {
	if a.Sign() == 0 {
		return nil, false
	}
	inv := new(big.Int).ModInverse(new(big.Int).Mod(a, p), p)
	if inv == nil {
		return nil, false
	}
	return inv, true
}

// Add computes the twisted-Edwards unified addition of p and q:
//
//	x3 = (x1*y2 + y1*x2) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 - a*x1*x2) / (1 - d*x1*x2*y1*y2)
//
// The unified formula handles doubling (p == q) with no branch. It
// panics if a denominator is zero, which cannot happen for points in
// the prime-order subgroup — such a zero would indicate a caller-
// supplied point outside that subgroup, and the engine must surface
// that rather than silently corrupt the result.
func Add(p, q Point) Point {
	fp := FieldPrime

	x1y2 := new(big.Int).Mul(p.X, q.Y)
	y1x2 := new(big.Int).Mul(p.Y, q.X)
	y1y2 := new(big.Int).Mul(p.Y, q.Y)
	x1x2 := new(big.Int).Mul(p.X, q.X)

	dx1x2y1y2 := new(big.Int).Mul(D, x1x2)
	dx1x2y1y2.Mod(dx1x2y1y2, fp)
	dx1x2y1y2.Mul(dx1x2y1y2, y1y2)
	dx1x2y1y2.Mod(dx1x2y1y2, fp)

	x3Num := new(big.Int).Add(x1y2, y1x2)
	x3Num.Mod(x3Num, fp)
	x3Den := new(big.Int).Add(big.NewInt(1), dx1x2y1y2)
	x3Den.Mod(x3Den, fp)
	x3DenInv, ok := ModInverse(x3Den, fp)
	if !ok {
		panic("bjj: zero denominator in point addition (point outside prime-order subgroup)")
	}
	x3 := new(big.Int).Mul(x3Num, x3DenInv)
	x3.Mod(x3, fp)

	ax1x2 := new(big.Int).Mul(A, x1x2)
	ax1x2.Mod(ax1x2, fp)
	y3Num := new(big.Int).Sub(y1y2, ax1x2)
	y3Num.Mod(y3Num, fp)
	y3Den := new(big.Int).Sub(big.NewInt(1), dx1x2y1y2)
	y3Den.Mod(y3Den, fp)
	y3DenInv, ok := ModInverse(y3Den, fp)
	if !ok {
		panic("bjj: zero denominator in point addition (point outside prime-order subgroup)")
	}
	y3 := new(big.Int).Mul(y3Num, y3DenInv)
	y3.Mod(y3, fp)

	return Point{X: x3, Y: y3}
}

// Neg negates a point: -(x, y) = (p - x mod p, y).
func Neg(p Point) Point {
	if p.X.Sign() == 0 {
		return Point{X: big.NewInt(0), Y: new(big.Int).Set(p.Y)}
	}
	return Point{X: new(big.Int).Sub(FieldPrime, p.X), Y: new(big.Int).Set(p.Y)}
}

// Sub computes p - q = p + (-q).
func Sub(p, q Point) Point {
	return Add(p, Neg(q))
}

// ScalarMul computes scalar*p using double-and-add from the LSB to the
// MSB of scalar, after reducing scalar modulo SubgroupOrder. A zero
// scalar yields Identity.
func ScalarMul(scalar *big.Int, p Point) Point {
	k := new(big.Int).Mod(scalar, SubgroupOrder)
	if k.Sign() == 0 {
		return Identity
	}

	result := Identity
	current := p
	for k.Sign() > 0 {
		if k.Bit(0) == 1 {
			result = Add(result, current)
		}
		current = Add(current, current)
		k.Rsh(k, 1)
	}
	return result
}

// ScalarBaseMul computes scalar*Generator.
func ScalarBaseMul(scalar *big.Int) Point {
	return ScalarMul(scalar, Generator)
}

// IsOnCurve evaluates a*x^2 + y^2 == 1 + d*x^2*y^2 mod FieldPrime.
func IsOnCurve(p Point) bool {
	fp := FieldPrime
	x2 := new(big.Int).Mul(p.X, p.X)
	x2.Mod(x2, fp)
	y2 := new(big.Int).Mul(p.Y, p.Y)
	y2.Mod(y2, fp)

	lhs := new(big.Int).Mul(A, x2)
	lhs.Add(lhs, y2)
	lhs.Mod(lhs, fp)

	rhs := new(big.Int).Mul(D, x2)
	rhs.Mod(rhs, fp)
	rhs.Mul(rhs, y2)
	rhs.Add(rhs, big.NewInt(1))
	rhs.Mod(rhs, fp)

	return lhs.Cmp(rhs) == 0
}
