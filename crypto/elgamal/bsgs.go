package elgamal

import (
	"fmt"
	"math/big"

	"github.com/vocdoni-labs/ballotcore/crypto/bjj"
	"github.com/vocdoni-labs/ballotcore/crypto/internal/engerr"
)

// pointKey is a hashable representative of a curve point, used to index
// the baby-step table.
type pointKey struct{ x, y string }

func keyOf(p bjj.Point) pointKey {
	return pointKey{x: p.X.String(), y: p.Y.String()}
}

// SolveDLog recovers m in [0, maxValue] such that target == m*G, using
// baby-step/giant-step. It returns engerr.ErrDLogOutOfRange if no such m
// exists within the bound.
//
// The tally never needs to invert an unbounded discrete log: maxValue is
// always the known upper bound on a count (the number of ballots cast,
// or the electorate size), so the O(sqrt(maxValue)) table fits in
// memory for any realistic election.
func SolveDLog(target bjj.Point, maxValue uint64) (*big.Int, error) {
	if maxValue == 0 {
		if target.Equal(bjj.Identity) {
			return big.NewInt(0), nil
		}
		return nil, engerr.New(engerr.DLogOutOfRange, "elgamal.SolveDLog", fmt.Errorf("target is not the identity and maxValue is 0"))
	}

	m := isqrtCeil(maxValue)
	table := make(map[pointKey]uint64, m+1)

	// Baby steps: j*G for j in [0, m].
	acc := bjj.Identity
	for j := uint64(0); j <= m; j++ {
		if _, exists := table[keyOf(acc)]; !exists {
			table[keyOf(acc)] = j
		}
		acc = bjj.Add(acc, bjj.Generator)
	}

	// Giant steps: target - i*m*G for i in [0, m].
	mG := bjj.ScalarMul(new(big.Int).SetUint64(m), bjj.Generator)
	negMG := bjj.Neg(mG)

	gamma := target
	for i := uint64(0); i <= m; i++ {
		if j, ok := table[keyOf(gamma)]; ok {
			candidate := i*m + j
			if candidate <= maxValue {
				return new(big.Int).SetUint64(candidate), nil
			}
		}
		gamma = bjj.Add(gamma, negMG)
	}

	return nil, engerr.New(engerr.DLogOutOfRange, "elgamal.SolveDLog",
		fmt.Errorf("no discrete log found in [0, %d]", maxValue))
}

// isqrtCeil returns ceil(sqrt(n)) for n >= 0, computed with big.Int to
// avoid float64 precision loss for large bounds.
func isqrtCeil(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := new(big.Int).SetUint64(n)
	root := new(big.Int).Sqrt(x)
	sq := new(big.Int).Mul(root, root)
	if sq.Cmp(x) != 0 {
		root.Add(root, big.NewInt(1))
	}
	return root.Uint64()
}
