package scalarmult

import (
	"github.com/vault-crypto/ecgroup/ecerr"
	"github.com/vault-crypto/ecgroup/elliptic"
)

// Multiples returns the table [0·Q, 1·Q, ..., (size-1)·Q] in Jacobian
// coordinates, built by alternating doublings and additions: each even entry
// t[2i] is the double of the already-computed t[i], and t[2i+1] = t[2i] + Q.
// size must be at least 2.
func Multiples(ec *elliptic.CurveGroup, q elliptic.JacobianPoint, size uint64) ([]elliptic.JacobianPoint, error) {
	if size < 2 {
		return nil, ecerr.New(ecerr.InvalidInput, "multiples table size must be at least 2")
	}

	k := size / 2
	odd := size%2 == 1

	t := make([]elliptic.JacobianPoint, 2, size)
	t[0] = elliptic.InfJacobianPoint()
	t[1] = q
	for i := uint64(3); i < 2*k; i += 2 {
		t = append(t, ec.DoubleJac(t[(i-1)/2]))
		t = append(t, ec.AddJac(t[len(t)-1], q))
	}
	if odd {
		t = append(t, ec.DoubleJac(t[(size-1)/2]))
	}
	return t, nil
}
