// Package scalarmult implements scalar multiplication (L3) on top of the
// elliptic package's group arithmetic: five single-scalar algorithms
// trading performance for side-channel structure, double-scalar
// multiplication (Shamir-Strauss), multi-scalar multiplication
// (Bos-Coster), and the precomputation tables with memoization that back
// the windowed variants.
//
// Scalars are *safenum.Nat, which cannot represent negative values, so the
// "m ≥ 0" precondition from the reference algorithm is enforced by the
// type itself rather than by a runtime check. Callers are responsible for
// reducing scalars mod the subgroup order n before calling in, as with the
// reference implementation.
package scalarmult

import (
	"github.com/cronokirby/safenum"
	"github.com/vault-crypto/ecgroup/elliptic"
	"github.com/vault-crypto/ecgroup/field"
)

// MultAff computes m·Q using right-to-left binary double-and-add in
// affine coordinates. R[0] is the running result, R[1] = R[0] + Q is an
// ancillary slot always recomputed and committed into R[bit] by index,
// rather than by branching on the bit.
func MultAff(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point) elliptic.Point {
	digits := field.ToBase(m, 2)
	// digits is big-endian; walk it least-significant-first.
	bit := func(i int) uint64 { return digits[len(digits)-1-i] }

	r := [2]elliptic.Point{elliptic.InfPoint(), q}
	r[0] = r[bit(0)]
	base := q
	for i := 1; i < len(digits); i++ {
		base = ec.DoubleAff(base)
		r[1] = ec.AddAff(r[0], base)
		r[0] = r[bit(i)]
	}
	return r[0]
}

// MultJac is MultAff's Jacobian-coordinate twin.
func MultJac(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.JacobianPoint) elliptic.JacobianPoint {
	digits := field.ToBase(m, 2)
	bit := func(i int) uint64 { return digits[len(digits)-1-i] }

	r := [2]elliptic.JacobianPoint{elliptic.InfJacobianPoint(), q}
	r[0] = r[bit(0)]
	base := q
	for i := 1; i < len(digits); i++ {
		base = ec.DoubleJac(base)
		r[1] = ec.AddJac(r[0], base)
		r[0] = r[bit(i)]
	}
	return r[0]
}

// MultMontLadder computes m·Q with a Montgomery ladder: left-to-right,
// bit-oblivious at the formula level (every step performs one add and one
// double regardless of the bit's value; only which register receives which
// result depends on the bit).
func MultMontLadder(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point) elliptic.Point {
	digits := field.ToBase(m, 2) // big-endian bits, MSB first

	r := [2]elliptic.JacobianPoint{elliptic.InfJacobianPoint(), elliptic.JacFromAff(q)}
	for _, d := range digits {
		b := d
		nb := uint64(1) - b
		r[nb] = ec.AddJac(r[b], r[nb])
		r[b] = ec.DoubleJac(r[b])
	}
	return ec.AffFromJac(r[0])
}

// MultBase3 computes m·Q via ternary "triple-and-add": m is decomposed in
// base 3, the running result is tripled (double+add) then one of
// {infinity, Q, 2Q} is added per trit. Not used by the default dispatcher;
// kept because it is illustrative and its agreement with the other
// algorithms is a property test.
func MultBase3(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point) elliptic.Point {
	qJ := elliptic.JacFromAff(q)
	t := [3]elliptic.JacobianPoint{elliptic.InfJacobianPoint(), qJ, ec.DoubleJac(qJ)}

	digits := field.ToBase(m, 3)
	r := t[digits[0]]
	for _, d := range digits[1:] {
		r2 := ec.DoubleJac(r)
		r3 := ec.AddJac(r2, r)
		r = ec.AddJac(r3, t[d])
	}
	return ec.AffFromJac(r)
}

// MultFixedWindow computes m·Q using a fixed w-bit window, left to right:
// m is decomposed in base 2^w, the table T = [0·Q, ..., (2^w-1)·Q] is
// precomputed (or taken from the memoized cache when cached is true), and
// each subsequent digit costs w doublings plus one addition.
func MultFixedWindow(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point, w uint, cached bool) (elliptic.Point, error) {
	var t []elliptic.JacobianPoint
	if cached {
		t = CachedMultiples(ec, q)
	} else {
		var err error
		t, err = Multiples(ec, elliptic.JacFromAff(q), uint64(1)<<w)
		if err != nil {
			return elliptic.Point{}, err
		}
	}

	digits := field.ToBase(m, 1<<w)
	r := t[digits[0]]
	for _, d := range digits[1:] {
		for i := uint(0); i < w; i++ {
			r = ec.DoubleJac(r)
		}
		r = ec.AddJac(r, t[d])
	}
	return ec.AffFromJac(r), nil
}

// MultFixedWindowCached computes m·Q using a fixed w-bit window with a
// per-window-position table, so the hot loop is pure additions: no
// doublings are needed once the table is built.
func MultFixedWindowCached(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point, w uint) elliptic.Point {
	t := CachedMultiplesFixWindow(ec, q, w)
	digits := field.ToBase(m, 1<<w)

	k := len(digits) - 1
	r := t[k][digits[0]]
	for i := 1; i < len(digits); i++ {
		k--
		r = ec.AddJac(r, t[k][digits[i]])
	}
	return ec.AffFromJac(r)
}

// Mult is the default scalar multiplication: fixed-window with w=4.
func Mult(ec *elliptic.CurveGroup, m *safenum.Nat, q elliptic.Point) (elliptic.Point, error) {
	return MultFixedWindow(ec, m, q, 4, false)
}
