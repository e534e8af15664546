// Package elliptic implements group arithmetic (L2) for short-form
// Weierstrass curves y² = x³ + a·x + b over a prime field Fp: curve
// parameter validation, affine and Jacobian point representations,
// addition/doubling/negation, on-curve checks, and y-coordinate recovery
// with symmetry-breaking variants.
//
// This package operates, internally, much like the standard library's own
// crypto/elliptic: for a given affine (x, y), the Jacobian coordinates are
// (X, Y, Z) with x = X/Z², y = Y/Z³, and Z = 0 denotes the point at
// infinity. Unlike crypto/elliptic, the curve constant a is not fixed to
// -3: this package is meant to back arbitrary short-Weierstrass curves,
// from 13-element toy curves up to the 521-bit NIST/Brainpool/SEC curves.
//
// Field elements and curve parameters are represented as *safenum.Nat
// reduced against a *safenum.Modulus, matching the teacher package's
// representation for the same arithmetic.
package elliptic

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/safenum"
	"github.com/vault-crypto/ecgroup/ecerr"
	"github.com/vault-crypto/ecgroup/field"
)

// Point is an affine curve point. The distinguished point at infinity is
// represented as (0, 0): no finite on-curve point has y = 0, because that
// would require x³+ax+b to have a rational root, which does not happen for
// the prime-order subgroups this package is meant to back.
type Point struct {
	X, Y *safenum.Nat
}

// JacobianPoint is the projective (X, Y, Z) representation of the affine
// point (X/Z², Y/Z³) when Z ≠ 0. Any triple with Z = 0 denotes infinity.
type JacobianPoint struct {
	X, Y, Z *safenum.Nat
}

// InfPoint returns the affine point at infinity, (0, 0).
func InfPoint() Point {
	return Point{X: new(safenum.Nat), Y: new(safenum.Nat)}
}

// InfJacobianPoint returns a Jacobian point at infinity, (0, 0, 0).
func InfJacobianPoint() JacobianPoint {
	return JacobianPoint{X: new(safenum.Nat), Y: new(safenum.Nat), Z: new(safenum.Nat)}
}

// CurveGroup carries the immutable (p, a, b) parameters of a short
// Weierstrass curve, validated at construction time. It does not carry a
// generator or subgroup order — see the curves package for that.
type CurveGroup struct {
	P *safenum.Modulus
	A *safenum.Nat
	B *safenum.Nat

	// PSize is ceil(bitlen(p)/8), the field's byte length.
	PSize int
	// PIsThreeModFour records whether p ≡ 3 (mod 4), required for
	// YQuadraticResidue.
	PIsThreeModFour bool
}

func natU64(u uint64) *safenum.Nat {
	return new(safenum.Nat).SetUint64(u)
}

func bigFromNat(n *safenum.Nat) *big.Int {
	return new(big.Int).SetBytes(n.Bytes())
}

// NewCurveGroup validates (p, a, b) per SEC 1 v.2 §3.1.1.2.1: p must pass a
// Fermat base-2 primality test, a and b must lie in [0, p), and the
// discriminant 4a³+27b² must be nonzero mod p.
func NewCurveGroup(p, a, b *safenum.Nat) (*CurveGroup, error) {
	pBig := bigFromNat(p)
	if pBig.Cmp(big.NewInt(2)) < 0 || pBig.Bit(0) == 0 {
		return nil, ecerr.Newf(ecerr.InvalidParameter, "p is not prime: %s", ecerr.FormatBig(pBig))
	}
	exp := new(big.Int).Sub(pBig, big.NewInt(1))
	if new(big.Int).Exp(big.NewInt(2), exp, pBig).Cmp(big.NewInt(1)) != 0 {
		return nil, ecerr.Newf(ecerr.InvalidParameter, "p is not prime: %s", ecerr.FormatBig(pBig))
	}

	modulus := safenum.ModulusFromNat(*p)

	aBig := bigFromNat(a)
	if aBig.Cmp(pBig) >= 0 {
		return nil, ecerr.Newf(ecerr.InvalidParameter, "p <= a: %s <= %s", ecerr.FormatBig(pBig), ecerr.FormatBig(aBig))
	}
	bBig := bigFromNat(b)
	if bBig.Cmp(pBig) >= 0 {
		return nil, ecerr.Newf(ecerr.InvalidParameter, "p <= b: %s <= %s", ecerr.FormatBig(pBig), ecerr.FormatBig(bBig))
	}

	disc := new(big.Int).Mul(aBig, aBig)
	disc.Mul(disc, aBig)
	disc.Mul(disc, big.NewInt(4))
	bSq := new(big.Int).Mul(bBig, bBig)
	bSq.Mul(bSq, big.NewInt(27))
	disc.Add(disc, bSq)
	disc.Mod(disc, pBig)
	if disc.Sign() == 0 {
		return nil, ecerr.New(ecerr.InvalidParameter, "zero discriminant")
	}

	psize := (modulus.BitLen() + 7) / 8
	pMod4 := new(big.Int).Mod(pBig, big.NewInt(4))

	return &CurveGroup{
		P:               modulus,
		A:               a,
		B:               b,
		PSize:           psize,
		PIsThreeModFour: pMod4.Cmp(big.NewInt(3)) == 0,
	}, nil
}

func modAdd(a, b *safenum.Nat, p *safenum.Modulus) *safenum.Nat {
	return new(safenum.Nat).ModAdd(a, b, p)
}

func modSub(a, b *safenum.Nat, p *safenum.Modulus) *safenum.Nat {
	return new(safenum.Nat).ModSub(a, b, p)
}

func modMul(a, b *safenum.Nat, p *safenum.Modulus) *safenum.Nat {
	return new(safenum.Nat).ModMul(a, b, p)
}

func natEqMod(a, b *safenum.Nat, p *safenum.Modulus) bool {
	return modSub(a, b, p).EqZero()
}

func inRange(n *safenum.Nat, p *safenum.Modulus) bool {
	return n.CmpMod(p) < 0
}

// polynomial returns x³ + a·x + b mod p.
func (cg *CurveGroup) polynomial(x *safenum.Nat) *safenum.Nat {
	x2 := modMul(x, x, cg.P)
	x3 := modMul(x2, x, cg.P)
	ax := modMul(cg.A, x, cg.P)
	return modAdd(modAdd(x3, ax, cg.P), cg.B, cg.P)
}

// IsOnCurve reports whether P lies on the curve. The point at infinity,
// (0, 0), is accepted.
func (cg *CurveGroup) IsOnCurve(p Point) (bool, error) {
	if !inRange(p.X, cg.P) {
		return false, ecerr.Newf(ecerr.OutOfRange, "x-coordinate not in 0..p-1: %s", ecerr.FormatBig(bigFromNat(p.X)))
	}
	if p.Y.EqZero() {
		return true, nil
	}
	if !inRange(p.Y, cg.P) {
		return false, ecerr.Newf(ecerr.OutOfRange, "y-coordinate not in 1..p-1: %s", ecerr.FormatBig(bigFromNat(p.Y)))
	}
	y2 := modMul(p.Y, p.Y, cg.P)
	return natEqMod(cg.polynomial(p.X), y2, cg.P), nil
}

func (cg *CurveGroup) requireOnCurve(p Point) error {
	ok, err := cg.IsOnCurve(p)
	if err != nil {
		return err
	}
	if !ok {
		return ecerr.New(ecerr.NotOnCurve, "point not on curve")
	}
	return nil
}

// Negate returns -P: the y-coordinate negated mod p. Negating infinity
// returns infinity.
func (cg *CurveGroup) Negate(p Point) Point {
	return Point{X: p.X, Y: modSub(new(safenum.Nat), p.Y, cg.P)}
}

// NegateJac returns -P in Jacobian form.
func (cg *CurveGroup) NegateJac(p JacobianPoint) JacobianPoint {
	return JacobianPoint{X: p.X, Y: modSub(new(safenum.Nat), p.Y, cg.P), Z: p.Z}
}

// Add returns P+Q in affine coordinates, validating both inputs are on
// curve first.
func (cg *CurveGroup) Add(p, q Point) (Point, error) {
	if err := cg.requireOnCurve(p); err != nil {
		return Point{}, err
	}
	if err := cg.requireOnCurve(q); err != nil {
		return Point{}, err
	}
	return cg.AddAff(p, q), nil
}

// AddAff is the unchecked affine addition primitive: it trusts that p and q
// already lie on the curve, and branches explicitly on infinity and
// doubling (documented as non-constant-time).
func (cg *CurveGroup) AddAff(p, q Point) Point {
	if q.Y.EqZero() {
		return p
	}
	if p.Y.EqZero() {
		return q
	}
	if natEqMod(p.X, q.X, cg.P) {
		if natEqMod(p.Y, q.Y, cg.P) {
			return cg.DoubleAff(p)
		}
		return InfPoint()
	}

	num := modSub(q.Y, p.Y, cg.P)
	den := modSub(q.X, p.X, cg.P)
	denInv, _ := field.ModInverse(den, cg.P)
	lam := modMul(num, denInv, cg.P)

	x := modSub(modSub(modMul(lam, lam, cg.P), p.X, cg.P), q.X, cg.P)
	y := modSub(modMul(lam, modSub(p.X, x, cg.P), cg.P), p.Y, cg.P)
	return Point{X: x, Y: y}
}

// DoubleAff is the unchecked affine doubling primitive.
func (cg *CurveGroup) DoubleAff(p Point) Point {
	if p.Y.EqZero() {
		return InfPoint()
	}
	num := modAdd(modMul(natU64(3), modMul(p.X, p.X, cg.P), cg.P), cg.A, cg.P)
	den := modAdd(p.Y, p.Y, cg.P)
	denInv, _ := field.ModInverse(den, cg.P)
	lam := modMul(num, denInv, cg.P)

	x := modSub(modMul(lam, lam, cg.P), modAdd(p.X, p.X, cg.P), cg.P)
	y := modSub(modMul(lam, modSub(p.X, x, cg.P), cg.P), p.Y, cg.P)
	return Point{X: x, Y: y}
}

// AddJac is the unchecked Jacobian addition primitive. It unconditionally
// computes the incomplete-addition formula and then selects among four
// candidate results — (X, Y, Z), p, q, or infinity — by an index derived
// from the two Z-is-zero flags, rather than branching early on infinity.
// Doubling is still detected as a branch (engaged when the affine x's and
// y's both match) and delegated to DoubleJac.
func (cg *CurveGroup) AddJac(p, q JacobianPoint) JacobianPoint {
	P := cg.P
	pz2 := modMul(p.Z, p.Z, P)
	pz3 := modMul(pz2, p.Z, P)
	qz2 := modMul(q.Z, q.Z, P)
	qz3 := modMul(qz2, q.Z, P)

	m := modMul(p.X, qz2, P)
	n := modMul(q.X, pz2, P)
	t := modMul(p.Y, qz3, P)
	u := modMul(q.Y, pz3, P)

	bothFinite := !p.Z.EqZero() && !q.Z.EqZero()
	if bothFinite && natEqMod(m, n, P) && natEqMod(t, u, P) {
		return cg.DoubleJac(p)
	}

	w := modSub(u, t, P)
	v := modSub(n, m, P)
	v2 := modMul(v, v, P)
	v3 := modMul(v2, v, P)
	mv2 := modMul(m, v2, P)

	x3 := modSub(modSub(modMul(w, w, P), v3, P), modAdd(mv2, mv2, P), P)
	y3 := modSub(modMul(w, modSub(mv2, x3, P), P), modMul(t, v3, P), P)
	z3 := modMul(modMul(v, p.Z, P), q.Z, P)

	computed := JacobianPoint{X: x3, Y: y3, Z: z3}
	candidates := [4]JacobianPoint{computed, q, p, InfJacobianPoint()}
	idx := boolToInt(p.Z.EqZero()) + boolToInt(q.Z.EqZero())*2
	return candidates[idx]
}

// DoubleJac is the unchecked Jacobian doubling primitive.
func (cg *CurveGroup) DoubleJac(p JacobianPoint) JacobianPoint {
	P := cg.P
	zz := modMul(p.Z, p.Z, P)
	zzzz := modMul(zz, zz, P)
	x2 := modMul(p.X, p.X, P)
	threeX2 := modAdd(modAdd(x2, x2, P), x2, P)
	aZ4 := modMul(cg.A, zzzz, P)
	w := modAdd(threeX2, aZ4, P)

	y2 := modMul(p.Y, p.Y, P)
	v := modMul(natU64(4), modMul(p.X, y2, P), P)

	x3 := modSub(modMul(w, w, P), modAdd(v, v, P), P)
	y4 := modMul(y2, y2, P)
	y3 := modSub(modMul(w, modSub(v, x3, P), P), modMul(natU64(8), y4, P), P)
	z3 := modMul(natU64(2), modMul(p.Y, p.Z, P), P)

	return JacobianPoint{X: x3, Y: y3, Z: z3}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// JacFromAff converts an affine point to Jacobian form. Infinity (0, 0)
// maps to (0, 0, 0); the Z component is 0 exactly when y = 0, else 1. This
// conflates the affine infinity marker with Jacobian infinity, which is
// correct given the (0, 0)-is-infinity representation choice but is a
// fragile invariant: preserve it exactly, do not special-case differently.
func JacFromAff(p Point) JacobianPoint {
	if p.Y.EqZero() {
		return InfJacobianPoint()
	}
	return JacobianPoint{X: p.X, Y: p.Y, Z: natU64(1)}
}

// AffFromJac reverses the Jacobian transform. The point at infinity maps
// to (0, 0).
func (cg *CurveGroup) AffFromJac(p JacobianPoint) Point {
	if p.Z.EqZero() {
		return InfPoint()
	}
	z2 := modMul(p.Z, p.Z, cg.P)
	z2Inv, _ := field.ModInverse(z2, cg.P)
	x := modMul(p.X, z2Inv, cg.P)

	z3 := modMul(z2, p.Z, cg.P)
	z3Inv, _ := field.ModInverse(z3, cg.P)
	y := modMul(p.Y, z3Inv, cg.P)
	return Point{X: x, Y: y}
}

// XAffFromJac recovers only the affine x-coordinate, at the cost of a
// single modular inverse instead of two. Fails for the point at infinity.
func (cg *CurveGroup) XAffFromJac(p JacobianPoint) (*safenum.Nat, error) {
	if p.Z.EqZero() {
		return nil, ecerr.New(ecerr.InvalidInput, "infinity point has no x-coordinate")
	}
	z2 := modMul(p.Z, p.Z, cg.P)
	z2Inv, _ := field.ModInverse(z2, cg.P)
	return modMul(p.X, z2Inv, cg.P), nil
}

// JacEquality tests whether two Jacobian points represent the same affine
// point, by cross-multiplication: no modular inverse is needed.
func (cg *CurveGroup) JacEquality(p, q JacobianPoint) bool {
	pz2 := modMul(p.Z, p.Z, cg.P)
	qz2 := modMul(q.Z, q.Z, cg.P)
	if !natEqMod(modMul(p.X, qz2, cg.P), modMul(q.X, pz2, cg.P), cg.P) {
		return false
	}
	pz3 := modMul(pz2, p.Z, cg.P)
	qz3 := modMul(qz2, q.Z, cg.P)
	return natEqMod(modMul(p.Y, qz3, cg.P), modMul(q.Y, pz3, cg.P), cg.P)
}

// Y recovers a root y of y² = x³+ax+b. Fails with ecerr.OutOfRange if x is
// not in [0, p), or ecerr.NoSquareRoot (reported as an invalid x-coordinate)
// if x has no corresponding y.
func (cg *CurveGroup) Y(x *safenum.Nat) (*safenum.Nat, error) {
	if !inRange(x, cg.P) {
		return nil, ecerr.Newf(ecerr.OutOfRange, "x-coordinate not in 0..p-1: %s", ecerr.FormatBig(bigFromNat(x)))
	}
	y2 := cg.polynomial(x)
	root, err := field.ModSqrt(y2, cg.P)
	if err != nil {
		return nil, ecerr.New(ecerr.NoSquareRoot, "invalid x-coordinate")
	}
	return root, nil
}

func isOdd(n *safenum.Nat) bool {
	b := n.Bytes()
	if len(b) == 0 {
		return false
	}
	return b[len(b)-1]&1 == 1
}

// YOdd returns the root of Y(x) whose parity matches odd (true = odd root,
// false = even root).
func (cg *CurveGroup) YOdd(x *safenum.Nat, odd bool) (*safenum.Nat, error) {
	root, err := cg.Y(x)
	if err != nil {
		return nil, err
	}
	if isOdd(root) == odd {
		return root, nil
	}
	return modSub(new(safenum.Nat), root, cg.P), nil
}

func lessOrEqualHalfP(n *safenum.Nat, p *safenum.Modulus) bool {
	nBig := bigFromNat(n)
	pBig := new(big.Int).SetBytes(p.Bytes())
	half := new(big.Int).Rsh(pBig, 1)
	return nBig.Cmp(half) <= 0
}

// YLow returns the root of Y(x) that is "low" (≤ ⌊p/2⌋) when low is true,
// or "high" otherwise.
func (cg *CurveGroup) YLow(x *safenum.Nat, low bool) (*safenum.Nat, error) {
	root, err := cg.Y(x)
	if err != nil {
		return nil, err
	}
	if lessOrEqualHalfP(root, cg.P) == low {
		return root, nil
	}
	return modSub(new(safenum.Nat), root, cg.P), nil
}

// YQuadraticResidue returns the root of Y(x) that is a quadratic residue
// (qr = true) or a non-residue (qr = false). Requires p ≡ 3 (mod 4).
func (cg *CurveGroup) YQuadraticResidue(x *safenum.Nat, qr bool) (*safenum.Nat, error) {
	if !cg.PIsThreeModFour {
		return nil, ecerr.Newf(ecerr.WrongPrimeForm, "field prime is not equal to 3 mod 4: %s", ecerr.FormatBig(bigFromNat(new(safenum.Nat).SetBytes(cg.P.Bytes()))))
	}
	root, err := cg.Y(x)
	if err != nil {
		return nil, err
	}
	isResidue := field.Legendre(root, cg.P) == 1
	if isResidue == qr {
		return root, nil
	}
	return modSub(new(safenum.Nat), root, cg.P), nil
}

// HasSquareY reports whether the affine y-coordinate of p is a quadratic
// residue mod p.
func (cg *CurveGroup) HasSquareY(p Point) bool {
	return field.Legendre(p.Y, cg.P) == 1
}

// HasSquareYJac reports whether the affine y-coordinate recovered from a
// Jacobian point is a quadratic residue, equivalent to testing Y·Z.
func (cg *CurveGroup) HasSquareYJac(p JacobianPoint) bool {
	yz := modMul(p.Y, p.Z, cg.P)
	return field.Legendre(yz, cg.P) == 1
}

// String renders the curve equation with its parameters, large operands in
// hex, matching the error-message convention used throughout this module.
func (cg *CurveGroup) String() string {
	pBig := new(big.Int).SetBytes(cg.P.Bytes())
	return fmt.Sprintf("y² = x³ + %s·x + %s (mod %s)",
		ecerr.FormatBig(bigFromNat(cg.A)), ecerr.FormatBig(bigFromNat(cg.B)), ecerr.FormatBig(pBig))
}
