package elliptic

import (
	"testing"

	"github.com/cronokirby/safenum"
)

// toyGroup builds one of the low-cardinality curves used by original_source's
// test suite (original_source/btclib/tests/test_curve.py), inlined here
// (rather than imported from the curves package, which itself depends on
// this one) so group-law invariants can be checked exhaustively.
func toyGroup(t *testing.T, p, a, b int64) *CurveGroup {
	t.Helper()
	cg, err := NewCurveGroup(natFromInt64(p), natFromInt64(a), natFromInt64(b))
	if err != nil {
		t.Fatalf("NewCurveGroup(%d,%d,%d): %v", p, a, b, err)
	}
	return cg
}

func natFromInt64(v int64) *safenum.Nat {
	return new(safenum.Nat).SetUint64(uint64(v))
}

func pointFromInt64(x, y int64) Point {
	return Point{X: natFromInt64(x), Y: natFromInt64(y)}
}

func allPoints(cg *CurveGroup, p int64) []Point {
	var pts []Point
	pts = append(pts, InfPoint())
	for x := int64(0); x < p; x++ {
		for y := int64(1); y < p; y++ {
			pt := pointFromInt64(x, y)
			ok, err := cg.IsOnCurve(pt)
			if err == nil && ok {
				pts = append(pts, pt)
			}
		}
	}
	return pts
}

func TestNewCurveGroupRejectsNonPrime(t *testing.T) {
	if _, err := NewCurveGroup(natFromInt64(15), natFromInt64(1), natFromInt64(1)); err == nil {
		t.Fatal("expected error for non-prime p")
	}
}

func TestNewCurveGroupRejectsZeroDiscriminant(t *testing.T) {
	// a=0, b=0 gives y²=x³, discriminant 4·0+27·0=0.
	if _, err := NewCurveGroup(natFromInt64(23), natFromInt64(0), natFromInt64(0)); err == nil {
		t.Fatal("expected error for singular curve")
	}
}

func TestGeneratorOnCurve(t *testing.T) {
	// ec13_19 from original_source's low_card_curves.
	cg := toyGroup(t, 13, 0, 2)
	g := pointFromInt64(1, 9)
	ok, err := cg.IsOnCurve(g)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("generator not on curve")
	}
}

func TestAddCommutative(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	pts := allPoints(cg, 13)
	for _, p := range pts {
		for _, q := range pts {
			r1, err := cg.Add(p, q)
			if err != nil {
				t.Fatal(err)
			}
			r2, err := cg.Add(q, p)
			if err != nil {
				t.Fatal(err)
			}
			if !pointsEqual(r1, r2) {
				t.Errorf("add not commutative: %v+%v = %v, %v+%v = %v", p, q, r1, q, p, r2)
			}
		}
	}
}

func TestAddIdentity(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	for _, p := range allPoints(cg, 13) {
		r, err := cg.Add(p, InfPoint())
		if err != nil {
			t.Fatal(err)
		}
		if !pointsEqual(r, p) {
			t.Errorf("%v + infinity = %v, want %v", p, r, p)
		}
	}
}

func TestAddNegateIsInfinity(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	for _, p := range allPoints(cg, 13) {
		if p.Y.EqZero() {
			continue
		}
		neg := cg.Negate(p)
		r, err := cg.Add(p, neg)
		if err != nil {
			t.Fatal(err)
		}
		if !pointsEqual(r, InfPoint()) {
			t.Errorf("%v + (-%v) = %v, want infinity", p, p, r)
		}
	}
}

func TestDoubleMatchesAdd(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	for _, p := range allPoints(cg, 13) {
		if p.Y.EqZero() {
			continue
		}
		viaAdd, err := cg.Add(p, p)
		if err != nil {
			t.Fatal(err)
		}
		viaDouble := cg.DoubleAff(p)
		if !pointsEqual(viaAdd, viaDouble) {
			t.Errorf("2*%v via Add = %v, via Double = %v", p, viaAdd, viaDouble)
		}
	}
}

func TestJacAffRoundTrip(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	for _, p := range allPoints(cg, 13) {
		jac := JacFromAff(p)
		back := cg.AffFromJac(jac)
		if !pointsEqual(p, back) {
			t.Errorf("round trip %v -> jac -> %v", p, back)
		}
	}
}

func TestAddJacMatchesAddAff(t *testing.T) {
	cg := toyGroup(t, 13, 0, 2)
	pts := allPoints(cg, 13)
	for _, p := range pts {
		for _, q := range pts {
			aff := cg.AddAff(p, q)
			jac := cg.AddJac(JacFromAff(p), JacFromAff(q))
			gotAff := cg.AffFromJac(jac)
			if !pointsEqual(aff, gotAff) {
				t.Errorf("AddAff(%v,%v)=%v, AddJac-then-convert=%v", p, q, aff, gotAff)
			}
		}
	}
}

func TestYRecoverySymmetryBreakers(t *testing.T) {
	// ec23_19, p ≡ 3 (mod 4), so YQuadraticResidue is available.
	cg := toyGroup(t, 23, 9, 7)
	x := natFromInt64(5)
	oddRoot, err := cg.YOdd(x, true)
	if err != nil {
		t.Fatal(err)
	}
	if !isOdd(oddRoot) {
		t.Errorf("YOdd(true) returned even root %v", oddRoot)
	}
	evenRoot, err := cg.YOdd(x, false)
	if err != nil {
		t.Fatal(err)
	}
	if isOdd(evenRoot) {
		t.Errorf("YOdd(false) returned odd root %v", evenRoot)
	}
	if bigFromNat(oddRoot).Cmp(bigFromNat(evenRoot)) == 0 {
		t.Fatal("YOdd(true) and YOdd(false) returned the same root")
	}

	lowRoot, err := cg.YLow(x, true)
	if err != nil {
		t.Fatal(err)
	}
	if !lessOrEqualHalfP(lowRoot, cg.P) {
		t.Errorf("YLow(true) returned a high root")
	}

	qrRoot, err := cg.YQuadraticResidue(x, true)
	if err != nil {
		t.Fatal(err)
	}
	qrPoint := Point{X: x, Y: qrRoot}
	if !cg.HasSquareY(qrPoint) {
		t.Errorf("YQuadraticResidue(true) returned a non-residue root")
	}
}

func TestYQuadraticResidueWrongPrimeForm(t *testing.T) {
	// 17 ≡ 1 (mod 4).
	cg := toyGroup(t, 17, 6, 8)
	if _, err := cg.YQuadraticResidue(natFromInt64(0), true); err == nil {
		t.Fatal("expected WrongPrimeForm error")
	}
}

func pointsEqual(p, q Point) bool {
	return bigFromNat(p.X).Cmp(bigFromNat(q.X)) == 0 && bigFromNat(p.Y).Cmp(bigFromNat(q.Y)) == 0
}
