package field

import (
	"math/big"
	"testing"

	"github.com/cronokirby/safenum"
)

func natFromInt64(v int64) *safenum.Nat {
	return new(safenum.Nat).SetUint64(uint64(v))
}

func modulusFromInt64(v int64) *safenum.Modulus {
	return safenum.ModulusFromNat(*natFromInt64(v))
}

func TestModInverse(t *testing.T) {
	p := modulusFromInt64(23)
	for a := int64(1); a < 23; a++ {
		inv, err := ModInverse(natFromInt64(a), p)
		if err != nil {
			t.Fatalf("ModInverse(%d): %v", a, err)
		}
		got := new(safenum.Nat).ModMul(natFromInt64(a), inv, p)
		gotBig := bigFromNat(got)
		if gotBig.Cmp(big.NewInt(1)) != 0 {
			t.Errorf("a=%d: a*a^-1 mod p = %s, want 1", a, gotBig)
		}
	}
}

func TestModInverseZero(t *testing.T) {
	p := modulusFromInt64(23)
	if _, err := ModInverse(natFromInt64(0), p); err == nil {
		t.Fatal("expected error for inverse of zero")
	}
}

func TestLegendre(t *testing.T) {
	p := modulusFromInt64(23)
	// Quadratic residues mod 23: 1,2,3,4,6,8,9,12,13,16,18.
	residues := map[int64]bool{1: true, 2: true, 3: true, 4: true, 6: true, 8: true,
		9: true, 12: true, 13: true, 16: true, 18: true}
	for a := int64(1); a < 23; a++ {
		got := Legendre(natFromInt64(a), p)
		want := -1
		if residues[a] {
			want = 1
		}
		if got != want {
			t.Errorf("Legendre(%d, 23) = %d, want %d", a, got, want)
		}
	}
	if got := Legendre(natFromInt64(0), p); got != 0 {
		t.Errorf("Legendre(0, 23) = %d, want 0", got)
	}
}

func TestModSqrtThreeModFour(t *testing.T) {
	// 23 ≡ 3 (mod 4); 4 = 2^2 is a QR mod 23.
	p := modulusFromInt64(23)
	a := natFromInt64(4) // 2^2
	root, err := ModSqrt(a, p)
	if err != nil {
		t.Fatal(err)
	}
	sq := new(safenum.Nat).ModMul(root, root, p)
	if bigFromNat(sq).Cmp(big.NewInt(4)) != 0 {
		t.Errorf("root^2 = %s, want 4", bigFromNat(sq))
	}
}

func TestModSqrtOneModFour(t *testing.T) {
	// 17 ≡ 1 (mod 4), exercises the Tonelli-Shanks branch.
	p := modulusFromInt64(17)
	for a := int64(1); a < 17; a++ {
		if Legendre(natFromInt64(a), p) != 1 {
			continue
		}
		root, err := ModSqrt(natFromInt64(a), p)
		if err != nil {
			t.Fatalf("ModSqrt(%d): %v", a, err)
		}
		sq := new(safenum.Nat).ModMul(root, root, p)
		if bigFromNat(sq).Cmp(big.NewInt(a)) != 0 {
			t.Errorf("a=%d: root^2 mod p = %s, want %d", a, bigFromNat(sq), a)
		}
	}
}

func TestModSqrtNonResidue(t *testing.T) {
	p := modulusFromInt64(23)
	if _, err := ModSqrt(natFromInt64(5), p); err == nil {
		t.Fatal("expected error for non-residue")
	}
}

func TestModSqrtZero(t *testing.T) {
	p := modulusFromInt64(23)
	root, err := ModSqrt(natFromInt64(0), p)
	if err != nil {
		t.Fatal(err)
	}
	if bigFromNat(root).Sign() != 0 {
		t.Errorf("ModSqrt(0) = %s, want 0", bigFromNat(root))
	}
}

func TestToBase(t *testing.T) {
	cases := []struct {
		i    int64
		base uint
		want []uint64
	}{
		{0, 2, []uint64{0}},
		{1, 2, []uint64{1}},
		{13, 2, []uint64{1, 1, 0, 1}},
		{255, 16, []uint64{15, 15}},
		{100, 3, []uint64{1, 0, 2, 0, 1}},
	}
	for _, c := range cases {
		got := ToBase(natFromInt64(c.i), c.base)
		if len(got) != len(c.want) {
			t.Errorf("ToBase(%d, %d) = %v, want %v", c.i, c.base, got, c.want)
			continue
		}
		for idx := range got {
			if got[idx] != c.want[idx] {
				t.Errorf("ToBase(%d, %d) = %v, want %v", c.i, c.base, got, c.want)
				break
			}
		}
	}
}
