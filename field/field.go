// Package field implements the modular arithmetic helpers (L1) that sit
// beneath the curve-group layer: modular inverse, modular square root,
// the Legendre symbol, and base decomposition of arbitrary-precision
// integers.
//
// These routines are explicitly not constant-time (spec non-goal): modular
// square root and the Legendre symbol both branch on the bit pattern of
// their inputs, and base decomposition is a plain repeated-division loop.
// For that reason they operate on math/big.Int internally even though the
// rest of this module represents field elements as *safenum.Nat — the same
// trade the teacher package itself makes in its own UnmarshalCompressed.
package field

import (
	"math/big"

	"github.com/cronokirby/safenum"
	"github.com/vault-crypto/ecgroup/ecerr"
)

func bigFromNat(n *safenum.Nat) *big.Int {
	return new(big.Int).SetBytes(n.Bytes())
}

func bigFromModulus(m *safenum.Modulus) *big.Int {
	return new(big.Int).SetBytes(m.Bytes())
}

func natFromBig(b *big.Int) *safenum.Nat {
	return new(safenum.Nat).SetBytes(b.Bytes())
}

// ModInverse returns a⁻¹ mod p. It fails when a ≡ 0 (mod p).
func ModInverse(a *safenum.Nat, p *safenum.Modulus) (*safenum.Nat, error) {
	aBig := bigFromNat(a)
	pBig := bigFromModulus(p)
	aBig.Mod(aBig, pBig)
	if aBig.Sign() == 0 {
		return nil, ecerr.New(ecerr.OutOfRange, "modular inverse of zero")
	}
	inv := new(safenum.Nat).ModInverse(a, p)
	return inv, nil
}

// Legendre returns the Legendre symbol (a/p): +1 if a is a nonzero
// quadratic residue mod p, −1 if it is a non-residue, 0 if a ≡ 0 (mod p).
func Legendre(a *safenum.Nat, p *safenum.Modulus) int {
	aBig := bigFromNat(a)
	pBig := bigFromModulus(p)
	aBig.Mod(aBig, pBig)
	if aBig.Sign() == 0 {
		return 0
	}

	exp := new(big.Int).Sub(pBig, big.NewInt(1))
	exp.Rsh(exp, 1)
	r := new(big.Int).Exp(aBig, exp, pBig)

	pMinus1 := new(big.Int).Sub(pBig, big.NewInt(1))
	if r.Cmp(pMinus1) == 0 {
		return -1
	}
	return 1
}

// ModSqrt returns r with r² ≡ a (mod p). Fails with ecerr.NoSquareRoot when
// a is a non-residue. Handles both p ≡ 3 (mod 4), via the direct formula
// r = a^((p+1)/4), and p ≡ 1 (mod 4) via Tonelli-Shanks.
func ModSqrt(a *safenum.Nat, p *safenum.Modulus) (*safenum.Nat, error) {
	aBig := bigFromNat(a)
	pBig := bigFromModulus(p)
	aBig.Mod(aBig, pBig)

	if aBig.Sign() == 0 {
		return new(safenum.Nat), nil
	}

	if Legendre(a, p) != 1 {
		return nil, ecerr.Newf(ecerr.NoSquareRoot, "%s is not a quadratic residue mod %s",
			ecerr.FormatBig(aBig), ecerr.FormatBig(pBig))
	}

	four := big.NewInt(4)
	mod4 := new(big.Int).Mod(pBig, four)
	if mod4.Cmp(big.NewInt(3)) == 0 {
		exp := new(big.Int).Add(pBig, big.NewInt(1))
		exp.Rsh(exp, 2)
		r := new(big.Int).Exp(aBig, exp, pBig)
		return natFromBig(r), nil
	}

	r := tonelliShanks(aBig, pBig)
	return natFromBig(r), nil
}

// tonelliShanks returns a square root of a mod p for odd prime p, assuming
// a is already known to be a nonzero quadratic residue.
func tonelliShanks(a, p *big.Int) *big.Int {
	one := big.NewInt(1)
	two := big.NewInt(2)

	// p - 1 = q * 2^s, q odd.
	q := new(big.Int).Sub(p, one)
	s := 0
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		s++
	}

	// Find a quadratic non-residue z.
	z := big.NewInt(2)
	pMinus1 := new(big.Int).Sub(p, one)
	for {
		exp := new(big.Int).Rsh(pMinus1, 1)
		r := new(big.Int).Exp(z, exp, p)
		if r.Cmp(pMinus1) == 0 {
			break
		}
		z.Add(z, one)
	}

	m := s
	c := new(big.Int).Exp(z, q, p)
	qPlus1Over2 := new(big.Int).Add(q, one)
	qPlus1Over2.Rsh(qPlus1Over2, 1)
	t := new(big.Int).Exp(a, q, p)
	r := new(big.Int).Exp(a, qPlus1Over2, p)

	for t.Cmp(one) != 0 {
		// Find the least i, 0 < i < m, with t^(2^i) == 1.
		i := 0
		tt := new(big.Int).Set(t)
		for tt.Cmp(one) != 0 {
			tt.Mul(tt, tt)
			tt.Mod(tt, p)
			i++
		}

		b := new(big.Int).Exp(c, new(big.Int).Lsh(one, uint(m-i-1)), p)
		m = i
		c = new(big.Int).Mul(b, b)
		c.Mod(c, p)
		t.Mul(t, c)
		t.Mod(t, p)
		r.Mul(r, b)
		r.Mod(r, p)
	}
	return r
}

// ToBase returns the big-endian digit sequence of nonnegative i in the
// given base (>= 2). Zero always maps to [0]; the result always has at
// least one digit.
func ToBase(i *safenum.Nat, base uint) []uint64 {
	n := bigFromNat(i)
	b := new(big.Int).SetUint64(uint64(base))

	var digits []uint64
	if n.Sign() == 0 {
		return []uint64{0}
	}

	rem := new(big.Int)
	quo := new(big.Int).Set(n)
	for quo.Sign() != 0 {
		quo.QuoRem(quo, b, rem)
		digits = append(digits, rem.Uint64())
	}

	// reverse into big-endian order
	for l, r := 0, len(digits)-1; l < r; l, r = l+1, r-1 {
		digits[l], digits[r] = digits[r], digits[l]
	}
	return digits
}
