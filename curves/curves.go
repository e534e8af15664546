// Package curves is a static registry of named short-Weierstrass curves:
// the SEC2 v1 and v2 curves, the NIST curves (FIPS 186-4), the Brainpool
// r1 curves (RFC 5639), and a handful of deliberately tiny curves used to
// exhaustively exercise group-law invariants in tests.
//
// Construction mirrors the teacher package's lazy P384/P521 initialization
// (sync.Once plus fromString/modulusFromString hex helpers), generalized
// from two hand-written init functions to a data table, since this
// registry carries dozens of curves rather than two.
package curves

import (
	"math/big"
	"sync"

	"github.com/cronokirby/safenum"
	"github.com/vault-crypto/ecgroup/elliptic"
)

// Curve pairs a CurveGroup with the fixed base point, order and cofactor
// that make it usable for cryptographic protocols, as opposed to the bare
// group arithmetic that elliptic.CurveGroup provides on its own.
type Curve struct {
	*elliptic.CurveGroup
	Name string
	G    elliptic.Point
	N    *safenum.Nat
	H    uint64
}

func fromString(s string, base int) *safenum.Nat {
	num, ok := new(big.Int).SetString(s, base)
	if !ok {
		panic("curves: malformed literal: " + s)
	}
	return new(safenum.Nat).SetBytes(num.Bytes())
}

type curveSpec struct {
	name    string
	p, a, b string
	gx, gy  string
	n       string
	h       uint64
}

func build(spec curveSpec) *Curve {
	p := fromString(spec.p, 16)
	a := fromString(spec.a, 16)
	b := fromString(spec.b, 16)
	cg, err := elliptic.NewCurveGroup(p, a, b)
	if err != nil {
		panic("curves: " + spec.name + ": " + err.Error())
	}
	return &Curve{
		CurveGroup: cg,
		Name:       spec.name,
		G:          elliptic.Point{X: fromString(spec.gx, 16), Y: fromString(spec.gy, 16)},
		N:          fromString(spec.n, 16),
		H:          spec.h,
	}
}

var (
	once     sync.Once
	registry map[string]*Curve
)

func initRegistry() {
	registry = make(map[string]*Curve, len(curveSpecs)+len(toySpecs))
	for _, spec := range curveSpecs {
		registry[spec.name] = build(spec)
	}
	for _, spec := range toySpecs {
		registry[spec.name] = build(spec)
	}
}

// ByName returns the named curve and true, or (nil, false) if no curve of
// that name is registered. Names match the lowercase identifiers used
// throughout the literature (e.g. "secp256k1", "nistp256", "bpp256r1").
func ByName(name string) (*Curve, bool) {
	once.Do(initRegistry)
	c, ok := registry[name]
	return c, ok
}

// All returns every registered curve, including the toy low-cardinality
// ones, in no particular order.
func All() []*Curve {
	once.Do(initRegistry)
	out := make([]*Curve, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}

// Toy returns only the low-cardinality curves used for exhaustive testing.
func Toy() []*Curve {
	once.Do(initRegistry)
	out := make([]*Curve, 0, len(toySpecs))
	for _, spec := range toySpecs {
		out = append(out, registry[spec.name])
	}
	return out
}
