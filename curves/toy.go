package curves

// toySpecs holds the low-cardinality curves from
// original_source/btclib/tests/test_curve.py's low_card_curves, used to
// exhaustively check group-law invariants by brute-force enumeration
// rather than by sampling.
var toySpecs = []curveSpec{
	{name: "ec13_11", p: "d", a: "7", b: "6", gx: "1", gy: "1", n: "b", h: 1},
	{name: "ec13_19", p: "d", a: "0", b: "2", gx: "1", gy: "9", n: "13", h: 1},
	{name: "ec17_13", p: "11", a: "6", b: "8", gx: "0", gy: "c", n: "d", h: 2},
	{name: "ec17_23", p: "11", a: "3", b: "5", gx: "1", gy: "e", n: "17", h: 1},
	{name: "ec19_13", p: "13", a: "0", b: "2", gx: "4", gy: "10", n: "d", h: 2},
	{name: "ec19_23", p: "13", a: "2", b: "9", gx: "0", gy: "10", n: "17", h: 1},
	{name: "ec23_19", p: "17", a: "9", b: "7", gx: "5", gy: "4", n: "13", h: 1},
	{name: "ec23_31", p: "17", a: "5", b: "1", gx: "0", gy: "1", n: "1f", h: 1},
}
