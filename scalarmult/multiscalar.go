package scalarmult

import (
	"container/heap"
	"math/big"

	"github.com/cronokirby/safenum"
	"github.com/vault-crypto/ecgroup/ecerr"
	"github.com/vault-crypto/ecgroup/elliptic"
)

func bigFromNat(n *safenum.Nat) *big.Int {
	return new(big.Int).SetBytes(n.Bytes())
}

func natFromBig(b *big.Int) *safenum.Nat {
	return new(safenum.Nat).SetBytes(b.Bytes())
}

// DoubleMult computes u·H + v·Q in one combined ladder (the Shamir-Strauss
// trick): the four possible partial sums {O, H, Q, H+Q} are precomputed
// once, and the shared doubling loop walks the joint bit pattern of u and v,
// adding the table entry selected by the current bit pair at each step.
func DoubleMult(ec *elliptic.CurveGroup, u *safenum.Nat, h elliptic.Point, v *safenum.Nat, q elliptic.Point) elliptic.Point {
	hJ := elliptic.JacFromAff(h)
	qJ := elliptic.JacFromAff(q)
	table := [4]elliptic.JacobianPoint{
		elliptic.InfJacobianPoint(),
		hJ,
		qJ,
		ec.AddJac(hJ, qJ),
	}

	uBits := bigFromNat(u).Text(2)
	vBits := bigFromNat(v).Text(2)
	for len(uBits) < len(vBits) {
		uBits = "0" + uBits
	}
	for len(vBits) < len(uBits) {
		vBits = "0" + vBits
	}

	digit := func(i int) int {
		return int(uBits[i]-'0') + 2*int(vBits[i]-'0')
	}

	r := table[digit(0)]
	for i := 1; i < len(uBits); i++ {
		r = ec.DoubleJac(r)
		r = ec.AddJac(r, table[digit(i)])
	}
	return ec.AffFromJac(r)
}

// msItem is one (weight, point) pair in the Bos-Coster reduction; point is
// always kept in Jacobian coordinates so the inner loop never pays for an
// inversion.
type msItem struct {
	n *big.Int
	p elliptic.JacobianPoint
}

// msHeap is a max-heap on weight: container/heap's Less must report "comes
// out first", and the Bos-Coster reduction always wants the two largest
// weights next.
type msHeap []*msItem

func (h msHeap) Len() int            { return len(h) }
func (h msHeap) Less(i, j int) bool  { return h[i].n.Cmp(h[j].n) > 0 }
func (h msHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *msHeap) Push(x interface{}) { *h = append(*h, x.(*msItem)) }
func (h *msHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MultiMult computes Σ scalars[i]·points[i] with the Bos-Coster algorithm:
// repeatedly pop the two largest remaining weights n1 ≥ n2, fold their
// points together (p1+p2 replaces p2's weight, n1-n2 re-enters the heap
// attached to p1 when positive), until one weighted point remains.
func MultiMult(ec *elliptic.CurveGroup, scalars []*safenum.Nat, points []elliptic.Point) (elliptic.Point, error) {
	if len(scalars) != len(points) {
		return elliptic.Point{}, ecerr.New(ecerr.InvalidInput, "scalars and points must have the same length")
	}

	h := make(msHeap, 0, len(scalars))
	for i, s := range scalars {
		n := bigFromNat(s)
		if n.Sign() == 0 {
			continue
		}
		h = append(h, &msItem{n: n, p: elliptic.JacFromAff(points[i])})
	}
	if len(h) == 0 {
		return elliptic.InfPoint(), nil
	}
	heap.Init(&h)

	for h.Len() > 1 {
		first := heap.Pop(&h).(*msItem)
		second := heap.Pop(&h).(*msItem)

		sum := ec.AddJac(first.p, second.p)
		diff := new(big.Int).Sub(first.n, second.n)
		if diff.Sign() > 0 {
			heap.Push(&h, &msItem{n: diff, p: first.p})
		}
		heap.Push(&h, &msItem{n: second.n, p: sum})
	}

	last := heap.Pop(&h).(*msItem)
	resultAff := ec.AffFromJac(last.p)
	return MultFixedWindow(ec, natFromBig(last.n), resultAff, 4, false)
}
