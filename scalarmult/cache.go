package scalarmult

import (
	"encoding/binary"
	"sync"

	"github.com/vault-crypto/ecgroup/elliptic"
	"golang.org/x/crypto/blake2b"
)

// Memoization keys the precomputed tables by the (curve, point) identity
// rather than by object identity: the curve contributes its (p, a, b), the
// point its affine (x, y). This means two Point values that describe the
// same coordinates always hit the same cache entry, independent of how the
// caller obtained them — the property the reference implementation gets for
// free from Python's tuple hashing.
type cacheKey [blake2b.Size256]byte

func curveDigest(ec *elliptic.CurveGroup) []byte {
	h, _ := blake2b.New256(nil)
	h.Write(ec.P.Bytes())
	h.Write([]byte{0})
	h.Write(ec.A.Bytes())
	h.Write([]byte{0})
	h.Write(ec.B.Bytes())
	return h.Sum(nil)
}

func pointKey(ec *elliptic.CurveGroup, q elliptic.Point) cacheKey {
	h, _ := blake2b.New256(nil)
	h.Write(curveDigest(ec))
	h.Write([]byte{0})
	h.Write(q.X.Bytes())
	h.Write([]byte{0})
	h.Write(q.Y.Bytes())
	var k cacheKey
	copy(k[:], h.Sum(nil))
	return k
}

func windowedPointKey(ec *elliptic.CurveGroup, q elliptic.Point, w uint) cacheKey {
	h, _ := blake2b.New256(nil)
	h.Write(curveDigest(ec))
	h.Write([]byte{0})
	h.Write(q.X.Bytes())
	h.Write([]byte{0})
	h.Write(q.Y.Bytes())
	h.Write([]byte{0})
	var wBuf [8]byte
	binary.BigEndian.PutUint64(wBuf[:], uint64(w))
	h.Write(wBuf[:])
	var k cacheKey
	copy(k[:], h.Sum(nil))
	return k
}

// maxCachedWindow bounds the cached non-windowed table at 2^5 = 32 entries,
// matching the reference implementation's cap on how large an uncontrolled
// caller-supplied cache entry is allowed to grow.
const maxCachedWindow = 5

type multiplesCache struct {
	mu sync.RWMutex
	m  map[cacheKey][]elliptic.JacobianPoint
}

var globalMultiples = &multiplesCache{m: make(map[cacheKey][]elliptic.JacobianPoint)}

// CachedMultiples returns the memoized table [0·Q, ..., 31·Q] in Jacobian
// coordinates, computing it at most once per distinct (curve, Q).
func CachedMultiples(ec *elliptic.CurveGroup, q elliptic.Point) []elliptic.JacobianPoint {
	key := pointKey(ec, q)

	globalMultiples.mu.RLock()
	t, ok := globalMultiples.m[key]
	globalMultiples.mu.RUnlock()
	if ok {
		return t
	}

	globalMultiples.mu.Lock()
	defer globalMultiples.mu.Unlock()
	if t, ok := globalMultiples.m[key]; ok {
		return t
	}
	t, _ = Multiples(ec, elliptic.JacFromAff(q), uint64(1)<<maxCachedWindow)
	globalMultiples.m[key] = t
	return t
}

type fixWindowCache struct {
	mu sync.RWMutex
	m  map[cacheKey][][]elliptic.JacobianPoint
}

var globalFixWindow = &fixWindowCache{m: make(map[cacheKey][][]elliptic.JacobianPoint)}

// CachedMultiplesFixWindow returns the memoized per-window-position table
// used by MultFixedWindowCached: table[i][d] = d · 2^(i·w) · Q.
func CachedMultiplesFixWindow(ec *elliptic.CurveGroup, q elliptic.Point, w uint) [][]elliptic.JacobianPoint {
	key := windowedPointKey(ec, q, w)

	globalFixWindow.mu.RLock()
	t, ok := globalFixWindow.m[key]
	globalFixWindow.mu.RUnlock()
	if ok {
		return t
	}

	globalFixWindow.mu.Lock()
	defer globalFixWindow.mu.Unlock()
	if t, ok := globalFixWindow.m[key]; ok {
		return t
	}
	t = buildFixWindowTable(ec, q, w)
	globalFixWindow.m[key] = t
	return t
}

func buildFixWindowTable(ec *elliptic.CurveGroup, q elliptic.Point, w uint) [][]elliptic.JacobianPoint {
	numWindows := (ec.PSize*8)/int(w) + 1
	t := make([][]elliptic.JacobianPoint, 0, numWindows)

	k := elliptic.JacFromAff(q)
	windowSize := uint64(1) << w
	for i := 0; i < numWindows; i++ {
		sub := make([]elliptic.JacobianPoint, 2, windowSize)
		sub[0] = elliptic.InfJacobianPoint()
		sub[1] = k
		for j := uint64(3); j < windowSize; j += 2 {
			sub = append(sub, ec.DoubleJac(sub[(j-1)/2]))
			sub = append(sub, ec.AddJac(sub[len(sub)-1], k))
		}
		k = ec.DoubleJac(sub[windowSize/2])
		t = append(t, sub)
	}
	return t
}
