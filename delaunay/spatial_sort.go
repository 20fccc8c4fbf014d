package delaunay

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/geometry3D"
)

const mortonBits = 21

// spread3 moves the low 21 bits of x to every third bit position.
func spread3(x uint64) uint64 {
	x &= 1<<mortonBits - 1
	x = (x | x<<32) & 0x1f00000000ffff
	x = (x | x<<16) & 0x1f0000ff0000ff
	x = (x | x<<8) & 0x100f00f00f00f00f
	x = (x | x<<4) & 0x10c30c30c30c30c3
	x = (x | x<<2) & 0x1249249249249249
	return x
}

func mortonKey(x, y, z uint64) uint64 {
	return spread3(x) | spread3(y)<<1 | spread3(z)<<2
}

// quantize maps x from [lo, lo+span] onto the integer grid [0, 2^21).
func quantize(x, lo, span float64) uint64 {
	if span <= 0 {
		return 0
	}
	const top = 1<<mortonBits - 1
	q := math.Floor((x - lo) / span * top)
	switch {
	case !(q > 0):
		return 0
	case q > top:
		return top
	}
	return uint64(q)
}

// spatialOrder returns the point indices sorted along a Z-order curve over
// the bounding box of the points. Points in the same grid cell keep their
// input order.
func spatialOrder(points []r3.Vec) []int {
	order := make([]int, len(points))
	if len(points) == 0 {
		return order
	}
	lo, hi := geometry3D.BoundingBox(points)
	span := math.Max(hi.X-lo.X, math.Max(hi.Y-lo.Y, hi.Z-lo.Z))
	keys := make([]uint64, len(points))
	for i, p := range points {
		order[i] = i
		keys[i] = mortonKey(quantize(p.X, lo.X, span), quantize(p.Y, lo.Y, span), quantize(p.Z, lo.Z, span))
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if keys[a] != keys[b] {
			return keys[a] < keys[b]
		}
		return a < b
	})
	return order
}
