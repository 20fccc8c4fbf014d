package geometry3D

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
)

// PointSet is the ordered, read-only collection of input positions. A point's
// identity is its index in the set.
type PointSet struct {
	points []r3.Vec
}

// NewPointSet copies points into a new set, rejecting non-finite coordinates.
func NewPointSet(points []r3.Vec) (ps *PointSet, err error) {
	ps = &PointSet{points: make([]r3.Vec, len(points))}
	for i, p := range points {
		if !IsFinite(p) {
			return nil, errors.Wrapf(types.ErrParse,
				"point %d has a non-finite coordinate: (%g, %g, %g)", i, p.X, p.Y, p.Z)
		}
		ps.points[i] = p
	}
	return
}

func (ps *PointSet) Len() int { return len(ps.points) }

func (ps *PointSet) At(i int) r3.Vec { return ps.points[i] }

// Points returns the backing slice, which callers must not modify.
func (ps *PointSet) Points() []r3.Vec { return ps.points }

// Bounds returns the componentwise minimum and maximum of the set.
func (ps *PointSet) Bounds() (lo, hi r3.Vec) {
	return BoundingBox(ps.points)
}

func BoundingBox(points []r3.Vec) (lo, hi r3.Vec) {
	if len(points) == 0 {
		return
	}
	lo, hi = points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return
}

func IsFinite(p r3.Vec) bool {
	for _, x := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
