package geometry3D

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
)

// Domain is the periodic cube [Min, Max]^3. Opposite faces are identified, so
// the canonical coordinate range along every axis is [Min, Max).
type Domain struct {
	Min, Max float64
}

func NewDomain(min, max float64) (d Domain, err error) {
	d = Domain{Min: min, Max: max}
	err = d.Validate()
	return
}

func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return errors.Wrapf(types.ErrConfig, "invalid box boundaries: [%g, %g]", d.Min, d.Max)
	}
	if d.Min >= d.Max {
		return errors.Wrapf(types.ErrConfig, "invalid box boundaries: [%g, %g]", d.Min, d.Max)
	}
	return nil
}

// Size is the side length of the box
func (d Domain) Size() float64 { return d.Max - d.Min }

// Contains reports whether v lies in the half open box [Min, Max)^3.
func (d Domain) Contains(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if x < d.Min || x >= d.Max {
			return false
		}
	}
	return true
}

// FoldCoordinate moves x by at most one box size towards [Min, Max). Values
// further than one box size outside the domain are not brought inside.
func (d Domain) FoldCoordinate(x float64) float64 {
	size := d.Size()
	if x < d.Min {
		x += size
		// x just below Min can round up onto Max, which is the same point as Min
		if x >= d.Max {
			x = d.Min
		}
	} else if x >= d.Max {
		x -= size
		if x < d.Min {
			x = d.Min
		}
	}
	return x
}

// Fold maps a point within one box size of the domain into [Min, Max)^3,
// independently along each axis.
func (d Domain) Fold(v r3.Vec) r3.Vec {
	return r3.Vec{X: d.FoldCoordinate(v.X), Y: d.FoldCoordinate(v.Y), Z: d.FoldCoordinate(v.Z)}
}
