package geometry3D

import (
	"math/big"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
)

// quoPrec is the working precision, in bits, of the circumcenter quotient.
// Everything before the division is exact.
const quoPrec = 128

// Circumsphere is the sphere through the four corners of a tetrahedron.
type Circumsphere struct {
	Center r3.Vec
	Radius float64
}

/*
NewCircumsphere computes the circumcenter and circumradius of a tetrahedron.

With u, v, w the edge vectors from the first corner a, the center is

	a + (|u|^2 (v x w) + |v|^2 (w x u) + |w|^2 (u x v)) / (2 u.(v x w))

The numerator and the determinant are formed exactly; the quotient, the
shift back to a and the square root of the radius are evaluated at quoPrec
bits and rounded once to float64. A flat tetrahedron has no circumsphere and
returns ErrGeometry.
*/
func NewCircumsphere(corners [4]r3.Vec) (cs Circumsphere, err error) {
	pa := precise(corners[0])
	u, v, w := precise(corners[1]).Sub(pa), precise(corners[2]).Sub(pa), precise(corners[3]).Sub(pa)
	vw, wu, uv := v.Cross(w), w.Cross(u), u.Cross(v)
	den := u.Dot(vw)
	if den.Sign() == 0 {
		err = errors.Wrapf(types.ErrGeometry, "flat tetrahedron %v has no circumcenter", corners)
		return
	}
	den.Mul(den, big.NewFloat(2))
	num := vw.Mul(u.Norm2()).Add(wu.Mul(v.Norm2())).Add(uv.Mul(w.Norm2()))

	var (
		offset [3]*big.Float
		r2     = new(big.Float).SetPrec(quoPrec)
		center [3]float64
	)
	for i, x := range [3]*big.Float{num.X, num.Y, num.Z} {
		offset[i] = new(big.Float).SetPrec(quoPrec).Quo(x, den)
		r2.Add(r2, new(big.Float).SetPrec(quoPrec).Mul(offset[i], offset[i]))
	}
	for i, x := range [3]*big.Float{pa.X, pa.Y, pa.Z} {
		center[i], _ = new(big.Float).SetPrec(quoPrec).Add(offset[i], x).Float64()
	}
	cs.Center = r3.Vec{X: center[0], Y: center[1], Z: center[2]}
	cs.Radius, _ = new(big.Float).SetPrec(quoPrec).Sqrt(r2).Float64()
	return
}

// Contains reports whether p lies strictly inside the sphere, up to a
// relative tolerance on the radius.
func (cs Circumsphere) Contains(p r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(p, cs.Center)) < cs.Radius*(1-tol)
}

// TetraVolume returns the signed volume of a tetrahedron, positive when the
// corners are positively oriented.
func TetraVolume(corners [4]r3.Vec) float64 {
	u := r3.Sub(corners[1], corners[0])
	v := r3.Sub(corners[2], corners[0])
	w := r3.Sub(corners[3], corners[0])
	return r3.Dot(u, r3.Cross(v, w)) / 6
}
