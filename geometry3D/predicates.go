package geometry3D

import (
	"math"
	"math/big"
	"sort"

	georr3 "github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
Orientation and in-sphere predicates decide the topology of the triangulation,
so they must never return a wrong sign. Each predicate first evaluates its
determinant in float64 and accepts the sign when it exceeds Shewchuk's static
error bound for that expression. Otherwise it recomputes the determinant
exactly with big.Float vectors, which is slow but only needed for nearly
degenerate configurations.
*/

const epsilon = 0x1p-53

var (
	orientErrBound   = (7.0 + 56.0*epsilon) * epsilon
	inSphereErrBound = (16.0 + 224.0*epsilon) * epsilon
)

func precise(v r3.Vec) georr3.PreciseVector {
	return georr3.NewPreciseVector(v.X, v.Y, v.Z)
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func isZero(v georr3.PreciseVector) bool {
	return v.X.Sign() == 0 && v.Y.Sign() == 0 && v.Z.Sign() == 0
}

// Orient returns +1 if d lies on the positive side of the plane through a, b
// and c (the sign of det[b-a, c-a, d-a]), -1 if it lies on the negative side
// and 0 if the four points are coplanar.
func Orient(a, b, c, d r3.Vec) int {
	if s := triageOrient(a, b, c, d); s != 0 {
		return s
	}
	return exactOrient(a, b, c, d)
}

func triageOrient(a, b, c, d r3.Vec) int {
	adx, ady, adz := a.X-d.X, a.Y-d.Y, a.Z-d.Z
	bdx, bdy, bdz := b.X-d.X, b.Y-d.Y, b.Z-d.Z
	cdx, cdy, cdz := c.X-d.X, c.Y-d.Y, c.Z-d.Z

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	cdxady, adxcdy := cdx*ady, adx*cdy
	adxbdy, bdxady := adx*bdy, bdx*ady

	det := adz*(bdxcdy-cdxbdy) + bdz*(cdxady-adxcdy) + cdz*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*math.Abs(adz) +
		(math.Abs(cdxady)+math.Abs(adxcdy))*math.Abs(bdz) +
		(math.Abs(adxbdy)+math.Abs(bdxady))*math.Abs(cdz)
	if math.Abs(det) > orientErrBound*permanent {
		// det[a-d, b-d, c-d] has the opposite sign of det[b-a, c-a, d-a]
		return -sign(det)
	}
	return 0
}

func exactOrient(a, b, c, d r3.Vec) int {
	pa := precise(a)
	u, v, w := precise(b).Sub(pa), precise(c).Sub(pa), precise(d).Sub(pa)
	return u.Dot(v.Cross(w)).Sign()
}

// Collinear reports whether a, b and c lie on a common line.
func Collinear(a, b, c r3.Vec) bool {
	pa := precise(a)
	return isZero(precise(b).Sub(pa).Cross(precise(c).Sub(pa)))
}

// InSphere returns +1 if e lies strictly inside the sphere through a, b, c and
// d, -1 if it lies outside and 0 if it lies on the sphere. The tetrahedron
// abcd must be positively oriented (Orient(a, b, c, d) > 0), otherwise the
// sign is reversed.
func InSphere(a, b, c, d, e r3.Vec) int {
	if s := triageInSphere(a, b, c, d, e); s != 0 {
		return s
	}
	return exactInSphere(a, b, c, d, e)
}

func triageInSphere(a, b, c, d, e r3.Vec) int {
	aex, aey, aez := a.X-e.X, a.Y-e.Y, a.Z-e.Z
	bex, bey, bez := b.X-e.X, b.Y-e.Y, b.Z-e.Z
	cex, cey, cez := c.X-e.X, c.Y-e.Y, c.Z-e.Z
	dex, dey, dez := d.X-e.X, d.Y-e.Y, d.Z-e.Z

	aexbey, bexaey := aex*bey, bex*aey
	bexcey, cexbey := bex*cey, cex*bey
	cexdey, dexcey := cex*dey, dex*cey
	dexaey, aexdey := dex*aey, aex*dey
	aexcey, cexaey := aex*cey, cex*aey
	bexdey, dexbey := bex*dey, dex*bey

	ab, bc, cd, da := aexbey-bexaey, bexcey-cexbey, cexdey-dexcey, dexaey-aexdey
	ac, bd := aexcey-cexaey, bexdey-dexbey

	abc := aez*bc - bez*ac + cez*ab
	bcd := bez*cd - cez*bd + dez*bc
	cda := cez*da + dez*ac + aez*cd
	dab := dez*ab + aez*bd + bez*da

	alift := aex*aex + aey*aey + aez*aez
	blift := bex*bex + bey*bey + bez*bez
	clift := cex*cex + cey*cey + cez*cez
	dlift := dex*dex + dey*dey + dez*dez

	det := (dlift*abc - clift*dab) + (blift*cda - alift*bcd)

	abs := math.Abs
	aez, bez, cez, dez = abs(aez), abs(bez), abs(cez), abs(dez)
	aexbey, bexaey = abs(aexbey), abs(bexaey)
	bexcey, cexbey = abs(bexcey), abs(cexbey)
	cexdey, dexcey = abs(cexdey), abs(dexcey)
	dexaey, aexdey = abs(dexaey), abs(aexdey)
	aexcey, cexaey = abs(aexcey), abs(cexaey)
	bexdey, dexbey = abs(bexdey), abs(dexbey)
	permanent := ((cexdey+dexcey)*bez+(dexbey+bexdey)*cez+(bexcey+cexbey)*dez)*alift +
		((dexaey+aexdey)*cez+(aexcey+cexaey)*dez+(cexdey+dexcey)*aez)*blift +
		((aexbey+bexaey)*dez+(bexdey+dexbey)*aez+(dexaey+aexdey)*bez)*clift +
		((bexcey+cexbey)*aez+(cexaey+aexcey)*bez+(aexbey+bexaey)*cez)*dlift
	if abs(det) > inSphereErrBound*permanent {
		// det is positive inside for the opposite orientation convention
		return -sign(det)
	}
	return 0
}

func exactInSphere(a, b, c, d, e r3.Vec) int {
	pe := precise(e)
	A, B, C, D := precise(a).Sub(pe), precise(b).Sub(pe), precise(c).Sub(pe), precise(d).Sub(pe)
	det3 := func(x, y, z georr3.PreciseVector) *big.Float {
		return x.Dot(y.Cross(z))
	}
	mul := func(x, y *big.Float) *big.Float {
		return new(big.Float).Mul(x, y)
	}
	det := mul(A.Norm2(), det3(B, C, D))
	det.Sub(det, mul(B.Norm2(), det3(A, C, D)))
	det.Add(det, mul(C.Norm2(), det3(A, B, D)))
	det.Sub(det, mul(D.Norm2(), det3(A, B, C)))
	return det.Sign()
}

// LexLess orders points by x, then y, then z.
func LexLess(p, q r3.Vec) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.Z < q.Z
}

// InSpherePerturbed is InSphere with exact ties broken by a symbolic
// perturbation, so it never returns 0 for a non-flat tetrahedron and five
// distinct points. The perturbation only depends on the lexicographic order of
// the points, so translated copies of a configuration are decided the same
// way.
func InSpherePerturbed(a, b, c, d, e r3.Vec) int {
	if s := InSphere(a, b, c, d, e); s != 0 {
		return s
	}
	pts := [5]r3.Vec{a, b, c, d, e}
	order := [5]int{0, 1, 2, 3, 4}
	sort.Slice(order[:], func(i, j int) bool {
		return LexLess(pts[order[i]], pts[order[j]])
	})
	// Walk the perturbation terms from the largest point down and return the
	// sign of the first one with a non-zero coefficient.
	for i := 4; i > 1; i-- {
		var o int
		switch order[i] {
		case 4:
			return -1
		case 3:
			o = Orient(a, b, c, e)
		case 2:
			o = Orient(a, b, e, d)
		case 1:
			o = Orient(a, e, c, d)
		case 0:
			o = Orient(e, b, c, d)
		}
		if o != 0 {
			return o
		}
	}
	return -1
}
