package geometry3D

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

var unitTet = [4]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}

func TestOrient(t *testing.T) {
	a, b, c, d := unitTet[0], unitTet[1], unitTet[2], unitTet[3]
	assert.Equal(t, 1, Orient(a, b, c, d))
	assert.Equal(t, -1, Orient(b, a, c, d))
	assert.Equal(t, 0, Orient(a, b, c, r3.Vec{X: 0.3, Y: 0.7}))

	// Points on the plane z = x, with coordinates far apart in magnitude so the
	// float determinant is dominated by round-off.
	onPlane := []r3.Vec{
		{X: 0.1, Y: 0.3, Z: 0.1},
		{X: 0.7, Y: 0.2, Z: 0.7},
		{X: 1e8 + 0.5, Y: 3, Z: 1e8 + 0.5},
		{X: 0.3, Y: 1e-3, Z: 0.3},
	}
	assert.Equal(t, 0, Orient(onPlane[0], onPlane[1], onPlane[2], onPlane[3]))

	above := onPlane[3]
	above.Z = math.Nextafter(above.Z, math.Inf(1))
	far := onPlane[3]
	far.Z += 1
	expected := Orient(onPlane[0], onPlane[1], onPlane[2], far)
	assert.NotEqual(t, 0, expected)
	assert.Equal(t, expected, Orient(onPlane[0], onPlane[1], onPlane[2], above))
}

func TestOrientFilterAgreesWithExact(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		var p [4]r3.Vec
		for k := range p {
			p[k] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		}
		if s := triageOrient(p[0], p[1], p[2], p[3]); s != 0 {
			assert.Equal(t, exactOrient(p[0], p[1], p[2], p[3]), s)
		}
		if s := triageInSphere(p[0], p[1], p[2], p[3], unitTet[1]); s != 0 {
			assert.Equal(t, exactInSphere(p[0], p[1], p[2], p[3], unitTet[1]), s)
		}
	}
}

func TestCollinear(t *testing.T) {
	assert.True(t, Collinear(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 3, Y: 3, Z: 3}))
	assert.False(t, Collinear(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 3, Y: 3, Z: 3.0000001}))
}

func TestInSphere(t *testing.T) {
	a, b, c, d := unitTet[0], unitTet[1], unitTet[2], unitTet[3]
	assert.Equal(t, 1, InSphere(a, b, c, d, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}))
	assert.Equal(t, -1, InSphere(a, b, c, d, r3.Vec{X: 2, Y: 2, Z: 2}))
	// (1,1,1) is the far corner of the unit cube, on the same sphere
	assert.Equal(t, 0, InSphere(a, b, c, d, r3.Vec{X: 1, Y: 1, Z: 1}))
	// reversing the orientation reverses the answer
	assert.Equal(t, -1, InSphere(b, a, c, d, r3.Vec{X: 0.25, Y: 0.25, Z: 0.25}))
}

func TestInSpherePerturbed(t *testing.T) {
	a, b, c, d := unitTet[0], unitTet[1], unitTet[2], unitTet[3]
	e := r3.Vec{X: 1, Y: 1, Z: 1}
	s := InSpherePerturbed(a, b, c, d, e)
	assert.NotEqual(t, 0, s)
	// e is the lexicographically largest point, so it is pushed outside
	assert.Equal(t, -1, s)

	// translated copies are decided identically
	shift := r3.Vec{X: 8, Y: -16, Z: 32}
	assert.Equal(t, s, InSpherePerturbed(r3.Add(a, shift), r3.Add(b, shift), r3.Add(c, shift),
		r3.Add(d, shift), r3.Add(e, shift)))

	// the non-degenerate answer is untouched
	assert.Equal(t, 1, InSpherePerturbed(a, b, c, d, r3.Vec{X: 0.2, Y: 0.2, Z: 0.2}))

	// Two positively oriented cells sharing the facet bcd of a cospherical
	// configuration: each sees the other's apex on the same side.
	f := r3.Vec{X: 1, Y: 1, Z: 0}
	assert.Equal(t, 1, Orient(b, f, c, d))
	s1 := InSpherePerturbed(a, b, c, d, f)
	s2 := InSpherePerturbed(b, f, c, d, a)
	assert.Equal(t, -1, s1)
	assert.Equal(t, s1, s2)
}

func TestLexLess(t *testing.T) {
	assert.True(t, LexLess(r3.Vec{X: 0, Y: 5}, r3.Vec{X: 1}))
	assert.True(t, LexLess(r3.Vec{X: 1, Y: 0, Z: 9}, r3.Vec{X: 1, Y: 1}))
	assert.True(t, LexLess(r3.Vec{X: 1, Y: 1, Z: 0}, r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.False(t, LexLess(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 1, Y: 1, Z: 1}))
}
