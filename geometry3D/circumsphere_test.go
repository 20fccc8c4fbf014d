package geometry3D

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
)

func TestCircumsphereUnitTet(t *testing.T) {
	cs, err := NewCircumsphere(unitTet)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, cs.Center)
	assert.InDelta(t, math.Sqrt(3)/2, cs.Radius, 1e-15)
}

func TestCircumsphereRegularTet(t *testing.T) {
	corners := [4]r3.Vec{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}}
	shift := r3.Vec{X: 100, Y: -3, Z: 7.5}
	for i := range corners {
		corners[i] = r3.Add(corners[i], shift)
	}
	cs, err := NewCircumsphere(corners)
	require.NoError(t, err)
	assert.InDelta(t, shift.X, cs.Center.X, 1e-12)
	assert.InDelta(t, shift.Y, cs.Center.Y, 1e-12)
	assert.InDelta(t, shift.Z, cs.Center.Z, 1e-12)
	assert.InDelta(t, math.Sqrt(3), cs.Radius, 1e-12)
}

// The center solves 2(p_i - p_0).x = |p_i|^2 - |p_0|^2, i = 1..3.
func solveCenter(t *testing.T, c [4]r3.Vec) r3.Vec {
	A := mat.NewDense(3, 3, nil)
	b := mat.NewVecDense(3, nil)
	for i := 1; i < 4; i++ {
		d := r3.Sub(c[i], c[0])
		A.SetRow(i-1, []float64{2 * d.X, 2 * d.Y, 2 * d.Z})
		b.SetVec(i-1, r3.Norm2(c[i])-r3.Norm2(c[0]))
	}
	var x mat.VecDense
	require.NoError(t, x.SolveVec(A, b))
	return r3.Vec{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}
}

func TestCircumsphereMatchesLinearSolve(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for n := 0; n < 200; n++ {
		var c [4]r3.Vec
		for k := range c {
			c[k] = r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		}
		if math.Abs(TetraVolume(c)) < 1e-3 {
			continue
		}
		cs, err := NewCircumsphere(c)
		require.NoError(t, err)
		x := solveCenter(t, c)
		assert.InDelta(t, 0, r3.Norm(r3.Sub(x, cs.Center)), 1e-8)
		for k := range c {
			assert.InDelta(t, cs.Radius, r3.Norm(r3.Sub(c[k], cs.Center)), 1e-10)
		}
	}
}

func TestCircumsphereFlat(t *testing.T) {
	flat := [4]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}}
	_, err := NewCircumsphere(flat)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrGeometry))
	assert.Equal(t, types.ErrGeometry, errors.Cause(err))
}

func TestTetraVolume(t *testing.T) {
	assert.InDelta(t, 1./6., TetraVolume(unitTet), 1e-15)
	swapped := unitTet
	swapped[0], swapped[1] = swapped[1], swapped[0]
	assert.InDelta(t, -1./6., TetraVolume(swapped), 1e-15)
}

func TestCircumsphereContains(t *testing.T) {
	cs := Circumsphere{Center: r3.Vec{}, Radius: 1}
	assert.True(t, cs.Contains(r3.Vec{X: 0.5}, 1e-12))
	assert.False(t, cs.Contains(r3.Vec{X: 1}, 1e-12))
	assert.False(t, cs.Contains(r3.Vec{X: 2}, 1e-12))
}
