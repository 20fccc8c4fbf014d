package geometry3D

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
)

func TestNewDomain(t *testing.T) {
	d, err := NewDomain(0, 10)
	require.NoError(t, err)
	assert.Equal(t, 10., d.Size())

	_, err = NewDomain(5, 2)
	assert.True(t, errors.Is(err, types.ErrConfig))
	_, err = NewDomain(3, 3)
	assert.True(t, errors.Is(err, types.ErrConfig))
	_, err = NewDomain(math.NaN(), 3)
	assert.True(t, errors.Is(err, types.ErrConfig))
}

func TestFold(t *testing.T) {
	d := Domain{Min: -1, Max: 3}
	assert.Equal(t, 0., d.FoldCoordinate(0))
	assert.Equal(t, -1., d.FoldCoordinate(-1))
	assert.Equal(t, -1., d.FoldCoordinate(3))
	assert.Equal(t, 2.5, d.FoldCoordinate(-1.5))
	assert.Equal(t, 0.5, d.FoldCoordinate(4.5))
	// a single wrap only
	assert.Equal(t, 4., d.FoldCoordinate(8))

	v := d.Fold(r3.Vec{X: -2, Y: 1, Z: 6.5})
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 2.5}, v)
	assert.True(t, d.Contains(v))

	// round-off would land this on Max, which is the same point as Min
	unit := Domain{Min: 0, Max: 1}
	tiny := -1e-20
	assert.Equal(t, 0., unit.FoldCoordinate(tiny))
	assert.True(t, unit.Contains(unit.Fold(r3.Vec{X: tiny, Y: tiny, Z: tiny})))
}

func TestPointSet(t *testing.T) {
	in := []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 5, Z: 0}, {X: 4, Y: -2, Z: 1}}
	ps, err := NewPointSet(in)
	require.NoError(t, err)
	assert.Equal(t, 3, ps.Len())
	assert.Equal(t, in[1], ps.At(1))
	in[1].X = 100
	assert.Equal(t, -1., ps.At(1).X, "point set must not alias its input")

	lo, hi := ps.Bounds()
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: 0}, lo)
	assert.Equal(t, r3.Vec{X: 4, Y: 5, Z: 3}, hi)

	_, err = NewPointSet([]r3.Vec{{X: 1, Y: math.Inf(1), Z: 0}})
	assert.True(t, errors.Is(err, types.ErrParse))
}
