package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/godive/types"
	"github.com/notargets/godive/voids"
)

func TestReadPoints(t *testing.T) {
	input := "1 2 3\n" +
		"  -4.5e1\t0.25 7 \n" +
		"1e-3 2E+2 -0 99 extra columns\r\n" +
		"0x1p-2 .5 6."
	pts, err := ReadPoints(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: -45, Y: 0.25, Z: 7},
		{X: 1e-3, Y: 200, Z: 0},
		{X: 0.25, Y: 0.5, Z: 6},
	}, pts)

	pts, err = ReadPoints(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestReadPointsErrors(t *testing.T) {
	var tests = []struct {
		name, input, line string
	}{
		{"two columns", "1 2 3\n4 5\n", "line 2"},
		{"not a number", "1 2 3\n4 5 6\n7 eight 9\n", "line 3"},
		{"empty line", "1 2 3\n\n4 5 6\n", "line 2"},
		{"trailing empty line", "1 2 3\n\n", "line 2"},
		{"comma separated", "1,2,3\n", "line 1"},
		{"infinite", "1 2 3\n1 inf 2\n", "line 2"},
		{"nan", "nan 0 0\n", "line 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadPoints(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrParse))
			assert.Contains(t, err.Error(), tc.line)
		})
	}
}

func TestReadPointsFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "halos.txt")
	require.NoError(t, os.WriteFile(name, []byte("0 0 0\n1 0 0\n0 1 0\n0 0 1\n"), 0644))
	pts, err := ReadPointsFile(name, true)
	require.NoError(t, err)
	assert.Len(t, pts, 4)

	_, err = ReadPointsFile(filepath.Join(dir, "missing.txt"), false)
	assert.True(t, errors.Is(err, types.ErrConfig))

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("0 0 0\nx y z\n"), 0644))
	_, err = ReadPointsFile(bad, false)
	assert.True(t, errors.Is(err, types.ErrParse))
	assert.Contains(t, err.Error(), "x y z")
}

func TestVoidWriter(t *testing.T) {
	_, err := NewOutputFormat(0)
	assert.True(t, errors.Is(err, types.ErrConfig))
	_, err = NewOutputFormat(18)
	assert.True(t, errors.Is(err, types.ErrConfig))

	of, err := NewOutputFormat(DefaultPrecision)
	require.NoError(t, err)
	assert.Equal(t, "0.3333333333", of.Format(1./3))
	assert.Equal(t, "1234567.891", of.Format(1234567.8912))
	assert.Equal(t, "1e+20", of.Format(1e20))
	assert.Equal(t, "-2.5e-07", of.Format(-2.5e-7))
	assert.Equal(t, "0", of.Format(0))

	var out bytes.Buffer
	vw, err := NewVoidWriter(&out, of)
	require.NoError(t, err)
	require.NoError(t, vw.WriteVoid(voids.Void{Center: r3.Vec{X: 0.5, Y: 1, Z: -2}, Radius: 2. / 3}))
	require.NoError(t, vw.WriteVoid(voids.Void{Center: r3.Vec{X: 100, Y: 1e-12, Z: 3}, Radius: 1}))
	assert.Equal(t, 2, vw.Count())
	assert.Empty(t, out.String(), "output is buffered until Flush")
	require.NoError(t, vw.Flush())
	assert.Equal(t, "0.5 1 -2 0.6666666667\n100 1e-12 3 1\n", out.String())

	_, err = NewVoidWriter(&out, OutputFormat{})
	assert.True(t, errors.Is(err, types.ErrConfig))
}
