package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVoids(t *testing.T) {
	var input InputParametersVoids
	require.NoError(t, input.Parse([]byte(Example)))
	assert.Equal(t, "Millennium halos", input.Title)
	assert.Equal(t, "halos.txt", input.InputFile)
	assert.Equal(t, "voids.txt", input.OutputFile)
	assert.True(t, input.Periodic())
	assert.Equal(t, 0., input.BoxMin)
	assert.Equal(t, 500., *input.BoxMax)
	assert.Equal(t, 10, input.Precision)
	input.Print()

	fileInput := []byte(`
Title: Bounded
InputFile: galaxies.txt
OutputFile: out.txt
`)
	input = InputParametersVoids{}
	require.NoError(t, input.Parse(fileInput))
	assert.False(t, input.Periodic())
	assert.Equal(t, 0, input.Precision)
	input.Print()

	assert.Error(t, input.Parse([]byte("BoxMax: [1, 2]")))
}
