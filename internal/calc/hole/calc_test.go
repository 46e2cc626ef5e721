package hole

import (
	"errors"
	"math"
	"testing"

	"Calcform/internal/calc/dims"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{DiameterM: 0.6, HeightM: 3})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, res.RadiusM, 1e-12)
	assert.InDelta(t, math.Pi*0.09*3, res.VolumeM3, 1e-12)
}

func TestCalculate_MissingDiameter(t *testing.T) {
	_, err := Calculate(Input{HeightM: 3})
	var missing *dims.MissingDimensionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, dims.Diameter, missing.Field)
}
