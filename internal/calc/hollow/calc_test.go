package hollow

import (
	"errors"
	"math"
	"testing"

	"Calcform/internal/calc/dims"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{OuterDiameterM: 1.5, InnerDiameterM: 1, HeightM: 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.25, res.WallThicknessM, 1e-12)
	assert.InDelta(t, math.Pi*(0.5625-0.25)*2, res.VolumeM3, 1e-12)
}

func TestCalculate_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name         string
		outer, inner float64
	}{
		{"inner larger", 1, 1.5},
		{"equal", 1.2, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(Input{OuterDiameterM: tt.outer, InnerDiameterM: tt.inner, HeightM: 2})
			var invalid *dims.InvalidGeometryError
			require.True(t, errors.As(err, &invalid))
		})
	}
}

func TestCalculate_MissingBeforeGeometry(t *testing.T) {
	_, err := Calculate(Input{OuterDiameterM: 1, InnerDiameterM: 1.5})
	var missing *dims.MissingDimensionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, dims.Height, missing.Field)
}
