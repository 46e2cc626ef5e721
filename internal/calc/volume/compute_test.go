package volume

import (
	"errors"
	"math"
	"testing"

	"Calcform/internal/calc/dims"
	"Calcform/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		set  dims.Set
		want float64
	}{
		{"slab", Slab, dims.Set{dims.Length: 4, dims.Width: 3, dims.Height: 0.15}, 1.80},
		{"hole", Hole, dims.Set{dims.Diameter: 0.6, dims.Height: 3}, 0.85},
		{"hollow", CircularHollow, dims.Set{dims.OuterDiameter: 1.5, dims.InnerDiameter: 1, dims.Height: 2}, 1.96},
		{"curb", CurbGutter, dims.Set{
			dims.CurbDepth:     0.15,
			dims.CurbHeight:    0.3,
			dims.FlagThickness: 0.1,
			dims.GutterWidth:   0.5,
			dims.Length:        10,
		}, 1.10},
		{"stairs", Stairs, dims.Set{dims.Run: 0.3, dims.Rise: 0.18, dims.Width: 1.2, dims.Steps: 5}, 0.32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.kind, tt.set)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_MissingDimension(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		set  dims.Set
		want dims.Field
	}{
		{"slab without height", Slab, dims.Set{dims.Length: 4, dims.Width: 3}, dims.Height},
		{"slab empty names first field", Slab, dims.Set{}, dims.Length},
		{"zero counts as missing", Slab, dims.Set{dims.Length: 4, dims.Width: 0, dims.Height: 0.15}, dims.Width},
		{"negative counts as missing", Hole, dims.Set{dims.Diameter: -1, dims.Height: 3}, dims.Diameter},
		{"nan counts as missing", Hole, dims.Set{dims.Diameter: 0.6, dims.Height: math.NaN()}, dims.Height},
		{"stairs without steps", Stairs, dims.Set{dims.Run: 0.3, dims.Rise: 0.18, dims.Width: 1.2}, dims.Steps},
		{"curb without flag", CurbGutter, dims.Set{dims.CurbDepth: 0.15, dims.CurbHeight: 0.3, dims.GutterWidth: 0.5, dims.Length: 10}, dims.FlagThickness},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Compute(tt.kind, tt.set)
			assert.Zero(t, v)
			var missing *dims.MissingDimensionError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.want, missing.Field)
			assert.True(t, IsUserError(err))
		})
	}
}

func TestCompute_InvalidHollow(t *testing.T) {
	_, err := Compute(CircularHollow, dims.Set{dims.OuterDiameter: 1, dims.InnerDiameter: 1.5, dims.Height: 2})
	var invalid *dims.InvalidGeometryError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, IsUserError(err))
}

func TestCompute_UnknownKind(t *testing.T) {
	_, err := Compute(Kind("pyramid"), dims.Set{dims.Length: 1})
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.False(t, IsUserError(err))
}

func TestCompute_UnitInvariance(t *testing.T) {
	set := dims.Set{}
	for f, v := range map[dims.Field]float64{dims.Length: 6.5617, dims.Width: 9.8425, dims.Height: 1.6404} {
		m, err := units.ToBase(v, units.Feet)
		require.NoError(t, err)
		set[f] = m
	}
	got, err := Compute(Slab, set)
	require.NoError(t, err)
	assert.InDelta(t, 3.00, got, 0.01)
}

func TestCompute_NotFinite(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		set  dims.Set
	}{
		{"slab overflow", Slab, dims.Set{dims.Length: 1e200, dims.Width: 1e200, dims.Height: 1e200}},
		{"hollow overflow", CircularHollow, dims.Set{dims.OuterDiameter: 1e300, dims.InnerDiameter: 1e299, dims.Height: 1e10}},
		{"stairs overflow", Stairs, dims.Set{dims.Run: 1e300, dims.Rise: 1e300, dims.Width: 1, dims.Steps: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Compute(tt.kind, tt.set)
			assert.Zero(t, v)
			var invalid *dims.InvalidGeometryError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.True(t, IsUserError(err))
		})
	}
}

func TestCompute_InfiniteInputIsMissing(t *testing.T) {
	_, err := Compute(Slab, dims.Set{dims.Length: math.Inf(1), dims.Width: 3, dims.Height: 0.15})
	var missing *dims.MissingDimensionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, dims.Length, missing.Field)
}

func TestCompute_Idempotent(t *testing.T) {
	set := dims.Set{dims.Diameter: 0.6, dims.Height: 3}
	first, err := Compute(Hole, set)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Compute(Hole, set)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.85, Round(0.848230))
	assert.Equal(t, 1.8, Round(1.7999999999999998))
	assert.Equal(t, 0.13, Round(0.125))
	assert.Equal(t, 2.0, Round(1.999))
}
