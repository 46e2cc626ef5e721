package entry

import (
	"testing"

	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/volume"
	"Calcform/internal/units"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		kind  volume.Kind
		label string
		want  dims.Field
		ok    bool
	}{
		{volume.Slab, "Length (L)", dims.Length, true},
		{volume.Slab, "Width (W)", dims.Width, true},
		{volume.Slab, "Height/Thickness (H)", dims.Height, true},
		{volume.Slab, "Depth", dims.Height, true},
		{volume.Hole, "Diameter (D)", dims.Diameter, true},
		{volume.CircularHollow, "Outer Diameter", dims.OuterDiameter, true},
		{volume.CircularHollow, "inner diameter (d)", dims.InnerDiameter, true},
		{volume.CurbGutter, "Curb Depth", dims.CurbDepth, true},
		{volume.CurbGutter, "Gutter Width", dims.GutterWidth, true},
		{volume.Stairs, "Number of Steps", dims.Steps, true},
		{volume.Stairs, "Rise", dims.Rise, true},
		{volume.Slab, "Diameter", "", false},
		{volume.CurbGutter, "Depth", "", false},
		{volume.Slab, "Colour", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.label, func(t *testing.T) {
			got, ok := Resolve(tt.kind, tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_NormalizesToMeters(t *testing.T) {
	p, err := Parse(volume.Slab, []FieldInput{
		{Label: "Length (L)", Value: "10", Unit: "ft"},
		{Label: "Width (W)", Value: "3", Unit: "m"},
		{Label: "Height/Thickness (H)", Value: "15", Unit: "cm"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.048, p.Set[dims.Length], 1e-12)
	assert.Equal(t, 3.0, p.Set[dims.Width])
	assert.InDelta(t, 0.15, p.Set[dims.Height], 1e-12)

	require.Len(t, p.Dimensions, 3)
	assert.Equal(t, dims.Length, p.Dimensions[0].Field)
	assert.Equal(t, units.Feet, p.Dimensions[0].Unit)
	assert.Equal(t, "length: 10.000 ft", p.Dimensions[0].Text())
}

func TestParse_BlankAndInvalidAreMissing(t *testing.T) {
	p, err := Parse(volume.Slab, []FieldInput{
		{Label: "Length", Value: "4", Unit: "m"},
		{Label: "Width", Value: "", Unit: "m"},
		{Label: "Height", Value: "abc", Unit: "m"},
	})
	require.NoError(t, err)
	assert.NotContains(t, p.Set, dims.Width)
	assert.NotContains(t, p.Set, dims.Height)
	assert.Equal(t, "width: -", p.Dimensions[1].Text())
	assert.Equal(t, `height: "abc"`, p.Dimensions[2].Text())

	_, err = volume.Compute(volume.Slab, p.Set)
	assert.EqualError(t, err, "missing dimension: width")
}

func TestParse_NonFiniteIsMissing(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Infinity", "+Inf", "-inf", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			p, err := Parse(volume.Slab, []FieldInput{
				{Label: "Length", Value: raw, Unit: "m"},
				{Label: "Width", Value: "3", Unit: "m"},
				{Label: "Height", Value: "0.15", Unit: "m"},
			})
			require.NoError(t, err)
			assert.NotContains(t, p.Set, dims.Length)
			require.Len(t, p.Dimensions, 3)
			assert.False(t, p.Dimensions[0].OK)
			assert.Zero(t, p.Dimensions[0].Value)

			_, err = volume.Compute(volume.Slab, p.Set)
			assert.EqualError(t, err, "missing dimension: length")
		})
	}
}

func TestParse_LaterFieldWins(t *testing.T) {
	p, err := Parse(volume.Hole, []FieldInput{
		{Label: "Diameter", Value: "1", Unit: "m"},
		{Label: "Diameter", Value: "60", Unit: "cm"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, p.Set[dims.Diameter], 1e-12)
	assert.Len(t, p.Dimensions, 1)
}

func TestParse_StepsIgnoreUnit(t *testing.T) {
	p, err := Parse(volume.Stairs, []FieldInput{
		{Label: "Run", Value: "12", Unit: "in"},
		{Label: "Number of Steps", Value: "4", Unit: "ft"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.Set[dims.Steps])
	assert.InDelta(t, 0.3048, p.Set[dims.Run], 1e-12)
}

func TestParse_UnsupportedUnit(t *testing.T) {
	_, err := Parse(volume.Slab, []FieldInput{{Label: "Length", Value: "4", Unit: "furlongs"}})
	assert.ErrorIs(t, err, units.ErrUnsupportedUnit)
}

func TestParse_Unmatched(t *testing.T) {
	p, err := Parse(volume.Slab, []FieldInput{{Label: "Slump", Value: "100", Unit: "mm"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Slump"}, p.Unmatched)
	assert.Empty(t, p.Set)
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ParseQuantity(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"0", "-2", "1.5", "two"} {
		_, err := ParseQuantity(bad)
		assert.ErrorIs(t, err, ErrInvalidQuantity, bad)
	}
}
