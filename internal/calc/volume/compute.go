package volume

import (
	"fmt"
	"math"

	"Calcform/internal/calc/curb"
	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/hole"
	"Calcform/internal/calc/hollow"
	"Calcform/internal/calc/slab"
	"Calcform/internal/calc/stairs"
)

// Compute returns the volume in cubic meters for a set already normalized to
// meters, rounded once to two decimals. Missing or non-positive required
// fields stop the computation; nothing is defaulted to zero.
func Compute(kind Kind, set dims.Set) (float64, error) {
	fields, ok := required[kind]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	if err := set.Require(fields...); err != nil {
		return 0, err
	}
	v, err := raw(kind, set)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &dims.InvalidGeometryError{Reason: "volume is too large to compute"}
	}
	return Round(v), nil
}

func raw(kind Kind, set dims.Set) (float64, error) {
	switch kind {
	case Slab:
		res, err := slab.Calculate(slab.Input{
			LengthM: set[dims.Length],
			WidthM:  set[dims.Width],
			HeightM: set[dims.Height],
		})
		return res.VolumeM3, err
	case Hole:
		res, err := hole.Calculate(hole.Input{
			DiameterM: set[dims.Diameter],
			HeightM:   set[dims.Height],
		})
		return res.VolumeM3, err
	case CircularHollow:
		res, err := hollow.Calculate(hollow.Input{
			OuterDiameterM: set[dims.OuterDiameter],
			InnerDiameterM: set[dims.InnerDiameter],
			HeightM:        set[dims.Height],
		})
		return res.VolumeM3, err
	case CurbGutter:
		res, err := curb.Calculate(curb.Input{
			CurbDepthM:     set[dims.CurbDepth],
			CurbHeightM:    set[dims.CurbHeight],
			FlagThicknessM: set[dims.FlagThickness],
			GutterWidthM:   set[dims.GutterWidth],
			LengthM:        set[dims.Length],
		})
		return res.VolumeM3, err
	case Stairs:
		res, err := stairs.Calculate(stairs.Input{
			RunM:   set[dims.Run],
			RiseM:  set[dims.Rise],
			WidthM: set[dims.Width],
			Steps:  set[dims.Steps],
		})
		return res.VolumeM3, err
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

// Round rounds to two decimals, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
