package hollow

import (
	"math"

	"Calcform/internal/calc/dims"
)

type Input struct {
	OuterDiameterM float64 `json:"outer_diameter_m"`
	InnerDiameterM float64 `json:"inner_diameter_m"`
	HeightM        float64 `json:"height_m"`
}

type Result struct {
	WallThicknessM float64 `json:"wall_thickness_m"`
	VolumeM3       float64 `json:"volume_m3"`
	Notes          string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if err := dims.Check(
		dims.Value{Field: dims.OuterDiameter, V: in.OuterDiameterM},
		dims.Value{Field: dims.InnerDiameter, V: in.InnerDiameterM},
		dims.Value{Field: dims.Height, V: in.HeightM},
	); err != nil {
		return Result{}, err
	}
	if in.OuterDiameterM <= in.InnerDiameterM {
		return Result{}, &dims.InvalidGeometryError{Reason: "outer diameter must be greater than inner diameter"}
	}
	ro := in.OuterDiameterM / 2
	ri := in.InnerDiameterM / 2
	return Result{
		WallThicknessM: ro - ri,
		VolumeM3:       math.Pi * (ro*ro - ri*ri) * in.HeightM,
		Notes:          "Hollow cylinder: pi x (R^2 - r^2) x H.",
	}, nil
}
