package hole

import (
	"math"

	"Calcform/internal/calc/dims"
)

type Input struct {
	DiameterM float64 `json:"diameter_m"`
	HeightM   float64 `json:"height_m"`
}

type Result struct {
	RadiusM  float64 `json:"radius_m"`
	VolumeM3 float64 `json:"volume_m3"`
	Notes    string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if err := dims.Check(
		dims.Value{Field: dims.Diameter, V: in.DiameterM},
		dims.Value{Field: dims.Height, V: in.HeightM},
	); err != nil {
		return Result{}, err
	}
	r := in.DiameterM / 2
	return Result{
		RadiusM:  r,
		VolumeM3: math.Pi * r * r * in.HeightM,
		Notes:    "Cylinder: pi x r^2 x H.",
	}, nil
}
