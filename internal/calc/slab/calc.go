package slab

import (
	"Calcform/internal/calc/dims"
)

type Input struct {
	LengthM float64 `json:"length_m"`
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

type Result struct {
	VolumeM3 float64 `json:"volume_m3"`
	Notes    string  `json:"notes"`
}

// Calculate returns the unrounded volume of a rectangular block.
// Walls, footings and sidewalks share this formula.
func Calculate(in Input) (Result, error) {
	if err := dims.Check(
		dims.Value{Field: dims.Length, V: in.LengthM},
		dims.Value{Field: dims.Width, V: in.WidthM},
		dims.Value{Field: dims.Height, V: in.HeightM},
	); err != nil {
		return Result{}, err
	}
	return Result{
		VolumeM3: in.LengthM * in.WidthM * in.HeightM,
		Notes:    "Rectangular block: L x W x H.",
	}, nil
}
