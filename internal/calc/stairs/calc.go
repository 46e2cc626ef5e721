package stairs

import (
	"math"

	"Calcform/internal/calc/dims"
)

type Input struct {
	RunM   float64 `json:"run_m"`
	RiseM  float64 `json:"rise_m"`
	WidthM float64 `json:"width_m"`
	Steps  float64 `json:"steps"`
}

type Result struct {
	StepVolumeM3 float64 `json:"step_volume_m3"`
	VolumeM3     float64 `json:"volume_m3"`
	Notes        string  `json:"notes"`
}

// Calculate uses the stepped-block approximation with no landing term.
func Calculate(in Input) (Result, error) {
	if err := dims.Check(
		dims.Value{Field: dims.Run, V: in.RunM},
		dims.Value{Field: dims.Rise, V: in.RiseM},
		dims.Value{Field: dims.Width, V: in.WidthM},
		dims.Value{Field: dims.Steps, V: in.Steps},
	); err != nil {
		return Result{}, err
	}
	if in.Steps != math.Trunc(in.Steps) {
		return Result{}, &dims.InvalidGeometryError{Reason: "number of steps must be a whole number"}
	}
	step := in.RunM * in.RiseM * in.WidthM
	return Result{
		StepVolumeM3: step,
		VolumeM3:     step * in.Steps,
		Notes:        "Stepped block: run x rise x width x steps.",
	}, nil
}
