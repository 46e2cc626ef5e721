package curb

import (
	"Calcform/internal/calc/dims"
)

type Input struct {
	CurbDepthM     float64 `json:"curb_depth_m"`
	CurbHeightM    float64 `json:"curb_height_m"`
	FlagThicknessM float64 `json:"flag_thickness_m"`
	GutterWidthM   float64 `json:"gutter_width_m"`
	LengthM        float64 `json:"length_m"`
}

type Result struct {
	CurbVolumeM3   float64 `json:"curb_volume_m3"`
	GutterVolumeM3 float64 `json:"gutter_volume_m3"`
	VolumeM3       float64 `json:"volume_m3"`
	Notes          string  `json:"notes"`
}

// Calculate sweeps the curb cross-section (depth x (height + flag)) and the
// gutter strip (width x flag) along the run length.
func Calculate(in Input) (Result, error) {
	if err := dims.Check(
		dims.Value{Field: dims.CurbDepth, V: in.CurbDepthM},
		dims.Value{Field: dims.CurbHeight, V: in.CurbHeightM},
		dims.Value{Field: dims.FlagThickness, V: in.FlagThicknessM},
		dims.Value{Field: dims.GutterWidth, V: in.GutterWidthM},
		dims.Value{Field: dims.Length, V: in.LengthM},
	); err != nil {
		return Result{}, err
	}
	curbV := in.CurbDepthM * (in.CurbHeightM + in.FlagThicknessM) * in.LengthM
	gutterV := in.GutterWidthM * in.FlagThicknessM * in.LengthM
	return Result{
		CurbVolumeM3:   curbV,
		GutterVolumeM3: gutterV,
		VolumeM3:       curbV + gutterV,
		Notes:          "Curb section plus gutter flag, swept along length.",
	}, nil
}
