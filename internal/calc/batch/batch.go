package batch

import (
	"fmt"

	"Calcform/internal/calc/entry"
	"Calcform/internal/calc/volume"
)

type Input struct {
	Items []entry.CalcInput `json:"items"`
}

type Result struct {
	Results     []entry.CalcResult `json:"results"`
	TotalM3     float64            `json:"total_m3"`
	FailedCount int                `json:"failed_count"`
}

// Calculate evaluates every item independently. A failing item keeps its
// place in the output with the error set; the rest still run.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]entry.CalcResult, 0, len(in.Items))}
	var total float64
	for _, item := range in.Items {
		res, err := entry.Evaluate(item)
		if err != nil {
			res = entry.CalcResult{Kind: volume.Kind(item.Kind), Label: item.Label, Error: err.Error()}
		}
		if res.Error != "" {
			out.FailedCount++
		} else {
			total += res.VolumeM3
		}
		out.Results = append(out.Results, res)
	}
	out.TotalM3 = volume.Round(total)
	return out, nil
}
