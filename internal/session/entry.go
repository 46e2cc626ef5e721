package session

import (
	"Calcform/internal/calc/volume"
)

// Entry is an immutable snapshot of a saved row as it appears in the report.
type Entry struct {
	RowID               string      `json:"row_id"`
	Kind                volume.Kind `json:"kind"`
	Label               string      `json:"label"`
	Dimensions          []string    `json:"dimensions"`
	Volume              float64     `json:"volume_m3"`
	Failure             string      `json:"failure,omitempty"`
	Quantity            int         `json:"quantity"`
	TotalRequiredVolume float64     `json:"total_required_m3"`
}

func NewEntry(r Row) Entry {
	e := Entry{
		RowID:    r.ID,
		Kind:     r.Kind,
		Label:    r.Label,
		Quantity: r.Quantity,
	}
	for _, d := range r.Dimensions {
		e.Dimensions = append(e.Dimensions, d.Text())
	}
	if r.Err != nil {
		e.Failure = r.Err.Error()
		return e
	}
	e.Volume = r.Volume
	e.TotalRequiredVolume = volume.Round(r.Volume * float64(r.Quantity))
	return e
}

// Flagged entries carry a failure and contribute nothing to the total.
func (e Entry) Flagged() bool {
	return e.Failure != ""
}

type Summary struct {
	TotalVolume float64 `json:"total_volume_m3"`
	RowCount    int     `json:"row_count"`
	Flagged     int     `json:"flagged"`
}

// Aggregate sums volume x quantity over the successful entries. The sum is
// rounded to two decimals like every volume.
func Aggregate(entries []Entry) Summary {
	var s Summary
	var total float64
	for _, e := range entries {
		s.RowCount++
		if e.Flagged() {
			s.Flagged++
			continue
		}
		total += e.Volume * float64(e.Quantity)
	}
	s.TotalVolume = volume.Round(total)
	return s
}
