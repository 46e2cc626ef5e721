package report

import (
	"strings"
	"time"

	"Calcform/internal/session"
)

// Meta is the customer and site information typed into the form. It is
// printed as-is and takes no part in any calculation.
type Meta struct {
	Title    string `json:"title"`
	Project  string `json:"project"`
	Customer string `json:"customer"`
	Site     string `json:"site"`
	Author   string `json:"author"`
	Notes    string `json:"notes"`
}

type Row struct {
	Index        int
	Label        string
	Kind         string
	Measurements string
	Quantity     int
	UnitVolume   float64
	TotalVolume  float64
	Flagged      bool
	Remarks      string
}

type Data struct {
	Meta
	Date    string
	Rows    []Row
	Summary session.Summary
}

const DefaultTitle = "Concrete Volume Report"

// Build lays the entries out in the order given, which for a session is
// most recent first.
func Build(entries []session.Entry, meta Meta, now time.Time) Data {
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = DefaultTitle
	}
	d := Data{
		Meta:    meta,
		Date:    now.Format("2006-01-02"),
		Rows:    make([]Row, 0, len(entries)),
		Summary: session.Aggregate(entries),
	}
	for i, e := range entries {
		d.Rows = append(d.Rows, Row{
			Index:        i + 1,
			Label:        e.Label,
			Kind:         string(e.Kind),
			Measurements: strings.Join(e.Dimensions, "; "),
			Quantity:     e.Quantity,
			UnitVolume:   e.Volume,
			TotalVolume:  e.TotalRequiredVolume,
			Flagged:      e.Flagged(),
			Remarks:      e.Failure,
		})
	}
	return d
}
