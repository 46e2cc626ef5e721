// Package entry turns the measurement dialog's raw (label, value, unit)
// triples into a normalized dimension set for the volume calculator.
package entry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/volume"
	"Calcform/internal/units"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive whole number")

type FieldInput struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// Dimension is one entered value as the user typed it.
type Dimension struct {
	Field dims.Field `json:"field"`
	Raw   string     `json:"raw"`
	Value float64    `json:"value"`
	Unit  units.Unit `json:"unit,omitempty"`
	OK    bool       `json:"ok"`
}

// Text renders the dimension for the row list and the report.
func (d Dimension) Text() string {
	if !d.OK {
		if d.Raw == "" {
			return fmt.Sprintf("%s: -", d.Field)
		}
		return fmt.Sprintf("%s: %q", d.Field, d.Raw)
	}
	if d.Field.Counted() {
		return fmt.Sprintf("%s: %s", d.Field, strconv.FormatFloat(d.Value, 'f', -1, 64))
	}
	return fmt.Sprintf("%s: %s %s", d.Field, units.FormatLength(d.Value), d.Unit.Abbrev())
}

type Parsed struct {
	Set        dims.Set    `json:"measurements"`
	Dimensions []Dimension `json:"dimensions"`
	Unmatched  []string    `json:"unmatched,omitempty"`
}

// Parse builds the measurement set for kind. Values that are blank, do not
// parse or are not finite are left out of the set so the calculator reports them missing.
// A later triple for the same field replaces an earlier one.
func Parse(kind volume.Kind, fields []FieldInput) (Parsed, error) {
	if !kind.Valid() {
		return Parsed{}, fmt.Errorf("%w: %q", volume.ErrUnknownKind, string(kind))
	}
	byField := make(map[dims.Field]Dimension, len(fields))
	var unmatched []string
	for _, in := range fields {
		f, ok := Resolve(kind, in.Label)
		if !ok {
			unmatched = append(unmatched, in.Label)
			continue
		}
		d := Dimension{Field: f, Raw: strings.TrimSpace(in.Value)}
		if !f.Counted() {
			u, err := units.Parse(in.Unit)
			if err != nil {
				return Parsed{}, fmt.Errorf("field %s: %w", f, err)
			}
			d.Unit = u
		}
		if v, err := strconv.ParseFloat(d.Raw, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			d.Value = v
			d.OK = true
		}
		byField[f] = d
	}

	out := Parsed{Set: make(dims.Set, len(byField)), Unmatched: unmatched}
	for _, f := range kind.Required() {
		d, ok := byField[f]
		if !ok {
			continue
		}
		out.Dimensions = append(out.Dimensions, d)
		if !d.OK {
			continue
		}
		if f.Counted() {
			out.Set[f] = d.Value
			continue
		}
		base, err := units.ToBase(d.Value, d.Unit)
		if err != nil {
			return Parsed{}, fmt.Errorf("field %s: %w", f, err)
		}
		out.Set[f] = base
	}
	return out, nil
}

// ParseQuantity reads the repeat count for a row. Blank means one.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, raw)
	}
	return n, nil
}
