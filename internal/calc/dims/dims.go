// Package dims holds the dimension field identifiers shared by every volume
// formula and the typed failures a formula can report.
package dims

import (
	"fmt"
	"math"
)

type Field string

const (
	Length        Field = "length"
	Width         Field = "width"
	Height        Field = "height"
	Diameter      Field = "diameter"
	OuterDiameter Field = "outerDiameter"
	InnerDiameter Field = "innerDiameter"
	CurbDepth     Field = "curbDepth"
	CurbHeight    Field = "curbHeight"
	FlagThickness Field = "flagThickness"
	GutterWidth   Field = "gutterWidth"
	Run           Field = "run"
	Rise          Field = "rise"
	Steps         Field = "steps"
)

// Counted reports whether f is a unitless count rather than a length.
func (f Field) Counted() bool {
	return f == Steps
}

// Set maps a field to its value in meters (or the raw count for Steps).
type Set map[Field]float64

// MissingDimensionError is returned when a required field is absent, not a
// finite number, or not positive.
type MissingDimensionError struct {
	Field Field
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("missing dimension: %s", e.Field)
}

// InvalidGeometryError is returned when all fields are present but violate a
// geometric precondition.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// Usable is the required-field policy: only positive finite values count.
func Usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Require checks fields in the given order and names the first unusable one.
func (s Set) Require(fields ...Field) error {
	for _, f := range fields {
		v, ok := s[f]
		if !ok || !Usable(v) {
			return &MissingDimensionError{Field: f}
		}
	}
	return nil
}

// Value binds a field name to a value taken from a calculator input.
type Value struct {
	Field Field
	V     float64
}

// Check applies the same policy to already-bound input values.
func Check(values ...Value) error {
	for _, v := range values {
		if !Usable(v.V) {
			return &MissingDimensionError{Field: v.Field}
		}
	}
	return nil
}
