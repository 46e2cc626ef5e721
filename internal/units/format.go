package units

import "fmt"

// Display precision. Only final values are rounded; conversions never are.
const (
	LengthDecimals = 3
	VolumeDecimals = 2
)

func FormatLength(v float64) string {
	return fmt.Sprintf("%.*f", LengthDecimals, v)
}

func FormatVolume(v float64) string {
	return fmt.Sprintf("%.*f", VolumeDecimals, v)
}

// Abbrev is the short label shown next to a value in the report.
func (u Unit) Abbrev() string {
	switch u {
	case Meters:
		return "m"
	case Feet:
		return "ft"
	case Inches:
		return "in"
	case Yards:
		return "yd"
	case Centimeters:
		return "cm"
	default:
		return string(u)
	}
}
