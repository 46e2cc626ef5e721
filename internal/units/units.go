package units

import (
	"errors"
	"fmt"
	"strings"
)

type Unit string

const (
	Meters      Unit = "meters"
	Feet        Unit = "feet"
	Inches      Unit = "inches"
	Yards       Unit = "yards"
	Centimeters Unit = "centimeters"
)

// Base is the unit every dimension is normalized to before any formula runs.
const Base = Meters

var ErrUnsupportedUnit = errors.New("unsupported unit")

// factors: value(u) * factor = value(meters)
var factors = map[Unit]float64{
	Meters:      1,
	Feet:        0.3048,
	Inches:      0.0254,
	Yards:       0.9144,
	Centimeters: 0.01,
}

var aliases = map[string]Unit{
	"m":           Meters,
	"meter":       Meters,
	"meters":      Meters,
	"metre":       Meters,
	"metres":      Meters,
	"ft":          Feet,
	"foot":        Feet,
	"feet":        Feet,
	"in":          Inches,
	"inch":        Inches,
	"inches":      Inches,
	"yd":          Yards,
	"yard":        Yards,
	"yards":       Yards,
	"cm":          Centimeters,
	"centimeter":  Centimeters,
	"centimeters": Centimeters,
	"centimetre":  Centimeters,
	"centimetres": Centimeters,
}

// All returns the supported units in display order.
func All() []Unit {
	return []Unit{Meters, Feet, Inches, Yards, Centimeters}
}

func (u Unit) Valid() bool {
	_, ok := factors[u]
	return ok
}

func (u Unit) String() string {
	return string(u)
}

// Parse maps a unit name or abbreviation to a Unit. An empty string is the base unit.
func Parse(s string) (Unit, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Base, nil
	}
	u, ok := aliases[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
	return u, nil
}

func factor(u Unit) (float64, error) {
	f, ok := factors[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, string(u))
	}
	return f, nil
}

// ToBase converts v expressed in u to meters. Meters pass through untouched.
func ToBase(v float64, u Unit) (float64, error) {
	if u == Meters {
		return v, nil
	}
	f, err := factor(u)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

// FromBase converts v meters to u.
func FromBase(v float64, u Unit) (float64, error) {
	if u == Meters {
		return v, nil
	}
	f, err := factor(u)
	if err != nil {
		return 0, err
	}
	return v / f, nil
}

func Convert(v float64, from, to Unit) (float64, error) {
	base, err := ToBase(v, from)
	if err != nil {
		return 0, err
	}
	return FromBase(base, to)
}
