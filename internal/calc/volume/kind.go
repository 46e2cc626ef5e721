package volume

import (
	"errors"
	"fmt"
	"strings"

	"Calcform/internal/calc/dims"
)

// Kind selects the formula and the required-field set. Display labels such
// as "Wall" or "Square Footing" are carried separately, see Labels.
type Kind string

const (
	Slab           Kind = "slab"
	Hole           Kind = "hole"
	CircularHollow Kind = "circular_hollow"
	CurbGutter     Kind = "curb_gutter"
	Stairs         Kind = "stairs"
)

var ErrUnknownKind = errors.New("unknown structure kind")

var required = map[Kind][]dims.Field{
	Slab:           {dims.Length, dims.Width, dims.Height},
	Hole:           {dims.Diameter, dims.Height},
	CircularHollow: {dims.OuterDiameter, dims.InnerDiameter, dims.Height},
	CurbGutter:     {dims.CurbDepth, dims.CurbHeight, dims.FlagThickness, dims.GutterWidth, dims.Length},
	Stairs:         {dims.Run, dims.Rise, dims.Width, dims.Steps},
}

func Kinds() []Kind {
	return []Kind{Slab, Hole, CircularHollow, CurbGutter, Stairs}
}

func (k Kind) Valid() bool {
	_, ok := required[k]
	return ok
}

// Required returns the kind's fields in check order. The slice is a copy.
func (k Kind) Required() []dims.Field {
	return append([]dims.Field(nil), required[k]...)
}

// ParseKind accepts the canonical identifiers and their CamelCase or
// hyphenated spellings ("CircularHollow", "curb-gutter").
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "", "&", "").Replace(key)
	for _, k := range Kinds() {
		if strings.ReplaceAll(string(k), "_", "") == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
