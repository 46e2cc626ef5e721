package volume

import "strings"

// labels are the "calculate for" choices offered per formula kind. They are
// report text only and never pick the formula.
var labels = map[Kind][]string{
	Slab:           {"Slab", "Wall", "Square Footing", "Sidewalk"},
	Hole:           {"Hole", "Round Column", "Round Footing"},
	CircularHollow: {"Circular Hollow", "Tube"},
	CurbGutter:     {"Curb & Gutter"},
	Stairs:         {"Stairs"},
}

func (k Kind) Labels() []string {
	return append([]string(nil), labels[k]...)
}

// Label resolves the display label for a row. Blank falls back to the kind's
// default; a catalog label is returned in its catalog spelling; anything else
// is kept as typed.
func (k Kind) Label(s string) string {
	s = strings.TrimSpace(s)
	opts := labels[k]
	if s == "" {
		if len(opts) == 0 {
			return string(k)
		}
		return opts[0]
	}
	for _, o := range opts {
		if strings.EqualFold(o, s) {
			return o
		}
	}
	return s
}
