package entry

import (
	"strings"
	"unicode"

	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/volume"
)

// aliases lists the dialog labels accepted for each field beyond its own
// identifier. Keys are in normalized form, see normalizeLabel.
var aliases = map[dims.Field][]string{
	dims.Height:        {"heightthickness", "thickness", "depth"},
	dims.OuterDiameter: {"outsidediameter", "od"},
	dims.InnerDiameter: {"insidediameter", "id"},
	dims.Run:           {"tread", "going"},
	dims.Rise:          {"riser"},
	dims.Steps:         {"numberofsteps", "stepcount", "noofsteps"},
}

type fieldTable map[string]dims.Field

var tables = buildTables()

func buildTables() map[volume.Kind]fieldTable {
	out := make(map[volume.Kind]fieldTable)
	for _, k := range volume.Kinds() {
		t := make(fieldTable)
		for _, f := range k.Required() {
			t[normalizeLabel(string(f))] = f
			for _, a := range aliases[f] {
				t[a] = f
			}
		}
		out[k] = t
	}
	return out
}

// Resolve maps a dialog label to a field of kind. Only fields the kind
// requires resolve; "Depth" is a height for a slab but unknown for a curb.
func Resolve(kind volume.Kind, label string) (dims.Field, bool) {
	f, ok := tables[kind][normalizeLabel(label)]
	return f, ok
}

// normalizeLabel lower-cases, drops a trailing "(L)" style hint and removes
// everything that is not a letter or digit.
func normalizeLabel(s string) string {
	if i := strings.LastIndex(s, "("); i > 0 && strings.HasSuffix(strings.TrimSpace(s), ")") {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
