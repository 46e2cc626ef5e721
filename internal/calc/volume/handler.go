package volume

import (
	"encoding/json"
	"errors"
	"net/http"

	"Calcform/internal/calc/dims"
)

type Input struct {
	Kind         string             `json:"kind"`
	Measurements map[string]float64 `json:"measurements"`
}

type Result struct {
	Kind     Kind    `json:"kind"`
	VolumeM3 float64 `json:"volume_m3"`
	Error    string  `json:"error,omitempty"`
}

type KindInfo struct {
	Kind     Kind         `json:"kind"`
	Required []dims.Field `json:"required"`
	Labels   []string     `json:"labels"`
}

type Handler struct{}

// Calc takes measurements already in meters, keyed by field identifier.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	kind, err := ParseKind(input.Kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	set := make(dims.Set, len(input.Measurements))
	for k, v := range input.Measurements {
		set[dims.Field(k)] = v
	}
	res := Result{Kind: kind}
	v, err := Compute(kind, set)
	switch {
	case err == nil:
		res.VolumeM3 = v
	case IsUserError(err):
		res.Error = err.Error()
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Kinds(w http.ResponseWriter, r *http.Request) {
	out := make([]KindInfo, 0, len(required))
	for _, k := range Kinds() {
		out = append(out, KindInfo{Kind: k, Required: k.Required(), Labels: k.Labels()})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// IsUserError reports whether err is a measurement failure the user can fix,
// as opposed to a collaborator bug such as an unknown kind or unit.
func IsUserError(err error) bool {
	var missing *dims.MissingDimensionError
	var geometry *dims.InvalidGeometryError
	return errors.As(err, &missing) || errors.As(err, &geometry)
}
