package entry

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Calcform/internal/calc/volume"
	"Calcform/internal/metrics"
)

type CalcInput struct {
	Kind   string       `json:"kind"`
	Label  string       `json:"label"`
	Fields []FieldInput `json:"fields"`
}

type CalcResult struct {
	Kind     volume.Kind `json:"kind"`
	Label    string      `json:"label"`
	VolumeM3 float64     `json:"volume_m3"`
	Error    string      `json:"error,omitempty"`
	Parsed
}

type Handler struct {
	Log *zap.Logger
}

// Calc runs one dialog submission through the normalizer and calculator
// without touching any session.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input CalcInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Evaluate(input)
	if err != nil {
		h.Log.Error("volume calc rejected", zap.String("kind", input.Kind), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(res); err != nil {
		h.Log.Error("encode volume result", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// Evaluate parses and computes one submission. Measurement failures are
// reported in the result; only unknown kinds and units are returned as err.
func Evaluate(in CalcInput) (CalcResult, error) {
	kind, err := volume.ParseKind(in.Kind)
	if err != nil {
		return CalcResult{}, err
	}
	parsed, err := Parse(kind, in.Fields)
	if err != nil {
		return CalcResult{}, err
	}
	res := CalcResult{Kind: kind, Label: kind.Label(in.Label), Parsed: parsed}
	v, err := volume.Compute(kind, parsed.Set)
	metrics.RecordCalculation(string(kind), err)
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}
	res.VolumeM3 = v
	return res, nil
}
