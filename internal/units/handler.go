package units

import (
	"encoding/json"
	"net/http"
)

type ConvertInput struct {
	Value float64 `json:"value"`
	From  string  `json:"from"`
	To    string  `json:"to"`
}

type ConvertResult struct {
	Value     float64 `json:"value"`
	Unit      Unit    `json:"unit"`
	Formatted string  `json:"formatted"`
}

type Handler struct{}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	var input ConvertInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	from, err := Parse(input.From)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := Parse(input.To)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := Convert(input.Value, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ConvertResult{Value: v, Unit: to, Formatted: FormatLength(v)})
}
