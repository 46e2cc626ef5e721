package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"Calcform/internal/calc/dims"
	"Calcform/internal/calc/entry"
	"Calcform/internal/calc/volume"
	"Calcform/internal/units"
)

type RowRequest struct {
	Kind     string             `json:"kind"`
	Label    string             `json:"label"`
	Fields   []entry.FieldInput `json:"fields"`
	Quantity string             `json:"quantity"`
}

type SaveRequest struct {
	Fields   []entry.FieldInput `json:"fields"`
	Quantity string             `json:"quantity"`
}

type KindRequest struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}

type RowView struct {
	ID           string            `json:"id"`
	Kind         volume.Kind       `json:"kind"`
	Label        string            `json:"label"`
	Dimensions   []entry.Dimension `json:"dimensions"`
	Measurements dims.Set          `json:"measurements"`
	Quantity     int               `json:"quantity"`
	Status       Status            `json:"status"`
	VolumeM3     float64           `json:"volume_m3"`
	Error        string            `json:"error,omitempty"`
	SavedAt      *time.Time        `json:"saved_at,omitempty"`
}

func View(r Row) RowView {
	v := RowView{
		ID:           r.ID,
		Kind:         r.Kind,
		Label:        r.Label,
		Dimensions:   r.Dimensions,
		Measurements: r.Measurements,
		Quantity:     r.Quantity,
		Status:       r.Status(),
		VolumeM3:     r.Volume,
	}
	if r.Err != nil {
		v.Error = r.Err.Error()
	}
	if r.Saved {
		t := r.SavedAt
		v.SavedAt = &t
	}
	return v
}

type EntriesView struct {
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) ListRows(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	rows := s.Rows()
	out := make([]RowView, 0, len(rows))
	for _, row := range rows {
		out = append(out, View(row))
	}
	h.writeJSON(w, http.StatusOK, out)
}

// CreateRow adds a row. With fields present the row is saved right away.
func (h *Handler) CreateRow(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req RowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	kind, err := volume.ParseKind(req.Kind)
	if err != nil {
		h.fail(w, err)
		return
	}
	var row Row
	if len(req.Fields) > 0 {
		row, err = s.Commit(kind, req.Label, req.Fields, req.Quantity)
	} else {
		row, err = s.AddRow(kind, req.Label)
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logSaved(row)
	h.writeJSON(w, http.StatusCreated, View(row))
}

func (h *Handler) SaveRow(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	row, err := s.Save(mux.Vars(r)["id"], req.Fields, req.Quantity)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.logSaved(row)
	h.writeJSON(w, http.StatusOK, View(row))
}

func (h *Handler) ChangeKind(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req KindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	kind, err := volume.ParseKind(req.Kind)
	if err != nil {
		h.fail(w, err)
		return
	}
	row, err := s.ChangeKind(mux.Vars(r)["id"], kind, req.Label)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, View(row))
}

func (h *Handler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Remove(mux.Vars(r)["id"]); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	entries := s.Entries()
	h.writeJSON(w, http.StatusOK, EntriesView{Entries: entries, Summary: Aggregate(entries)})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, Aggregate(s.Entries()))
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := FromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return nil, false
	}
	return s, true
}

// fail maps an error to a status. Unknown kinds and units come from a
// broken client rather than the user, so they are logged loudly.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRowNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, entry.ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, volume.ErrUnknownKind), errors.Is(err, units.ErrUnsupportedUnit):
		h.Log.Error("rejected row input", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.Log.Error("row operation failed", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) logSaved(row Row) {
	if row.Err != nil {
		h.Log.Debug("row saved with failure",
			zap.String("row_id", row.ID),
			zap.String("kind", string(row.Kind)),
			zap.Error(row.Err))
		return
	}
	h.Log.Debug("row saved",
		zap.String("row_id", row.ID),
		zap.String("kind", string(row.Kind)),
		zap.Float64("volume_m3", row.Volume))
}

// writeJSON encodes before writing the header so an unencodable value turns
// into a 500 instead of an empty success.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		h.Log.Error("encode response", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
