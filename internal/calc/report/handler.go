package report

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"Calcform/internal/metrics"
	"Calcform/internal/session"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	data, ok := h.build(w, r)
	if !ok {
		return
	}
	b, err := GeneratePDF(data)
	if err != nil {
		h.Log.Error("generate pdf report", zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	metrics.RecordReport("pdf")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"concrete-report.pdf\"")
	w.Write(b)
}

func (h *Handler) Excel(w http.ResponseWriter, r *http.Request) {
	data, ok := h.build(w, r)
	if !ok {
		return
	}
	b, err := GenerateExcel(data)
	if err != nil {
		h.Log.Error("generate xlsx report", zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	metrics.RecordReport("xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"concrete-report.xlsx\"")
	w.Write(b)
}

// build reads optional metadata from the body. An empty body is allowed.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) (Data, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return Data{}, false
	}
	var meta Meta
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return Data{}, false
	}
	return Build(s.Entries(), meta, time.Now()), true
}
