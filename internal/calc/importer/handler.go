package importer

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Calcform/internal/session"
)

const MaxUploadSize = 10 << 20

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Session required", http.StatusUnauthorized)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := Import(file, s)
	if err != nil {
		h.Log.Info("workbook import rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.Log.Debug("workbook imported",
		zap.Int("imported", res.Imported),
		zap.Int("flagged", res.Flagged),
		zap.Int("errors", len(res.Errors)))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
