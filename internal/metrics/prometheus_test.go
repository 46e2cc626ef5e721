package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"Calcform/internal/calc/dims"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", Status(nil))
	assert.Equal(t, "missing_dimension", Status(&dims.MissingDimensionError{Field: dims.Length}))
	assert.Equal(t, "invalid_geometry", Status(&dims.InvalidGeometryError{Reason: "x"}))
	assert.Equal(t, "error", Status(errors.New("boom")))
}

func TestMiddleware(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/rows/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rows/abc", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
