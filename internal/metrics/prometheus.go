// Package metrics exposes Prometheus counters for calculations, saved rows
// and generated reports.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"Calcform/internal/calc/dims"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcform_calculations_total",
			Help: "Volume calculations by structure kind and outcome",
		},
		[]string{"kind", "status"},
	)

	RowsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcform_rows_saved_total",
			Help: "Session row saves by structure kind and outcome",
		},
		[]string{"kind", "status"},
	)

	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calcform_reports_generated_total",
			Help: "Reports exported by format",
		},
		[]string{"format"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calcform_http_request_duration_seconds",
			Help:    "HTTP request latency by route template",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

// Status classifies a calculation outcome for the status label.
func Status(err error) string {
	var missing *dims.MissingDimensionError
	var geometry *dims.InvalidGeometryError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &missing):
		return "missing_dimension"
	case errors.As(err, &geometry):
		return "invalid_geometry"
	default:
		return "error"
	}
}

func RecordCalculation(kind string, err error) {
	CalculationsTotal.WithLabelValues(kind, Status(err)).Inc()
}

func RecordRowSaved(kind string, err error) {
	RowsSavedTotal.WithLabelValues(kind, Status(err)).Inc()
}

func RecordReport(format string) {
	ReportsGeneratedTotal.WithLabelValues(format).Inc()
}

// Middleware times every request under its mux route template.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
