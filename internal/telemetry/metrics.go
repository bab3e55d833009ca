package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tabular/internal/logging"
)

var (
	transformsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tabular_transforms_total",
		Help: "Transform invocations by transformer and outcome.",
	}, []string{"transform", "outcome"})

	transformRows = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tabular_transform_rows",
		Help:    "Rows produced per successful transform.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"transform"})

	transformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tabular_transform_duration_seconds",
		Help:    "Wall time spent in a transform.",
		Buckets: prometheus.DefBuckets,
	}, []string{"transform"})
)

// ObserveTransform records one transform call. err == nil counts as "ok".
func ObserveTransform(name string, rows int, took time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	transformsTotal.WithLabelValues(name, outcome).Inc()
	transformDuration.WithLabelValues(name).Observe(took.Seconds())
	if err == nil {
		transformRows.WithLabelValues(name).Observe(float64(rows))
	}
}

// Expose serves /metrics on addr in the background. Close the returned
// server to stop it.
func Expose(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Error("metrics endpoint stopped", "addr", addr, "err", err)
		}
	}()
	return srv
}
