package content

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request kinds used as metric labels.
const (
	kindNarrative = "narrative"
	kindRiddle    = "riddle"
	kindImage     = "image"
	kindSpeech    = "speech"
)

var (
	// Registry holds the generation metrics. It is served by the
	// --metrics-addr listener.
	Registry = prometheus.NewRegistry()

	requestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "mindvault_generation_requests_total",
			Help: "Total number of generation requests, partitioned by kind and status.",
		},
		[]string{"kind", "status"},
	)
	requestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mindvault_generation_duration_seconds",
			Help:    "Duration of generation requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)
)

func observe(kind string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	requestsTotal.With(prometheus.Labels{"kind": kind, "status": status}).Inc()
	requestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
