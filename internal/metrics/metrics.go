package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citywind_backend_api_calls_total",
			Help: "Total advisory backend API calls",
		},
		[]string{"endpoint", "status"},
	)

	BackendAPILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citywind_backend_api_latency_seconds",
			Help:    "Advisory backend call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citywind_fallbacks_total",
			Help: "Total fallback activations by endpoint and stage",
		},
		[]string{"endpoint", "stage"},
	)

	GeocodeCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citywind_geocode_calls_total",
			Help: "Total Google geocoding API calls",
		},
		[]string{"direction", "status"},
	)
)
