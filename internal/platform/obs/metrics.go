// Package obs holds the engine's prometheus collectors. Callers never see
// a backend fallback happen, so these counters are its only external trace.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BackendFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playa_backend_fallbacks_total",
		Help: "Spatial backend failures or timeouts absorbed by the linear scan",
	})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "playa_cache_hits_total",
		Help: "TTL cache hits per region",
	}, []string{"region"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "playa_cache_misses_total",
		Help: "TTL cache misses per region",
	}, []string{"region"})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "playa_resolve_duration_ms",
		Help:    "Proximity resolution duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
	FixFetchFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "playa_fix_fetch_failures_total",
		Help: "Raw coordinate fetches that returned an error",
	})
)

// Register installs every collector on the default registry. Called once
// from the composition root.
func Register() {
	prometheus.MustRegister(
		BackendFallbacksTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		ResolveDurationMs,
		FixFetchFailuresTotal,
	)
}
