package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the chart feature's Prometheus metrics.
type Metrics struct {
	ChartsComputed prometheus.Counter
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	EngineDuration prometheus.Histogram
}

// New creates and registers the chart metrics.
func New() *Metrics {
	return &Metrics{
		ChartsComputed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ziwei_charts_computed_total",
			Help: "Total charts computed, cache misses only",
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ziwei_chart_cache_hits_total",
			Help: "Chart computations served from the recent-search cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ziwei_chart_cache_misses_total",
			Help: "Chart computations that had to invoke the engine",
		}),
		EngineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ziwei_engine_call_duration_seconds",
			Help:    "Latency of external chart engine calls",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
