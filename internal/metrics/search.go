package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	MemoCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rankdex",
			Name:      "memo_cache_hits_total",
			Help:      "Total normalization memo cache hits",
		},
	)

	MemoCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rankdex",
			Name:      "memo_cache_misses_total",
			Help:      "Total normalization memo cache misses",
		},
	)

	RerankPoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rankdex",
			Name:      "rerank_pool_size",
			Help:      "Number of candidates fetched per query for reranking",
			Buckets:   []float64{10, 25, 50, 100, 200, 500, 1000},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(MemoCacheHits)
	prometheus.MustRegister(MemoCacheMisses)
	prometheus.MustRegister(RerankPoolSize)
	searchMetricsRegistered = true
}
