package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline metrics cover the three upstream call sites of every agent request:
// embedding, hybrid search, and generation.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umkmai",
			Name:      "embedding_requests_total",
			Help:      "Embedding provider requests by model and status",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "umkmai",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding provider request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umkmai",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups by result (hit/miss)",
		},
		[]string{"result"},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umkmai",
			Name:      "search_requests_total",
			Help:      "Search index requests by index and status",
		},
		[]string{"index", "status"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "umkmai",
			Name:      "generation_requests_total",
			Help:      "Generative model requests by model and status",
		},
		[]string{"model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "umkmai",
			Name:      "generation_request_duration_seconds",
			Help:      "Generative model request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"model"},
	)
)

// RegisterPipelineMetrics registers upstream call metrics explicitly (no init()).
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingCacheTotal,
		SearchRequestsTotal,
		GenerationRequestsTotal,
		GenerationRequestDuration,
	)
}
