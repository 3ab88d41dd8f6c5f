package metrics

import "github.com/prometheus/client_golang/prometheus"

// Model-call Prometheus metrics covering both embedding and generation
// providers.
var (
	ModelRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nbaqa",
			Name:      "model_requests_total",
			Help:      "Total number of model requests",
		},
		[]string{"kind", "model", "status"},
	)

	ModelRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "nbaqa",
			Name:      "model_request_duration_seconds",
			Help:      "Model request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"kind", "model"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nbaqa",
			Name:      "model_tokens_total",
			Help:      "Total model tokens consumed",
		},
		[]string{"kind", "model", "type"},
	)

	ModelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nbaqa",
			Name:      "model_errors_total",
			Help:      "Total model call errors",
		},
		[]string{"kind", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nbaqa",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// Metric kind labels.
const (
	KindEmbedding  = "embedding"
	KindGeneration = "generation"
)

var modelMetricsRegistered bool

// RegisterModelMetrics registers Prometheus model metrics. Must be called once from main.
func RegisterModelMetrics() {
	if modelMetricsRegistered {
		return
	}
	prometheus.MustRegister(ModelRequestsTotal)
	prometheus.MustRegister(ModelRequestDuration)
	prometheus.MustRegister(ModelTokensTotal)
	prometheus.MustRegister(ModelErrorsTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	modelMetricsRegistered = true
}
