package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outbound call metrics: page fetches and LLM narration.
var (
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "fetch_requests_total",
			Help:      "Total number of page fetches",
		},
		[]string{"status"}, // "ok" / "error" / "rate_limited"
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "verity",
			Name:      "fetch_duration_seconds",
			Help:      "Page fetch duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PageCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "page_cache_total",
			Help:      "Page cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "llm_requests_total",
			Help:      "Total number of explanation LLM requests",
		},
		[]string{"provider", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "verity",
			Name:      "llm_request_duration_seconds",
			Help:      "Explanation LLM request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	LLMErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "llm_errors_total",
			Help:      "Total LLM errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ExplanationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "explanations_total",
			Help:      "Explanations served by source",
		},
		[]string{"source"}, // "template" / "llm"
	)
)

var externalMetricsRegistered bool

// RegisterExternalMetrics registers fetch and LLM metrics. Must be called once from main.
func RegisterExternalMetrics() {
	if externalMetricsRegistered {
		return
	}
	prometheus.MustRegister(FetchRequestsTotal)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(PageCacheTotal)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(LLMTokensTotal)
	prometheus.MustRegister(LLMErrorsTotal)
	prometheus.MustRegister(ExplanationsTotal)
	externalMetricsRegistered = true
}
