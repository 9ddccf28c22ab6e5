package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prediction Prometheus metrics.
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "predictions_total",
			Help:      "Total number of predictions",
		},
		[]string{"status", "label"},
	)

	PredictionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "verity",
			Name:      "prediction_duration_seconds",
			Help:      "Prediction duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"path"}, // "model" / "heuristic"
	)

	AnalysisDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "analysis_degraded_total",
			Help:      "Predictions returned with a substituted analysis report",
		},
	)

	ModelReady = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "verity",
			Name:      "model_ready",
			Help:      "1 when the trained model is loaded, 0 when serving heuristics",
		},
	)

	AuditWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "audit_writes_total",
			Help:      "Audit log writes by outcome",
		},
		[]string{"driver", "status"},
	)

	AuditDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "verity",
			Name:      "audit_dropped_total",
			Help:      "Audit entries dropped because the queue was full",
		},
	)
)

var predictionMetricsRegistered bool

// RegisterPredictionMetrics registers prediction, model and audit metrics. Must be called once from main.
func RegisterPredictionMetrics() {
	if predictionMetricsRegistered {
		return
	}
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(PredictionDuration)
	prometheus.MustRegister(AnalysisDegradedTotal)
	prometheus.MustRegister(ModelReady)
	prometheus.MustRegister(AuditWritesTotal)
	prometheus.MustRegister(AuditDroppedTotal)
	predictionMetricsRegistered = true
}
