package metrics

import "github.com/prometheus/client_golang/prometheus"

// Stage render Prometheus metrics.
var (
	RenderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchstage",
			Name:      "renders_total",
			Help:      "Total number of stage renders",
		},
		[]string{"collection", "operator", "outcome"}, // outcome: "ok" / "error"
	)

	RenderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchstage",
			Name:      "render_duration_seconds",
			Help:      "Stage render duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"collection", "operator"},
	)
)

// RegisterRenderMetrics registers stage render metrics explicitly (no init()).
func RegisterRenderMetrics() {
	prometheus.MustRegister(RenderTotal)
	prometheus.MustRegister(RenderDuration)
}
