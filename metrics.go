package tokcompress

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetricsRecorder is a MetricsRecorder backed by a compression
// ratio histogram and a pass counter, registered against the supplied
// registerer.
type PrometheusMetricsRecorder struct {
	ratio  prometheus.Histogram
	passes prometheus.Counter
}

// NewPrometheusMetricsRecorder builds and registers the two collectors
// against reg. Pass prometheus.DefaultRegisterer to use the global registry.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) *PrometheusMetricsRecorder {
	r := &PrometheusMetricsRecorder{
		ratio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tokcompress",
			Subsystem: "compress",
			Name:      "ratio",
			Help:      "Original length divided by compressed length, per completed Compress call.",
			Buckets:   []float64{1, 1.5, 2, 3, 5, 8, 13, 21},
		}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tokcompress",
			Subsystem: "compress",
			Name:      "hierarchical_passes_total",
			Help:      "Total number of hierarchical compression passes run.",
		}),
	}
	reg.MustRegister(r.ratio, r.passes)
	return r
}

// ObserveRatio implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) ObserveRatio(ratio float64) { r.ratio.Observe(ratio) }

// IncPasses implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) IncPasses() { r.passes.Inc() }
