package compiler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/opmodel/topology/internal/builder"
)

// MetricsRecorder is the optional observability hook Compile reports
// through; a caller that wires in a prometheus.Registry gets compiler
// metrics for free, while NoopRecorder costs nothing for callers that
// don't care.
type MetricsRecorder interface {
	ObserveCompile(duration time.Duration, errorCount int)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

// ObserveCompile implements MetricsRecorder.
func (NoopRecorder) ObserveCompile(time.Duration, int) {}

// PrometheusRecorder records compile_total, compile_errors_total, and
// compile_duration_seconds against the given registry.
type PrometheusRecorder struct {
	total    prometheus.Counter
	errors   prometheus.Counter
	duration prometheus.Histogram
}

// NewPrometheusRecorder registers its metrics against reg and returns a
// ready-to-use recorder.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "compile_total",
			Help: "Total number of topology compile attempts.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "compile_errors_total",
			Help: "Total number of topology compile attempts that produced at least one error.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "compile_duration_seconds",
			Help:    "Wall-clock duration of a topology compile, in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(r.total, r.errors, r.duration)
	return r
}

// ObserveCompile implements MetricsRecorder.
func (r *PrometheusRecorder) ObserveCompile(duration time.Duration, errorCount int) {
	r.total.Inc()
	r.duration.Observe(duration.Seconds())
	if errorCount > 0 {
		r.errors.Inc()
	}
}

// CompileWithMetrics wraps Compile, recording its wall-clock duration and
// whether it produced errors through rec.
func CompileWithMetrics(b *builder.Builder, rec MetricsRecorder) (*builder.Config, []Warning, []error) {
	start := time.Now()
	cfg, warnings, errs := Compile(b)
	rec.ObserveCompile(time.Since(start), len(errs))
	return cfg, warnings, errs
}

