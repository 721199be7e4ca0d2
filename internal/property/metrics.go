package property

import (
	"strconv"

	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "tracecheck"

// CheckMetrics exports check counts, durations and trace sizes to Prometheus.
type CheckMetrics struct {
	checks   *stdprometheus.CounterVec
	duration *stdprometheus.HistogramVec
	samples  stdprometheus.Histogram
}

// NewCheckMetrics creates the collectors and registers them on reg.
func NewCheckMetrics(reg stdprometheus.Registerer) (*CheckMetrics, error) {
	m := &CheckMetrics{
		checks: stdprometheus.NewCounterVec(stdprometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "checks_total",
			Help:      "Property checks evaluated, by verdict.",
		}, []string{"holds"}),
		duration: stdprometheus.NewHistogramVec(stdprometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "check_duration_seconds",
			Help:      "Time spent evaluating a property against a trace.",
			Buckets:   stdprometheus.ExponentialBuckets(0.00005, 2, 14),
		}, []string{"holds"}),
		samples: stdprometheus.NewHistogram(stdprometheus.HistogramOpts{
			Namespace: metricNamespace,
			Name:      "check_trace_samples",
			Help:      "Samples per checked trace.",
			Buckets:   stdprometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
	for _, c := range []stdprometheus.Collector{m.checks, m.duration, m.samples} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *CheckMetrics) ObserveCheck(obs CheckObservation) {
	holds := strconv.FormatBool(obs.Holds)
	m.checks.WithLabelValues(holds).Inc()
	m.duration.WithLabelValues(holds).Observe(obs.Duration.Seconds())
	m.samples.Observe(float64(obs.Samples))
}

// CheckObservers fans an observation out to every observer in order.
type CheckObservers []CheckLatencyObserver

func (o CheckObservers) ObserveCheck(obs CheckObservation) {
	for _, next := range o {
		if next != nil {
			next.ObserveCheck(obs)
		}
	}
}
