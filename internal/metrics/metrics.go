// Package metrics exposes Prometheus collectors for the chart server.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// OutcomeSuccess labels charts that were assembled and encoded.
	OutcomeSuccess = "success"
	// OutcomeEmpty labels renders whose dataset held no points.
	OutcomeEmpty = "empty"
	// OutcomeError labels renders that failed on malformed data or encoding.
	OutcomeError = "error"
)

var (
	rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quantumchart",
			Name:      "renders_total",
			Help:      "Total number of chart renders, partitioned by chart kind, format and outcome.",
		},
		[]string{"chart", "format", "outcome"},
	)

	renderDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quantumchart",
			Name:      "render_seconds",
			Help:      "Chart assembly and encoding latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"chart"},
	)

	upstreamFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quantumchart",
			Name:      "upstream_fetches_total",
			Help:      "Total number of dataset fetches from the dashboard API, partitioned by dataset and outcome.",
		},
		[]string{"dataset", "outcome"},
	)
)

// Register attaches the chart collectors to the supplied Prometheus registerer.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		rendersTotal,
		renderDurationSeconds,
		upstreamFetchesTotal,
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// ObserveRender records a render duration and outcome for a chart kind.
func ObserveRender(chart, format string, duration time.Duration, outcome string) {
	rendersTotal.WithLabelValues(chart, format, normalise(outcome)).Inc()
	if duration < 0 {
		duration = 0
	}
	renderDurationSeconds.WithLabelValues(chart).Observe(duration.Seconds())
}

// ObserveFetch counts one upstream fetch of dataset.
func ObserveFetch(dataset string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	upstreamFetchesTotal.WithLabelValues(dataset, outcome).Inc()
}

func normalise(outcome string) string {
	switch outcome {
	case OutcomeEmpty, OutcomeError:
		return outcome
	default:
		return OutcomeSuccess
	}
}
