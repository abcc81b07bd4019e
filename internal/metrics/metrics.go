// Package metrics exposes Prometheus instruments for the payback flow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeScored = "scored"
	OutcomeFailed = "failed"
)

type Metrics struct {
	Predictions     *prometheus.CounterVec
	ScoringDuration prometheus.Histogram
}

// New registers the instruments on reg. Each server owns its registry, so
// tests can build as many as they need.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditrisk_payback_predictions_total",
			Help: "Total number of payback predictions by outcome",
		}, []string{"outcome"}),
		ScoringDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "creditrisk_payback_scoring_duration_seconds",
			Help:    "Duration of scorer calls",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementPrediction(outcome string) {
	m.Predictions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveScoring(start time.Time) {
	m.ScoringDuration.Observe(time.Since(start).Seconds())
}
