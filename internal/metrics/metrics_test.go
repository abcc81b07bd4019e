package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementPrediction(OutcomeScored)
	m.IncrementPrediction(OutcomeScored)
	m.IncrementPrediction(OutcomeFailed)
	m.ObserveScoring(time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Predictions.WithLabelValues(OutcomeScored)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScoringDuration))
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
