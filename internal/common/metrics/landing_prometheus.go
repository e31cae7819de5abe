package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type LandingPrometheusMetrics struct {
	sourceRecords  *prometheus.CounterVec
	landingRecords *prometheus.CounterVec
	batchDuration  *prometheus.HistogramVec
	sinkFailures   *prometheus.CounterVec
}

func newLandingPrometheusMetrics(reg prometheus.Registerer) *LandingPrometheusMetrics {
	sourceRecords := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_source_records_total",
			Help: "Source records read per source system and outcome.",
		},
		[]string{"source_system", "outcome"},
	)
	landingRecords := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_records_total",
			Help: "Landing records produced per source system and status.",
		},
		[]string{"source_system", "status"},
	)
	batchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landing_batch_duration_seconds",
			Help:    "Duration of landing batches in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"source_system", "result"},
	)
	sinkFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_sink_failures_total",
			Help: "Landing batches that could not be delivered to a sink after retries.",
		},
		[]string{"sink"},
	)

	reg.MustRegister(sourceRecords, landingRecords, batchDuration, sinkFailures)

	return &LandingPrometheusMetrics{
		sourceRecords:  sourceRecords,
		landingRecords: landingRecords,
		batchDuration:  batchDuration,
		sinkFailures:   sinkFailures,
	}
}

// RecordBatch records the counters of one finished batch.
func (m *LandingPrometheusMetrics) RecordBatch(sourceSystem string, sourceRecords, errorRecords int, statusCounts map[string]int) {
	m.sourceRecords.WithLabelValues(sourceSystem, "ok").Add(float64(sourceRecords - errorRecords))
	m.sourceRecords.WithLabelValues(sourceSystem, "error").Add(float64(errorRecords))
	for status, n := range statusCounts {
		m.landingRecords.WithLabelValues(sourceSystem, status).Add(float64(n))
	}
}

func (m *LandingPrometheusMetrics) ObserveBatchDuration(startTime time.Time, sourceSystem string, err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	m.batchDuration.WithLabelValues(sourceSystem, result).Observe(time.Since(startTime).Seconds())
}

func (m *LandingPrometheusMetrics) IncSinkFailure(sink string) {
	m.sinkFailures.WithLabelValues(sink).Inc()
}
