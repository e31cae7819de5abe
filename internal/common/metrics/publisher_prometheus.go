package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PublisherPrometheusMetrics struct {
	kafkaPublishDurationHist *prometheus.HistogramVec
	kafkaMessagesTotal       *prometheus.CounterVec
}

func newPublisherPrometheusMetrics(reg prometheus.Registerer) *PublisherPrometheusMetrics {
	kafkaPublishDurationHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_publisher_duration_seconds",
			Help:    "Duration of Kafka message publishing in seconds.",
			Buckets: []float64{0, 0.0001, 0.001, 0.010, 0.100, 0.200, 0.500, 1, 2, 5, 10, 100, 1000},
		},
		[]string{"topic", "success"},
	)
	kafkaMessagesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_publisher_messages_total",
			Help: "Messages handed to the Kafka producer.",
		},
		[]string{"topic", "success"},
	)

	reg.MustRegister(kafkaPublishDurationHist, kafkaMessagesTotal)

	return &PublisherPrometheusMetrics{kafkaPublishDurationHist, kafkaMessagesTotal}
}

// GenerateMetrics records one publish call of n messages.
func (m *PublisherPrometheusMetrics) GenerateMetrics(startTime time.Time, topic string, n int, processErr error) {
	success := strconv.FormatBool(processErr == nil)

	m.kafkaPublishDurationHist.WithLabelValues(topic, success).Observe(time.Since(startTime).Seconds())
	m.kafkaMessagesTotal.WithLabelValues(topic, success).Add(float64(n))
}
