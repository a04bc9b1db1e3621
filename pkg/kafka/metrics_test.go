package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerMetrics_Registered(t *testing.T) {
	ProducerMessagesPublished.WithLabelValues("registered-topic")
	ProducerPublishErrors.WithLabelValues("registered-topic")
	ProducerPublishDuration.WithLabelValues("registered-topic")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	help := make(map[string]string, len(families))
	for _, fam := range families {
		help[fam.GetName()] = fam.GetHelp()
	}

	for _, name := range []string{
		"kafka_producer_messages_published_total",
		"kafka_producer_publish_errors_total",
		"kafka_producer_publish_duration_seconds",
	} {
		h, ok := help[name]
		assert.True(t, ok, "expected metric %q to be registered", name)
		assert.Contains(t, h, "Kafka", "metric %q help", name)
	}
}

func TestProducerMetrics_Increment(t *testing.T) {
	topic := "metrics-test-producer-topic"
	published := testutil.ToFloat64(ProducerMessagesPublished.WithLabelValues(topic))
	failed := testutil.ToFloat64(ProducerPublishErrors.WithLabelValues(topic))

	ProducerMessagesPublished.WithLabelValues(topic).Inc()
	ProducerMessagesPublished.WithLabelValues(topic).Inc()
	ProducerPublishErrors.WithLabelValues(topic).Inc()

	assert.InDelta(t, published+2, testutil.ToFloat64(ProducerMessagesPublished.WithLabelValues(topic)), 0.001)
	assert.InDelta(t, failed+1, testutil.ToFloat64(ProducerPublishErrors.WithLabelValues(topic)), 0.001)
}
