package dlqpublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"

	"github.com/Shopify/sarama"
)

const prefixLogMessage = "[DLQ]"

// Publisher parks a payload that a sink could not accept after its retries.
//
//go:generate mockgen -source=dlq.go -destination=mock/dlq.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, message models.FailedMessage) error
}

type kafkaDlq struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.PublisherPrometheusMetrics
}

// New publishes failed messages as json to topic. m may be nil.
func New(p sarama.SyncProducer, topic string, m *metrics.PublisherPrometheusMetrics) Publisher {
	return kafkaDlq{p, topic, m}
}

func (d kafkaDlq) Publish(ctx context.Context, message models.FailedMessage) (err error) {
	startTime := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.GenerateMetrics(startTime, d.topic, 1, err)
		}
	}()

	msg, err := d.prepareMessage(message)
	if err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "prepare kafkaDlq message failed"),
			xlog.Err(err))
		return err
	}

	_, _, err = d.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(ctx, prefixLogMessage,
			xlog.String("status", "publish kafkaDlq failed"),
			xlog.String("batchId", message.BatchID),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, prefixLogMessage,
		xlog.String("status", "success publish kafkaDlq message"),
		xlog.String("sink", message.Sink),
		xlog.String("batchId", message.BatchID),
		xlog.String("topic", d.topic),
	)

	return nil
}

func (d kafkaDlq) prepareMessage(message models.FailedMessage) (*sarama.ProducerMessage, error) {
	if message.CauseError != nil && message.Error == "" {
		message.Error = message.CauseError.Error()
	}

	msgByte, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(message.BatchID),
		Value: sarama.ByteEncoder(msgByte),
	}, nil
}
