package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/metrics"

	"github.com/Shopify/sarama"
)

const logIdentifier = "[GENERAL-PUBLISHER]"

//go:generate mockgen -source=publisher.go -destination=mock/publisher.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, message any, opts ...PublishOption) error
	// PublishBatch sends messages in a single producer call. keyFn may be nil.
	PublishBatch(ctx context.Context, messages []any, keyFn func(i int) string) error
}

type publishOptions struct {
	key     string
	headers map[string]string
}

type PublishOption func(*publishOptions)

func WithKey(key string) PublishOption {
	return func(opts *publishOptions) {
		opts.key = key
	}
}

func WithHeaders(headers map[string]string) PublishOption {
	return func(opts *publishOptions) {
		opts.headers = headers
	}
}

type publisher struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.PublisherPrometheusMetrics
}

// NewPublisher publishes json messages to topic. m may be nil.
func NewPublisher(p sarama.SyncProducer, topic string, m *metrics.PublisherPrometheusMetrics) Publisher {
	return publisher{
		producer: p,
		topic:    topic,
		metrics:  m,
	}
}

func (d publisher) Publish(ctx context.Context, message any, opts ...PublishOption) (err error) {
	start := time.Now()
	defer func() { d.record(start, 1, err) }()

	options := &publishOptions{}
	for _, opt := range opts {
		opt(options)
	}

	msg, err := d.prepareMessage(message, options)
	if err != nil {
		xlog.Error(ctx, logIdentifier,
			xlog.String("status", "failed prepare message"),
			xlog.Err(err))
		return err
	}

	_, _, err = d.producer.SendMessage(msg)
	if err != nil {
		xlog.Error(ctx, logIdentifier,
			xlog.String("status", "failed send message"),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, logIdentifier,
		xlog.String("status", "success publish message"),
		xlog.String("topic", d.topic),
	)

	return nil
}

func (d publisher) PublishBatch(ctx context.Context, messages []any, keyFn func(i int) string) (err error) {
	if len(messages) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { d.record(start, len(messages), err) }()

	msgs := make([]*sarama.ProducerMessage, 0, len(messages))
	for i, message := range messages {
		options := &publishOptions{}
		if keyFn != nil {
			options.key = keyFn(i)
		}

		msg, errPrepare := d.prepareMessage(message, options)
		if errPrepare != nil {
			err = fmt.Errorf("message %d: %w", i, errPrepare)
			return err
		}
		msgs = append(msgs, msg)
	}

	if err = d.producer.SendMessages(msgs); err != nil {
		xlog.Error(ctx, logIdentifier,
			xlog.String("status", "failed send messages"),
			xlog.Int("count", len(msgs)),
			xlog.Err(err))
		return err
	}

	xlog.Info(ctx, logIdentifier,
		xlog.String("status", "success publish messages"),
		xlog.String("topic", d.topic),
		xlog.Int("count", len(msgs)),
	)

	return nil
}

func (d publisher) record(start time.Time, n int, err error) {
	if d.metrics == nil {
		return
	}
	d.metrics.GenerateMetrics(start, d.topic, n, err)
}

func (d publisher) prepareMessage(message any, opts *publishOptions) (*sarama.ProducerMessage, error) {
	msgByte, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	producerMsg := &sarama.ProducerMessage{
		Topic: d.topic,
		Value: sarama.ByteEncoder(msgByte),
	}

	if opts != nil {
		if opts.key != "" {
			producerMsg.Key = sarama.StringEncoder(opts.key)
		}

		if len(opts.headers) > 0 {
			var headers []sarama.RecordHeader
			for key, value := range opts.headers {
				headers = append(headers, sarama.RecordHeader{
					Key:   []byte(key),
					Value: []byte(value),
				})
			}

			producerMsg.Headers = headers
		}
	}

	return producerMsg, nil
}
