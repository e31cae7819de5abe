package setup

import (
	dlqpublisher "bitbucket.org/Amartha/go-accounting-landing/internal/common/dlq_publisher"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/publisher"
)

// PublisherClient holds the kafka side of the sinks. Landing is nil when the
// kafka sink is disabled.
type PublisherClient struct {
	Landing publisher.Publisher
	DLQ     dlqpublisher.Publisher
}
