package events

import (
	"context"

	"fastfix/pkg/kafka"
	"fastfix/pkg/logger"
)

const source = "fastfix-marketplace"

// Publisher is the seam the lifecycle services publish through. Publishing is
// best-effort: a broker outage must never fail or roll back a booking.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType, key string, payload any) {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish lifecycle event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, string, any) {}
