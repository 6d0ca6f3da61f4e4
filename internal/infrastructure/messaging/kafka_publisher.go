package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/event"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/events"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/kafka"
)

const aggregateTypeAssessment = "credit_assessment"

// KafkaPublisher implements port.EventPublisher. Domain events are wrapped
// in the shared envelope and keyed by aggregate ID so all events for one
// assessment land on the same partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		envelope, err := events.NewEnvelope(evt.EventType(), evt.AggregateID(), aggregateTypeAssessment, evt)
		if err != nil {
			return fmt.Errorf("failed to wrap event %s: %w", evt.EventType(), err)
		}

		value, err := envelope.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", evt.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})

		p.logger.Info("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.String("topic", p.topic),
		)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}

	return nil
}
