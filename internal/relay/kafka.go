package relay

import (
	"context"

	apperrors "github.com/Mohahamed99-by/shoe-store-morocco/pkg/errors"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/kafka"
	"github.com/Mohahamed99-by/shoe-store-morocco/pkg/logger"
)

// EventOrderSubmitted is the event type published for every order.
const EventOrderSubmitted = "order.submitted"

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// OrderSubmitted is the payload of an order.submitted event.
type OrderSubmitted struct {
	Reference string `json:"reference"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Message   string `json:"message"`
}

// Kafka publishes orders as events for a downstream fulfilment consumer.
type Kafka struct {
	publisher Publisher
	topic     string
}

// NewKafka creates the driver publishing to topic.
func NewKafka(publisher Publisher, topic string) *Kafka {
	return &Kafka{publisher: publisher, topic: topic}
}

// Name returns "kafka".
func (k *Kafka) Name() string { return "kafka" }

// Send publishes msg and waits for the broker acknowledgement.
func (k *Kafka) Send(ctx context.Context, msg Message) error {
	if msg.Body == "" {
		return ErrEmptyMessage
	}

	event, err := kafka.NewEvent(EventOrderSubmitted, msg.Reference, "order", "storefront", OrderSubmitted{
		Reference: msg.Reference,
		Name:      msg.Name,
		Contact:   msg.Contact,
		Message:   msg.Body,
	})
	if err != nil {
		return apperrors.RelayFailed(k.Name(), err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}
	if id := logger.SessionIDFromContext(ctx); id != "" {
		event.WithMetadata("session_id", id)
	}

	if err := k.publisher.Publish(ctx, k.topic, event); err != nil {
		return apperrors.RelayFailed(k.Name(), err)
	}
	return nil
}
