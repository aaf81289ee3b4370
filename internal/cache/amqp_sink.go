package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/shopcore/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyInvalidated = "inventory.invalidated"

// Publisher is the subset of *amqp.Channel used by AMQPSink.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPSink announces invalidations on a topic exchange so that other
// replicas can evict their own caches.
type AMQPSink struct {
	publisher Publisher
	exchange  string
}

func NewAMQPSink(publisher Publisher, exchange string) *AMQPSink {
	return &AMQPSink{publisher: publisher, exchange: exchange}
}

// DeclareExchange declares the durable topic exchange the sink publishes to.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("ch.ExchangeDeclare: %w", err)
	}
	return nil
}

func (s *AMQPSink) Name() string { return "amqp" }

func (s *AMQPSink) Deliver(ctx context.Context, inv domain.Invalidation) error {
	body, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	err = s.publisher.PublishWithContext(ctx, s.exchange, RoutingKeyInvalidated, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    inv.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publisher.PublishWithContext: %w", err)
	}

	return nil
}
