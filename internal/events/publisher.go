package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Mainak-2006/rn-zomato/internal/order"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher emits order lifecycle events on the shared topic exchange.
type Publisher struct {
	ch       amqpChannel
	producer string
	now      func() time.Time
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return newPublisher(ch), nil
}

func newPublisher(ch amqpChannel) *Publisher {
	return &Publisher{
		ch:       ch,
		producer: ServiceName,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, userID string, o order.Order) error {
	ev := newOrderPlacedEvent(MetadataFromContext(ctx), p.producer, userID, o, p.now())
	return p.publishJSON(ctx, OrderPlacedRoutingKey, ev.EventID, ev.CorrelationID, ev)
}

func (p *Publisher) PublishOrderPaid(ctx context.Context, userID string, o order.Order, mergedCount int) error {
	ev := newOrderPaidEvent(MetadataFromContext(ctx), p.producer, userID, o, mergedCount, p.now())
	return p.publishJSON(ctx, OrderPaidRoutingKey, ev.EventID, ev.CorrelationID, ev)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID, correlationID string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", routingKey, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: correlationID,
			Timestamp:     p.now(),
			Body:          body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// NopPublisher drops every event. Used when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, string, order.Order) error { return nil }

func (NopPublisher) PublishOrderPaid(context.Context, string, order.Order, int) error { return nil }
