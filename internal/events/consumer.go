package events

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// StartConsumer declares a durable queue bound to routingKey on the events
// exchange and feeds its deliveries to handler until ctx is cancelled.
func StartConsumer(ctx context.Context, conn *amqp.Connection, routingKey string, handler HandlerFunc, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare events exchange: %w", err)
	}

	queue := ServiceQueue(routingKey)
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, routingKey, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s: %w", queue, err)
	}

	msgs, err := ch.Consume(queue, ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		defer ch.Close()
		consume(ctx, queue, msgs, handler, logger)
	}()
	return nil
}

func consume(ctx context.Context, queue string, msgs <-chan amqp.Delivery, handler HandlerFunc, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			logger.Printf("stopping %s consumer", queue)
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Printf("%s: delivery channel closed", queue)
				return
			}

			msgCtx := WithMetadata(ctx, EnvelopeMetadata{
				CorrelationID: msg.CorrelationId,
				CausationID:   msg.MessageId,
			})
			if err := handler(msgCtx, msg.Body); err != nil {
				logger.Printf("%s: handle message: %v", queue, err)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}
