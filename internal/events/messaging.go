package events

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange = "ecommerce.events"

	OrderPlacedRoutingKey      = "order.placed.v1"
	OrderPaidRoutingKey        = "order.paid.v1"
	PaymentConfirmedRoutingKey = "payment.confirmed.v1"

	ServiceName = "foodorder"
)

// ServiceQueue names the durable queue this service binds for a routing key.
func ServiceQueue(routingKey string) string {
	return ServiceName + "." + routingKey
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
}
