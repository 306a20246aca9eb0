package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
	"github.com/Mainak-2006/rn-zomato/internal/order"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent       []published
	publishErr error
	closed     bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testOrder() order.Order {
	return order.Order{
		ID: "order-1",
		Items: []cart.Item{
			{ID: "f1", Name: "Masala Dosa", Price: decimal.RequireFromString("95"), Quantity: 2},
			{ID: "f2", Name: "Filter Coffee", Price: decimal.RequireFromString("40"), Quantity: 1},
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestPublisher_OrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch)
	ctx := WithMetadata(context.Background(), EnvelopeMetadata{CorrelationID: "corr-1"})

	require.NoError(t, p.PublishOrderPlaced(ctx, "user-7", testOrder()))
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, EventsExchange, sent.exchange)
	assert.Equal(t, OrderPlacedRoutingKey, sent.key)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)
	assert.Equal(t, "corr-1", sent.msg.CorrelationId)

	var ev OrderPlacedEvent
	require.NoError(t, json.Unmarshal(sent.msg.Body, &ev))
	require.NoError(t, ev.Validate(EventNameOrderPlaced, 1))
	assert.Equal(t, "order-1", ev.PartitionKey)
	assert.Equal(t, "corr-1", ev.CorrelationID)
	assert.Equal(t, ServiceName, ev.Producer)
	assert.Equal(t, sent.msg.MessageId, ev.EventID)
	assert.Equal(t, "user-7", ev.Payload.UserID)
	require.Len(t, ev.Payload.Items, 2)
	assert.True(t, decimal.RequireFromString("230").Equal(ev.Payload.TotalAmount))
}

func TestPublisher_OrderPaidMerged(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch)

	o := testOrder()
	o.Paid = true
	require.NoError(t, p.PublishOrderPaid(context.Background(), "user-7", o, 3))

	var ev OrderPaidEvent
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &ev))
	require.NoError(t, ev.Validate(EventNameOrderPaid, 1))
	assert.Equal(t, OrderPaidRoutingKey, ch.sent[0].key)
	assert.True(t, ev.Payload.Merged)
	assert.Equal(t, 3, ev.Payload.MergedCount)
	assert.NotEmpty(t, ev.CorrelationID, "a correlation id is generated when none is supplied")
}

func TestPublisher_WrapsChannelErrors(t *testing.T) {
	boom := errors.New("channel closed")
	p := newPublisher(&fakeChannel{publishErr: boom})

	err := p.PublishOrderPaid(context.Background(), "user-7", testOrder(), 1)
	require.ErrorIs(t, err, boom)
}

func TestEnvelopeValidate(t *testing.T) {
	ev := newOrderPaidEvent(EnvelopeMetadata{}, ServiceName, "u", testOrder(), 1, time.Now())
	require.NoError(t, ev.Validate(EventNameOrderPaid, 1))

	assert.Error(t, ev.Validate(EventNameOrderPlaced, 1))
	assert.Error(t, ev.Validate(EventNameOrderPaid, 2))

	ev.PartitionKey = ""
	assert.Error(t, ev.Validate(EventNameOrderPaid, 1))
}
