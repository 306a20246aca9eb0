package events

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
	"github.com/Mainak-2006/rn-zomato/internal/session"
)

func registryWithTwoUnpaid(t *testing.T) *session.Registry {
	t.Helper()
	reg := session.NewRegistry(nil, log.New(io.Discard, "", 0))
	s := reg.Get("user-1")
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		s.AddItem(ctx, cart.Item{ID: id, Name: id, Price: decimal.NewFromInt(10)})
		_, ok := s.PlaceOrder(ctx)
		require.True(t, ok)
	}
	return reg
}

func TestPaymentConfirmedHandler_Latest(t *testing.T) {
	reg := registryWithTwoUnpaid(t)
	h := PaymentConfirmedHandler(reg, nil, log.New(io.Discard, "", 0))

	require.NoError(t, h(context.Background(), []byte(`{"eventType":"PaymentConfirmed","userId":"user-1","scope":"latest"}`)))

	s, _ := reg.Lookup("user-1")
	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.False(t, orders[0].Paid)
	assert.True(t, orders[1].Paid)
}

func TestPaymentConfirmedHandler_All(t *testing.T) {
	reg := registryWithTwoUnpaid(t)
	h := PaymentConfirmedHandler(reg, nil, log.New(io.Discard, "", 0))

	require.NoError(t, h(context.Background(), []byte(`{"userId":"user-1","scope":"all"}`)))

	s, _ := reg.Lookup("user-1")
	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Paid)
	assert.Len(t, orders[0].Items, 2)
}

func TestPaymentConfirmedHandler_UnknownUserIsIgnored(t *testing.T) {
	reg := session.NewRegistry(nil, log.New(io.Discard, "", 0))
	h := PaymentConfirmedHandler(reg, nil, log.New(io.Discard, "", 0))

	require.NoError(t, h(context.Background(), []byte(`{"userId":"ghost","scope":"all"}`)))
	assert.Equal(t, 0, reg.Len())
}

func TestPaymentConfirmedHandler_BadPayloads(t *testing.T) {
	reg := registryWithTwoUnpaid(t)
	h := PaymentConfirmedHandler(reg, nil, log.New(io.Discard, "", 0))

	assert.Error(t, h(context.Background(), []byte(`not json`)))
	assert.Error(t, h(context.Background(), []byte(`{"scope":"all"}`)))
	assert.Error(t, h(context.Background(), []byte(`{"userId":"user-1","scope":"some"}`)))
}

type fakeDeduper struct {
	seen map[string]bool
	err  error
}

func (f *fakeDeduper) MarkProcessed(_ context.Context, consumer, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	k := consumer + "/" + key
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

func TestPaymentConfirmedHandler_RedeliveryIsSkipped(t *testing.T) {
	reg := registryWithTwoUnpaid(t)
	h := PaymentConfirmedHandler(reg, &fakeDeduper{seen: map[string]bool{}}, log.New(io.Discard, "", 0))
	body := []byte(`{"userId":"user-1","scope":"latest","reference":"pay-42"}`)

	require.NoError(t, h(context.Background(), body))
	require.NoError(t, h(context.Background(), body))

	s, _ := reg.Lookup("user-1")
	orders := s.Orders()
	assert.False(t, orders[0].Paid, "second delivery must not pay another order")
	assert.True(t, orders[1].Paid)
}

func TestPaymentConfirmedHandler_DedupErrorNacks(t *testing.T) {
	reg := registryWithTwoUnpaid(t)
	h := PaymentConfirmedHandler(reg, &fakeDeduper{err: errors.New("db down")}, log.New(io.Discard, "", 0))

	err := h(context.Background(), []byte(`{"userId":"user-1","reference":"pay-1"}`))
	require.Error(t, err)

	s, _ := reg.Lookup("user-1")
	for _, o := range s.Orders() {
		assert.False(t, o.Paid)
	}
}

func TestPaymentConfirmedHandler_UnknownUserDoesNotClaimReference(t *testing.T) {
	reg := session.NewRegistry(nil, log.New(io.Discard, "", 0))
	seen := &fakeDeduper{seen: map[string]bool{}}
	h := PaymentConfirmedHandler(reg, seen, log.New(io.Discard, "", 0))
	body := []byte(`{"userId":"late-user","scope":"latest","reference":"pay-7"}`)

	require.NoError(t, h(context.Background(), body))
	assert.Empty(t, seen.seen)

	ctx := context.Background()
	s := reg.Get("late-user")
	s.AddItem(ctx, cart.Item{ID: "a", Name: "a", Price: decimal.NewFromInt(10)})
	_, ok := s.PlaceOrder(ctx)
	require.True(t, ok)

	require.NoError(t, h(ctx, body))
	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Paid)
}
