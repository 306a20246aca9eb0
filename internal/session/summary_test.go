package session

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSummary(t *testing.T) {
	s := newTestSession(nil)
	ctx := context.Background()
	s.AddItem(ctx, food("a", "Naan", "30"))
	s.AddItem(ctx, food("a", "Naan", "30"))
	s.AddItem(ctx, food("b", "Dal", "110.5"))

	sum := s.CartSummary()
	assert.Equal(t, 3, sum.TotalQuantity)
	assert.True(t, decimal.RequireFromString("170.5").Equal(sum.Subtotal))
	assert.Len(t, sum.Items, 2)
}

func TestPendingSummary_FallsBackToCart(t *testing.T) {
	s := newTestSession(nil)
	ctx := context.Background()
	s.AddItem(ctx, food("a", "Naan", "30"))

	sum := s.PendingSummary()
	require.Len(t, sum.Items, 1)
	assert.Equal(t, "a", sum.Items[0].ID)
}

func TestPendingSummary_MergesUnpaidOrders(t *testing.T) {
	s := newTestSession(nil)
	ctx := context.Background()

	s.AddItem(ctx, food("a", "Naan", "30"))
	s.PlaceOrder(ctx)
	s.AddItem(ctx, food("a", "Naan", "30"))
	s.AddItem(ctx, food("b", "Dal", "100"))
	s.PlaceOrder(ctx)
	s.AddItem(ctx, food("c", "In cart only", "1"))

	sum := s.PendingSummary()
	require.Len(t, sum.Items, 2)
	assert.Equal(t, 2, sum.Items[0].Quantity)
	assert.Equal(t, 3, sum.TotalQuantity)
	assert.True(t, decimal.RequireFromString("160").Equal(sum.Subtotal))
}

func TestPaidSummary(t *testing.T) {
	s := newTestSession(nil)
	ctx := context.Background()

	_, ok := s.PaidSummary()
	assert.False(t, ok)

	s.AddItem(ctx, food("a", "Naan", "10"))
	s.UpdateQuantity(ctx, "a", 2)
	s.Checkout(ctx)
	s.AddItem(ctx, food("a", "Naan", "10"))
	s.PlaceOrder(ctx)

	sum, ok := s.PaidSummary()
	require.True(t, ok)
	assert.Len(t, sum.SummaryID, 9)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, 2, sum.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("20").Equal(sum.Lines[0].TotalPrice))
	assert.True(t, decimal.RequireFromString("20").Equal(sum.Total))
}

func TestRegistry_OneSessionPerUser(t *testing.T) {
	r := NewRegistry(nil, log.New(io.Discard, "", 0))

	a := r.Get("alice")
	assert.Same(t, a, r.Get("alice"))
	assert.NotSame(t, a, r.Get("bob"))
	assert.Equal(t, 2, r.Len())

	_, ok := r.Lookup("carol")
	assert.False(t, ok)
	got, ok := r.Lookup("bob")
	require.True(t, ok)
	assert.Equal(t, "bob", got.UserID())
}
