package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

func items(ids ...string) []cart.Item {
	out := make([]cart.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, cart.Item{ID: id, Name: "item " + id, Price: decimal.NewFromInt(10), Quantity: 1})
	}
	return out
}

func sequentialIDs(ids ...string) func() string {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestLedgerCreate_EmptyIsNoop(t *testing.T) {
	l := NewLedger()

	_, ok := l.Create(nil)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLedgerCreate_CopiesItems(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewLedger(WithIDGenerator(sequentialIDs("o1")), WithClock(func() time.Time { return now }))

	in := items("a", "b")
	o, ok := l.Create(in)
	require.True(t, ok)
	assert.Equal(t, "o1", o.ID)
	assert.False(t, o.Paid)
	assert.Equal(t, now, o.CreatedAt)
	assert.Equal(t, StatusUnpaid, o.Status())

	in[0].Quantity = 50
	assert.Equal(t, 1, l.Orders()[0].Items[0].Quantity)
}

func TestLedgerCreate_IDsStayUnique(t *testing.T) {
	l := NewLedger(WithIDGenerator(sequentialIDs("same")))

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		o, ok := l.Create(items("a"))
		require.True(t, ok)
		require.False(t, seen[o.ID], "duplicate id %s", o.ID)
		seen[o.ID] = true
	}
}

func TestLedgerCreate_CollisionSuffixesCollidingID(t *testing.T) {
	l := NewLedger(WithIDGenerator(sequentialIDs("same")))

	var got []string
	for i := 0; i < 3; i++ {
		o, ok := l.Create(items("a"))
		require.True(t, ok)
		got = append(got, o.ID)
	}
	assert.Equal(t, []string{"same", "same-2", "same-3"}, got)
}

func TestLedgerMarkLatestPaid_PicksMostRecentUnpaid(t *testing.T) {
	l := NewLedger(WithIDGenerator(sequentialIDs("o1", "o2", "o3")))
	l.Create(items("a"))
	l.Create(items("b"))
	l.Create(items("c"))

	o, ok := l.MarkLatestPaid()
	require.True(t, ok)
	assert.Equal(t, "o3", o.ID)

	o, ok = l.MarkLatestPaid()
	require.True(t, ok)
	assert.Equal(t, "o2", o.ID)

	orders := l.Orders()
	assert.False(t, orders[0].Paid)
	assert.True(t, orders[1].Paid)
	assert.True(t, orders[2].Paid)
}

func TestLedgerMarkLatestPaid_NoneUnpaid(t *testing.T) {
	l := NewLedger()
	_, ok := l.MarkLatestPaid()
	assert.False(t, ok)

	l.Create(items("a"))
	l.MarkLatestPaid()

	_, ok = l.MarkLatestPaid()
	assert.False(t, ok)
}

func TestLedgerReplaceUnpaid(t *testing.T) {
	l := NewLedger(WithIDGenerator(sequentialIDs("o1", "o2", "o3", "m1")))
	l.Create(items("a"))
	l.Create(items("b"))
	l.MarkLatestPaid()
	l.Create(items("c"))

	merged, ok := l.ReplaceUnpaid(items("a", "c"))
	require.True(t, ok)
	assert.Equal(t, "m1", merged.ID)
	assert.True(t, merged.Paid)

	orders := l.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "m1", orders[1].ID)
	assert.Equal(t, 0, l.UnpaidCount())
}

func TestLedgerReplaceUnpaid_NothingUnpaid(t *testing.T) {
	l := NewLedger()
	l.Create(items("a"))
	l.MarkLatestPaid()

	_, ok := l.ReplaceUnpaid(items("a"))
	assert.False(t, ok)
	assert.Equal(t, 1, l.Len())
}

func TestLedgerOrders_ReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Create(items("a"))

	out := l.Orders()
	out[0].Paid = true
	out[0].Items[0].Name = "mutated"

	again := l.Orders()
	assert.False(t, again[0].Paid)
	assert.Equal(t, "item a", again[0].Items[0].Name)
}
