package session

import (
	"math/rand/v2"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Mainak-2006/rn-zomato/internal/aggregate"
	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

type Summary struct {
	Items         []cart.Item     `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type PaidSummary struct {
	SummaryID string               `json:"summaryId"`
	Lines     []aggregate.PaidLine `json:"items"`
	Total     decimal.Decimal      `json:"total"`
}

func summarize(items []cart.Item) Summary {
	return Summary{
		Items:         items,
		TotalQuantity: aggregate.TotalQuantity(items),
		Subtotal:      aggregate.SumTotal(items),
	}
}

func (s *Session) CartSummary() Summary {
	return summarize(s.Cart())
}

// PendingSummary shows the merged items of every unpaid order, or the cart
// when nothing is awaiting payment.
func (s *Session) PendingSummary() Summary {
	s.mu.Lock()
	unpaid := aggregate.UnpaidItems(s.ledger.Orders())
	current := s.cart.Items()
	s.mu.Unlock()

	if len(unpaid) == 0 {
		return summarize(current)
	}
	return summarize(aggregate.MergeByID(unpaid))
}

// PaidSummary reports every paid item merged by id with line totals. ok is
// false when no order has been paid yet.
func (s *Session) PaidSummary() (PaidSummary, bool) {
	lines := aggregate.CombinePaidOrders(s.Orders())
	if len(lines) == 0 {
		return PaidSummary{}, false
	}
	return PaidSummary{
		SummaryID: s.summaryID(),
		Lines:     lines,
		Total:     aggregate.SumPaidLines(lines),
	}, true
}

// newSummaryID returns a random 9-digit reference for a paid summary.
func newSummaryID() string {
	return strconv.Itoa(100_000_000 + rand.IntN(900_000_000))
}
