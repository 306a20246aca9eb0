// Package aggregate holds pure functions over items and orders used by the
// lifecycle operations and the reporting views.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
	"github.com/Mainak-2006/rn-zomato/internal/order"
)

// PaidLine is one merged entry of the paid-orders report.
type PaidLine struct {
	cart.Item
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// MergeByID collapses items sharing an id into one entry whose quantity is the
// sum. Display fields come from the first occurrence and first-seen order is
// kept. The input is not modified.
func MergeByID(items []cart.Item) []cart.Item {
	out := make([]cart.Item, 0, len(items))
	index := make(map[string]int, len(items))

	for _, it := range items {
		if i, ok := index[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it.Clone())
	}
	return out
}

// CombinePaidOrders flattens the items of paid orders, merges them by id and
// derives the line total of each entry.
func CombinePaidOrders(orders []order.Order) []PaidLine {
	var paid []cart.Item
	for _, o := range orders {
		if o.Paid {
			paid = append(paid, o.Items...)
		}
	}

	merged := MergeByID(paid)
	lines := make([]PaidLine, 0, len(merged))
	for _, it := range merged {
		lines = append(lines, PaidLine{Item: it, TotalPrice: it.LineTotal()})
	}
	return lines
}

func SumTotal(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

func SumPaidLines(lines []PaidLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.TotalPrice)
	}
	return total
}

func TotalQuantity(items []cart.Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// UnpaidItems flattens the items of every unpaid order in ledger order.
func UnpaidItems(orders []order.Order) []cart.Item {
	var out []cart.Item
	for _, o := range orders {
		if !o.Paid {
			out = append(out, cart.CloneItems(o.Items)...)
		}
	}
	return out
}

// FindUnpaidItem returns the first item with the given id among unpaid orders.
func FindUnpaidItem(orders []order.Order, id string) (cart.Item, bool) {
	for _, o := range orders {
		if o.Paid {
			continue
		}
		for _, it := range o.Items {
			if it.ID == id {
				return it.Clone(), true
			}
		}
	}
	return cart.Item{}, false
}
