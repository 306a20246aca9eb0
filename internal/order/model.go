package order

import (
	"time"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// Order is an immutable snapshot of a committed cart. Paid is the only field
// that changes after creation, and only from false to true.
type Order struct {
	ID        string      `json:"orderId"`
	Items     []cart.Item `json:"items"`
	Paid      bool        `json:"paid"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (o Order) Status() Status {
	if o.Paid {
		return StatusPaid
	}
	return StatusUnpaid
}

func (o Order) Clone() Order {
	out := o
	out.Items = cart.CloneItems(o.Items)
	return out
}
