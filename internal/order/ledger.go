package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Mainak-2006/rn-zomato/internal/cart"
)

// Ledger is the ordered history of orders, oldest first. It is not safe for
// concurrent use; the owning session serialises access.
type Ledger struct {
	orders []Order
	seen   map[string]struct{}
	newID  func() string
	now    func() time.Time
}

type Option func(*Ledger)

func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(l *Ledger) { l.now = fn }
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		seen:  make(map[string]struct{}),
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Create appends a new unpaid order holding a deep copy of items. Empty input
// creates nothing.
func (l *Ledger) Create(items []cart.Item) (Order, bool) {
	if len(items) == 0 {
		return Order{}, false
	}

	o := Order{
		ID:        l.nextID(),
		Items:     cart.CloneItems(items),
		CreatedAt: l.now(),
	}
	l.orders = append(l.orders, o)
	return o.Clone(), true
}

// MarkLatestPaid flips the most recently created unpaid order to paid.
func (l *Ledger) MarkLatestPaid() (Order, bool) {
	for i := len(l.orders) - 1; i >= 0; i-- {
		if !l.orders[i].Paid {
			l.orders[i].Paid = true
			return l.orders[i].Clone(), true
		}
	}
	return Order{}, false
}

// ReplaceUnpaid retires every unpaid order and appends one paid order holding
// merged. Paid orders keep their relative order. It is a no-op when nothing is
// unpaid or merged is empty.
func (l *Ledger) ReplaceUnpaid(merged []cart.Item) (Order, bool) {
	if l.UnpaidCount() == 0 || len(merged) == 0 {
		return Order{}, false
	}

	kept := make([]Order, 0, len(l.orders)+1)
	for _, o := range l.orders {
		if o.Paid {
			kept = append(kept, o)
		}
	}

	o := Order{
		ID:        l.nextID(),
		Items:     cart.CloneItems(merged),
		Paid:      true,
		CreatedAt: l.now(),
	}
	l.orders = append(kept, o)
	return o.Clone(), true
}

// Orders returns a deep copy of the ledger, oldest first.
func (l *Ledger) Orders() []Order {
	out := make([]Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (l *Ledger) UnpaidCount() int {
	n := 0
	for _, o := range l.orders {
		if !o.Paid {
			n++
		}
	}
	return n
}

func (l *Ledger) Len() int {
	return len(l.orders)
}

// nextID returns an id unused by any order this ledger has issued, including
// retired ones. A colliding id gets a -2, -3, ... suffix.
func (l *Ledger) nextID() string {
	base := l.newID()
	id := base
	for n := 2; ; n++ {
		if _, dup := l.seen[id]; !dup {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	l.seen[id] = struct{}{}
	return id
}
