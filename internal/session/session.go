package session

import (
	"context"
	"log"
	"sync"

	"github.com/Mainak-2006/rn-zomato/internal/aggregate"
	"github.com/Mainak-2006/rn-zomato/internal/cart"
	"github.com/Mainak-2006/rn-zomato/internal/metrics"
	"github.com/Mainak-2006/rn-zomato/internal/order"
)

// Publisher receives lifecycle notifications after a state change has been
// applied. Failures are logged and never undo the change.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, userID string, o order.Order) error
	PublishOrderPaid(ctx context.Context, userID string, o order.Order, mergedCount int) error
}

const (
	OpAddItem        = "add_item"
	OpRemoveItem     = "remove_item"
	OpUpdateQuantity = "update_quantity"
	OpPlaceOrder     = "place_order"
	OpMarkLatestPaid = "mark_latest_paid"
	OpMarkAllPaid    = "mark_all_paid"
	OpCheckout       = "checkout"
	OpOrderNow       = "order_now"
)

// Session owns one user's cart and order ledger. Every operation runs under
// the session mutex and computes from the latest state; reads return copies.
type Session struct {
	mu     sync.Mutex
	userID string
	cart   *cart.Store
	ledger *order.Ledger

	publisher Publisher
	logger    *log.Logger
	summaryID func() string
}

func New(userID string, publisher Publisher, logger *log.Logger, opts ...order.Option) *Session {
	s := &Session{
		userID:    userID,
		ledger:    order.NewLedger(opts...),
		publisher: publisher,
		logger:    logger,
		summaryID: newSummaryID,
	}
	s.cart = cart.NewStore(func(id string) (cart.Item, bool) {
		return aggregate.FindUnpaidItem(s.ledger.Orders(), id)
	})
	return s
}

func (s *Session) UserID() string { return s.userID }

func (s *Session) AddItem(_ context.Context, item cart.Item) {
	s.mu.Lock()
	s.cart.Add(item)
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpAddItem, true)
}

func (s *Session) RemoveItem(_ context.Context, id string) bool {
	s.mu.Lock()
	ok := s.cart.Remove(id)
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpRemoveItem, ok)
	return ok
}

func (s *Session) UpdateQuantity(_ context.Context, id string, quantity int) bool {
	s.mu.Lock()
	ok := s.cart.UpdateQuantity(id, quantity)
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpUpdateQuantity, ok)
	return ok
}

// PlaceOrder commits the cart into a new unpaid order and empties the cart in
// one step. An empty cart is a no-op.
func (s *Session) PlaceOrder(ctx context.Context) (order.Order, bool) {
	s.mu.Lock()
	placed, ok := s.placeLocked()
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpPlaceOrder, ok)
	if ok {
		s.notifyPlaced(ctx, placed)
	}
	return placed, ok
}

// OrderNow adds item to the cart when it is not already there, then places
// the order with everything in the cart.
func (s *Session) OrderNow(ctx context.Context, item cart.Item) (order.Order, bool) {
	s.mu.Lock()
	if !s.cart.Contains(item.ID) {
		s.cart.Add(item)
	}
	placed, ok := s.placeLocked()
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpOrderNow, ok)
	if ok {
		s.notifyPlaced(ctx, placed)
	}
	return placed, ok
}

// MarkLatestOrderPaid marks the most recently created unpaid order as paid.
func (s *Session) MarkLatestOrderPaid(ctx context.Context) (order.Order, bool) {
	s.mu.Lock()
	paid, ok := s.ledger.MarkLatestPaid()
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpMarkLatestPaid, ok)
	if ok {
		s.notifyPaid(ctx, paid, 1)
	}
	return paid, ok
}

// MarkAllOrdersPaid replaces every unpaid order with one paid order whose
// items are merged by id. Repeating it is a no-op.
func (s *Session) MarkAllOrdersPaid(ctx context.Context) (order.Order, bool) {
	s.mu.Lock()
	retired := s.ledger.UnpaidCount()
	merged, ok := s.ledger.ReplaceUnpaid(aggregate.MergeByID(aggregate.UnpaidItems(s.ledger.Orders())))
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpMarkAllPaid, ok)
	if ok {
		s.notifyPaid(ctx, merged, retired)
	}
	return merged, ok
}

// Checkout is the pay-now flow: commit the cart when it has anything in it,
// then mark the most recent unpaid order paid.
func (s *Session) Checkout(ctx context.Context) (order.Order, bool) {
	s.mu.Lock()
	placed, didPlace := s.placeLocked()
	paid, ok := s.ledger.MarkLatestPaid()
	s.mu.Unlock()

	metrics.RecordLifecycleOperation(OpCheckout, ok)
	if didPlace {
		s.notifyPlaced(ctx, placed)
	}
	if ok {
		s.notifyPaid(ctx, paid, 1)
	}
	return paid, ok
}

func (s *Session) Cart() []cart.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Session) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Orders()
}

func (s *Session) placeLocked() (order.Order, bool) {
	if s.cart.Len() == 0 {
		return order.Order{}, false
	}
	placed, ok := s.ledger.Create(s.cart.Items())
	if ok {
		s.cart.Clear()
	}
	return placed, ok
}

func (s *Session) notifyPlaced(ctx context.Context, o order.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPlaced(ctx, s.userID, o); err != nil {
		s.logger.Printf("publish order placed failed (user=%s order=%s): %v", s.userID, o.ID, err)
	}
}

func (s *Session) notifyPaid(ctx context.Context, o order.Order, mergedCount int) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPaid(ctx, s.userID, o, mergedCount); err != nil {
		s.logger.Printf("publish order paid failed (user=%s order=%s): %v", s.userID, o.ID, err)
	}
}
