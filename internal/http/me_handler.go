package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mainak-2006/rn-zomato/internal/aggregate"
	"github.com/Mainak-2006/rn-zomato/internal/cart"
	"github.com/Mainak-2006/rn-zomato/internal/catalog"
	"github.com/Mainak-2006/rn-zomato/internal/identity"
	"github.com/Mainak-2006/rn-zomato/internal/order"
	"github.com/Mainak-2006/rn-zomato/internal/session"
)

// FoodLookup resolves a catalog food by id for add-to-cart by reference.
type FoodLookup interface {
	Food(ctx context.Context, id string) (catalog.Food, error)
}

// MeHandler serves the signed-in user's profile, cart and orders.
type MeHandler struct {
	sessions *session.Registry
	foods    FoodLookup
	timeout  time.Duration
	logger   *log.Logger
}

func NewMeHandler(sessions *session.Registry, foods FoodLookup, timeout time.Duration, logger *log.Logger) *MeHandler {
	return &MeHandler{sessions: sessions, foods: foods, timeout: timeout, logger: logger}
}

type orderView struct {
	order.Order
	Status   order.Status    `json:"status"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func newOrderView(o order.Order) orderView {
	return orderView{Order: o, Status: o.Status(), Subtotal: aggregate.SumTotal(o.Items)}
}

func (h *MeHandler) session(r *http.Request) (*session.Session, identity.Profile, bool) {
	p, ok := identity.FromContext(r.Context())
	if !ok {
		return nil, identity.Profile{}, false
	}
	return h.sessions.Get(p.UserID), p, true
}

func (h *MeHandler) Profile(w http.ResponseWriter, r *http.Request) {
	_, p, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *MeHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, s.CartSummary())
}

// AddItem accepts either a full item or {"foodId": "..."} resolved through
// the catalog.
func (h *MeHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	var ref struct {
		FoodID string `json:"foodId"`
	}
	if err := json.Unmarshal(raw, &ref); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	var item cart.Item
	if ref.FoodID != "" {
		if item, ok = h.resolveFood(w, r, ref.FoodID); !ok {
			return
		}
	} else {
		if err := json.Unmarshal(raw, &item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	if item.ID == "" {
		writeError(w, http.StatusBadRequest, "item id is required")
		return
	}

	s.AddItem(r.Context(), item)
	writeJSON(w, http.StatusOK, s.CartSummary())
}

// resolveFood writes the error response itself when it reports false.
func (h *MeHandler) resolveFood(w http.ResponseWriter, r *http.Request, id string) (cart.Item, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	food, err := h.foods.Food(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "food not found")
			return cart.Item{}, false
		}
		h.logger.Printf("resolve food %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load food")
		return cart.Item{}, false
	}
	return food.LineItem(), true
}

func (h *MeHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	updated := s.UpdateQuantity(r.Context(), pathParam(r, "itemId"), *body.Quantity)
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": updated,
		"cart":    s.CartSummary(),
	})
}

func (h *MeHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	removed := s.RemoveItem(r.Context(), pathParam(r, "itemId"))
	writeJSON(w, http.StatusOK, map[string]any{
		"removed": removed,
		"cart":    s.CartSummary(),
	})
}

func (h *MeHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders := s.Orders()
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderView(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// PlaceOrder commits the cart. A body of {"foodId": "..."} orders that food
// right away, adding it to the cart first when it is not already there.
func (h *MeHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	var ref struct {
		FoodID string `json:"foodId"`
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &ref); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	var (
		o      order.Order
		placed bool
	)
	if ref.FoodID != "" {
		item, ok := h.resolveFood(w, r, ref.FoodID)
		if !ok {
			return
		}
		o, placed = s.OrderNow(r.Context(), item)
	} else {
		o, placed = s.PlaceOrder(r.Context())
	}

	if !placed {
		writeJSON(w, http.StatusOK, map[string]bool{"placed": false})
		return
	}
	writeJSON(w, http.StatusCreated, newOrderView(o))
}

func (h *MeHandler) PayLatest(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, (*session.Session).MarkLatestOrderPaid)
}

func (h *MeHandler) PayAll(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, (*session.Session).MarkAllOrdersPaid)
}

func (h *MeHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, (*session.Session).Checkout)
}

func (h *MeHandler) pay(w http.ResponseWriter, r *http.Request, op func(*session.Session, context.Context) (order.Order, bool)) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	o, paid := op(s, r.Context())
	if !paid {
		writeJSON(w, http.StatusOK, map[string]bool{"paid": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"paid":  true,
		"order": newOrderView(o),
	})
}

func (h *MeHandler) PendingOrders(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, s.PendingSummary())
}

func (h *MeHandler) PaidSummary(w http.ResponseWriter, r *http.Request) {
	s, _, ok := h.session(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, ok := s.PaidSummary()
	if !ok {
		writeError(w, http.StatusNotFound, "no paid orders")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
