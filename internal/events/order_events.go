package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mainak-2006/rn-zomato/internal/aggregate"
	"github.com/Mainak-2006/rn-zomato/internal/order"
)

const (
	EventNameOrderPlaced = "OrderPlaced"
	EventNameOrderPaid   = "OrderPaid"
)

type OrderItem struct {
	ItemID     string          `json:"itemId"`
	Name       string          `json:"name"`
	Restaurant string          `json:"restaurant,omitempty"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

type OrderPlacedPayload struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	Items       []OrderItem     `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PlacedAt    time.Time       `json:"placedAt"`
}

type OrderPaidPayload struct {
	OrderID     string          `json:"orderId"`
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Merged      bool            `json:"merged"`
	MergedCount int             `json:"mergedCount"`
}

type OrderPlacedEvent = EventEnvelope[OrderPlacedPayload]
type OrderPaidEvent = EventEnvelope[OrderPaidPayload]

func newOrderPlacedEvent(meta EnvelopeMetadata, producer, userID string, o order.Order, now time.Time) OrderPlacedEvent {
	payload := OrderPlacedPayload{
		OrderID:     o.ID,
		UserID:      userID,
		TotalAmount: aggregate.SumTotal(o.Items),
		PlacedAt:    o.CreatedAt,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, OrderItem{
			ItemID:     it.ID,
			Name:       it.Name,
			Restaurant: it.Restaurant,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return newEnvelope(EventNameOrderPlaced, 1, producer, o.ID, meta, payload, now)
}

// newOrderPaidEvent describes a paid order. mergedCount is the number of
// unpaid orders it replaced; more than one means a merge happened.
func newOrderPaidEvent(meta EnvelopeMetadata, producer, userID string, o order.Order, mergedCount int, now time.Time) OrderPaidEvent {
	payload := OrderPaidPayload{
		OrderID:     o.ID,
		UserID:      userID,
		TotalAmount: aggregate.SumTotal(o.Items),
		Merged:      mergedCount > 1,
		MergedCount: mergedCount,
	}
	return newEnvelope(EventNameOrderPaid, 1, producer, o.ID, meta, payload, now)
}
