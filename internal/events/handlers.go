package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/Mainak-2006/rn-zomato/internal/session"
)

// HandlerFunc processes one message body. A returned error nacks the message.
type HandlerFunc func(ctx context.Context, body []byte) error

// Deduper claims a message key for a consumer, reporting false when the key
// was already claimed.
type Deduper interface {
	MarkProcessed(ctx context.Context, consumer, key string) (bool, error)
}

// PaymentConfirmedHandler settles a user's unpaid orders when the payment
// provider confirms capture. Users without a session have nothing to settle.
// When seen is non-nil, a payment reference is applied at most once; it is
// only claimed once there is a session to settle.
func PaymentConfirmedHandler(sessions *session.Registry, seen Deduper, logger *log.Logger) HandlerFunc {
	consumer := ServiceQueue(PaymentConfirmedRoutingKey)

	return func(ctx context.Context, body []byte) error {
		var ev PaymentConfirmed
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal PaymentConfirmed: %w", err)
		}
		if ev.UserID == "" {
			return fmt.Errorf("PaymentConfirmed missing userId")
		}
		if ev.Scope == "" {
			ev.Scope = PaymentScopeLatest
		}
		if ev.Scope != PaymentScopeLatest && ev.Scope != PaymentScopeAll {
			return fmt.Errorf("unknown payment scope %q", ev.Scope)
		}

		s, ok := sessions.Lookup(ev.UserID)
		if !ok {
			logger.Printf("payment confirmed for user %s without a session; ignoring", ev.UserID)
			return nil
		}

		if seen != nil && ev.Reference != "" {
			fresh, err := seen.MarkProcessed(ctx, consumer, ev.Reference)
			if err != nil {
				return fmt.Errorf("dedup payment %s: %w", ev.Reference, err)
			}
			if !fresh {
				logger.Printf("duplicate payment %s for user %s; skipping", ev.Reference, ev.UserID)
				return nil
			}
		}

		if ev.Scope == PaymentScopeAll {
			if o, ok := s.MarkAllOrdersPaid(ctx); ok {
				logger.Printf("unpaid orders merged into %s for user %s (ref=%s)", o.ID, ev.UserID, ev.Reference)
				return nil
			}
		} else if o, ok := s.MarkLatestOrderPaid(ctx); ok {
			logger.Printf("order %s paid for user %s (ref=%s)", o.ID, ev.UserID, ev.Reference)
			return nil
		}
		logger.Printf("payment for user %s had no unpaid order", ev.UserID)
		return nil
	}
}
