package events

import "time"

const (
	PaymentScopeLatest = "latest"
	PaymentScopeAll    = "all"
)

// PaymentConfirmed is sent by the payment provider once money has been
// captured for a user's pending orders.
type PaymentConfirmed struct {
	EventType string    `json:"eventType"`
	UserID    string    `json:"userId"`
	Scope     string    `json:"scope"`
	Reference string    `json:"reference,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
