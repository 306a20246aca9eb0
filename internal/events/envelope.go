package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventEnvelope wraps every published payload.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	OccurredAt    time.Time `json:"occurredAt"`
	Payload       T         `json:"payload"`
}

// EnvelopeMetadata carries correlation/causation context for emitted events.
type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

func (e EventEnvelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

func newEnvelope[T any](name string, version int, producer, partitionKey string, meta EnvelopeMetadata, payload T, now time.Time) EventEnvelope[T] {
	eventID := uuid.NewString()
	correlationID := meta.CorrelationID
	if correlationID == "" {
		correlationID = eventID
	}
	return EventEnvelope[T]{
		EventName:     name,
		EventVersion:  version,
		EventID:       eventID,
		CorrelationID: correlationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  partitionKey,
		OccurredAt:    now,
		Payload:       payload,
	}
}

type metadataKey struct{}

// WithMetadata attaches envelope metadata to ctx so events emitted while
// serving it carry the same correlation id.
func WithMetadata(ctx context.Context, meta EnvelopeMetadata) context.Context {
	return context.WithValue(ctx, metadataKey{}, meta)
}

func MetadataFromContext(ctx context.Context) EnvelopeMetadata {
	meta, _ := ctx.Value(metadataKey{}).(EnvelopeMetadata)
	return meta
}
