// Package events defines the wire envelope shared by all event producers
// and consumers in CreditBridge. Every published event carries the same
// metadata regardless of which service emitted it.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps a serialized domain event with routing metadata.
type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a payload value in an Envelope, serializing it to JSON.
func NewEnvelope(eventType string, aggregateID uuid.UUID, aggregateType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}

	return Envelope{
		EventID:       uuid.New(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		OccurredAt:    time.Now().UTC(),
		Payload:       data,
	}, nil
}

// Encode serializes the envelope for transport.
func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return data, nil
}

// DecodeEnvelope deserializes a transport message into an Envelope.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return e, nil
}
