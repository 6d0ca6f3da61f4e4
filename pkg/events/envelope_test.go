package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEnvelope(t *testing.T) {
	aggregateID := uuid.New()
	payload := map[string]any{"final_credit_score": 69}

	before := time.Now().UTC()
	envelope, err := NewEnvelope("scoring.assessment.completed", aggregateID, "credit_assessment", payload)
	after := time.Now().UTC()

	if err != nil {
		t.Fatalf("NewEnvelope() error = %v", err)
	}

	if envelope.EventID == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if envelope.EventType != "scoring.assessment.completed" {
		t.Errorf("expected event type %q, got %q", "scoring.assessment.completed", envelope.EventType)
	}
	if envelope.AggregateID != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, envelope.AggregateID)
	}
	if envelope.AggregateType != "credit_assessment" {
		t.Errorf("expected aggregate type %q, got %q", "credit_assessment", envelope.AggregateType)
	}
	if envelope.OccurredAt.Before(before) || envelope.OccurredAt.After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, envelope.OccurredAt)
	}
	if len(envelope.Payload) == 0 {
		t.Error("expected non-empty payload")
	}
}

func TestNewEnvelope_UnmarshalablePayload(t *testing.T) {
	_, err := NewEnvelope("bad.event", uuid.New(), "credit_assessment", make(chan int))
	if err == nil {
		t.Fatal("expected error for unmarshalable payload, got nil")
	}
}

func TestEnvelope_EncodeDecodeRoundTrip(t *testing.T) {
	original, err := NewEnvelope("scoring.high_risk.detected", uuid.New(), "credit_assessment", map[string]any{"fraud_flag": true})
	if err != nil {
		t.Fatalf("NewEnvelope() error = %v", err)
	}

	data, err := original.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := DecodeEnvelope(data)
	if err != nil {
		t.Fatalf("DecodeEnvelope() error = %v", err)
	}

	if decoded.EventID != original.EventID {
		t.Errorf("expected event ID %v, got %v", original.EventID, decoded.EventID)
	}
	if decoded.EventType != original.EventType {
		t.Errorf("expected event type %q, got %q", original.EventType, decoded.EventType)
	}
	if string(decoded.Payload) != string(original.Payload) {
		t.Errorf("expected payload %s, got %s", original.Payload, decoded.Payload)
	}
}

func TestDecodeEnvelope_InvalidData(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid data, got nil")
	}
}
