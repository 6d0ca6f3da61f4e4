package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeScoringCompleted is emitted when an applicant assessment finishes.
	EventTypeScoringCompleted = "scoring.assessment.completed"

	// EventTypeHighRiskDetected is emitted when an assessment is fraud-flagged
	// or lands in the HIGH risk band.
	EventTypeHighRiskDetected = "scoring.high_risk.detected"
)

// DomainEvent is implemented by all events emitted by scoring aggregates.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// ScoringCompleted is published when a credit assessment has been completed
// for an applicant.
type ScoringCompleted struct {
	AssessmentID     uuid.UUID `json:"assessment_id"`
	ApplicantID      string    `json:"applicant_id"`
	FinalCreditScore int       `json:"final_credit_score"`
	Decision         string    `json:"decision"`
	RiskLevel        string    `json:"risk_level"`
	FraudFlag        bool      `json:"fraud_flag"`
	CompletedAt      time.Time `json:"completed_at"`
}

// EventType returns the event type identifier.
func (e ScoringCompleted) EventType() string {
	return EventTypeScoringCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e ScoringCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// HighRiskDetected is published when an assessment is fraud-flagged or rated
// HIGH risk, so downstream review queues can pick it up.
type HighRiskDetected struct {
	AssessmentID     uuid.UUID `json:"assessment_id"`
	ApplicantID      string    `json:"applicant_id"`
	FinalCreditScore int       `json:"final_credit_score"`
	FraudFlag        bool      `json:"fraud_flag"`
	RiskLevel        string    `json:"risk_level"`
	DetectedAt       time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}
