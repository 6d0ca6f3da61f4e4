package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/event"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

// CreditAssessment is the aggregate root for applicant scoring runs. It is
// created unscored; Complete attaches the ensemble result, deriving the
// persisted verdict fields and emitting domain events.
type CreditAssessment struct {
	id           uuid.UUID
	applicantID  string
	loan         LoanRequest
	result       *EnsembleResult
	scoredAt     time.Time
	createdAt    time.Time
	updatedAt    time.Time
	version      int
	domainEvents []event.DomainEvent
}

// NewCreditAssessment creates a new assessment for an incoming application.
func NewCreditAssessment(applicantID string, loan LoanRequest) (*CreditAssessment, error) {
	if applicantID == "" {
		return nil, fmt.Errorf("applicant ID is required")
	}
	if loan.Amount.IsNegative() || loan.Amount.IsZero() {
		return nil, fmt.Errorf("loan amount must be positive")
	}
	if loan.Purpose == "" {
		return nil, fmt.Errorf("loan purpose is required")
	}

	now := time.Now().UTC()

	return &CreditAssessment{
		id:           uuid.New(),
		applicantID:  applicantID,
		loan:         loan,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
		domainEvents: make([]event.DomainEvent, 0),
	}, nil
}

// Complete attaches the ensemble result to the assessment. This is the core
// domain operation: it records the verdict and emits ScoringCompleted, plus
// HighRiskDetected when the result is fraud-flagged or HIGH risk.
func (a *CreditAssessment) Complete(result *EnsembleResult) error {
	if result == nil {
		return fmt.Errorf("ensemble result is required")
	}
	if result.FinalCreditScore < 0 || result.FinalCreditScore > 100 {
		return fmt.Errorf("final credit score must be between 0 and 100, got %d", result.FinalCreditScore)
	}

	a.result = result
	a.scoredAt = time.Now().UTC()
	a.updatedAt = a.scoredAt
	a.version++

	a.domainEvents = append(a.domainEvents, event.ScoringCompleted{
		AssessmentID:     a.id,
		ApplicantID:      a.applicantID,
		FinalCreditScore: result.FinalCreditScore,
		Decision:         result.Decision.String(),
		RiskLevel:        result.RiskLevel.String(),
		FraudFlag:        result.FraudFlag,
		CompletedAt:      a.scoredAt,
	})

	if result.FraudFlag || result.RiskLevel.Equal(valueobject.RiskLevelHigh) {
		a.domainEvents = append(a.domainEvents, event.HighRiskDetected{
			AssessmentID:     a.id,
			ApplicantID:      a.applicantID,
			FinalCreditScore: result.FinalCreditScore,
			FraudFlag:        result.FraudFlag,
			RiskLevel:        result.RiskLevel.String(),
			DetectedAt:       a.scoredAt,
		})
	}

	return nil
}

// ReconstructAssessment rebuilds a CreditAssessment from persisted data
// (no validation, no events).
func ReconstructAssessment(
	id uuid.UUID,
	applicantID string,
	loan LoanRequest,
	result *EnsembleResult,
	scoredAt time.Time,
	version int,
	createdAt, updatedAt time.Time,
) *CreditAssessment {
	return &CreditAssessment{
		id:           id,
		applicantID:  applicantID,
		loan:         loan,
		result:       result,
		scoredAt:     scoredAt,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		domainEvents: make([]event.DomainEvent, 0),
	}
}

// --- Accessors ---

func (a *CreditAssessment) ID() uuid.UUID           { return a.id }
func (a *CreditAssessment) ApplicantID() string     { return a.applicantID }
func (a *CreditAssessment) Loan() LoanRequest       { return a.loan }
func (a *CreditAssessment) Result() *EnsembleResult { return a.result }
func (a *CreditAssessment) ScoredAt() time.Time     { return a.scoredAt }
func (a *CreditAssessment) Version() int            { return a.version }
func (a *CreditAssessment) CreatedAt() time.Time    { return a.createdAt }
func (a *CreditAssessment) UpdatedAt() time.Time    { return a.updatedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *CreditAssessment) DomainEvents() []event.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]event.DomainEvent, 0)
	return evts
}
