package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/event"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// AssessmentRepository defines the persistence port for credit assessments.
type AssessmentRepository interface {
	// Save persists a new or updated credit assessment.
	Save(ctx context.Context, assessment *model.CreditAssessment) error

	// FindByID retrieves an assessment by its unique identifier.
	// Returns (nil, nil) when no assessment exists.
	FindByID(ctx context.Context, id uuid.UUID) (*model.CreditAssessment, error)

	// FindByApplicantID retrieves assessments for an applicant, newest first.
	FindByApplicantID(ctx context.Context, applicantID string, limit, offset int) ([]*model.CreditAssessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
