package usecase

import (
	"context"
	"fmt"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/dto"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/port"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
)

// ScoreApplicant is the use case for running the model ensemble over one
// application, persisting the assessment and publishing domain events.
type ScoreApplicant struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	ensemble  *service.Ensemble
}

// NewScoreApplicant creates a new ScoreApplicant use case.
func NewScoreApplicant(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	ensemble *service.Ensemble,
) *ScoreApplicant {
	return &ScoreApplicant{
		repo:      repo,
		publisher: publisher,
		ensemble:  ensemble,
	}
}

// Execute creates the assessment aggregate, runs the ensemble, persists the
// outcome and publishes the emitted events. Scoring errors (feature
// validation, model execution) propagate unwrapped inside the returned
// error chain so callers can map them to transport-level codes.
func (uc *ScoreApplicant) Execute(ctx context.Context, req dto.ScoreApplicantRequest) (dto.AssessmentResponse, error) {
	assessment, err := model.NewCreditAssessment(req.ApplicantID, model.LoanRequest{
		Amount:  req.LoanAmount,
		Purpose: req.LoanPurpose,
	})
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	result, err := uc.ensemble.Predict(req.ToScoringInput())
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("scoring failed: %w", err)
	}

	if err := assessment.Complete(result); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to complete assessment: %w", err)
	}

	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.FromModel(assessment), nil
}
