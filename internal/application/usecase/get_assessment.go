package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/dto"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/port"
)

// ErrAssessmentNotFound is returned when no assessment exists for the
// requested ID.
var ErrAssessmentNotFound = errors.New("assessment not found")

// GetAssessment is the use case for retrieving a stored assessment.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute looks up an assessment by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	assessment, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("assessment %s: %w", req.AssessmentID, ErrAssessmentNotFound)
	}

	return dto.FromModel(assessment), nil
}
