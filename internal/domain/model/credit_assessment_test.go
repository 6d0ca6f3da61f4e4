package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/event"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

func validLoan() model.LoanRequest {
	return model.LoanRequest{Amount: decimal.NewFromInt(5000), Purpose: "inventory"}
}

func sampleResult(score int, fraudFlag bool, riskLevel valueobject.RiskLevel) *model.EnsembleResult {
	decision := valueobject.DecisionReview
	if fraudFlag {
		decision = valueobject.DecisionReject
	}
	return &model.EnsembleResult{
		FinalCreditScore: score,
		FraudFlag:        fraudFlag,
		Decision:         decision,
		RiskLevel:        riskLevel,
		ModelOutputs:     map[string]model.ModelOutput{},
		Explanation:      map[string]string{},
	}
}

func TestNewCreditAssessment(t *testing.T) {
	assessment, err := model.NewCreditAssessment("applicant-001", validLoan())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, assessment.ID())
	assert.Equal(t, "applicant-001", assessment.ApplicantID())
	assert.Equal(t, 1, assessment.Version())
	assert.Nil(t, assessment.Result())
	assert.Empty(t, assessment.DomainEvents())
}

func TestNewCreditAssessment_Validation(t *testing.T) {
	_, err := model.NewCreditAssessment("", validLoan())
	assert.ErrorContains(t, err, "applicant ID is required")

	_, err = model.NewCreditAssessment("applicant-001", model.LoanRequest{Amount: decimal.Zero, Purpose: "x"})
	assert.ErrorContains(t, err, "loan amount must be positive")

	_, err = model.NewCreditAssessment("applicant-001", model.LoanRequest{Amount: decimal.NewFromInt(100)})
	assert.ErrorContains(t, err, "loan purpose is required")
}

func TestCreditAssessment_CompleteEmitsEvents(t *testing.T) {
	assessment, err := model.NewCreditAssessment("applicant-001", validLoan())
	require.NoError(t, err)

	require.NoError(t, assessment.Complete(sampleResult(69, false, valueobject.RiskLevelMedium)))

	assert.Equal(t, 2, assessment.Version())
	assert.False(t, assessment.ScoredAt().IsZero())

	events := assessment.DomainEvents()
	require.Len(t, events, 1)

	completed, ok := events[0].(event.ScoringCompleted)
	require.True(t, ok)
	assert.Equal(t, assessment.ID(), completed.AggregateID())
	assert.Equal(t, 69, completed.FinalCreditScore)
	assert.Equal(t, "REVIEW", completed.Decision)

	// Events are drained on read.
	assert.Empty(t, assessment.DomainEvents())
}

func TestCreditAssessment_HighRiskEventOnFraud(t *testing.T) {
	assessment, err := model.NewCreditAssessment("applicant-001", validLoan())
	require.NoError(t, err)

	require.NoError(t, assessment.Complete(sampleResult(30, true, valueobject.RiskLevelHigh)))

	events := assessment.DomainEvents()
	require.Len(t, events, 2)

	highRisk, ok := events[1].(event.HighRiskDetected)
	require.True(t, ok)
	assert.True(t, highRisk.FraudFlag)
	assert.Equal(t, "HIGH", highRisk.RiskLevel)
}

func TestCreditAssessment_HighRiskEventOnHighRiskLevel(t *testing.T) {
	assessment, err := model.NewCreditAssessment("applicant-001", validLoan())
	require.NoError(t, err)

	// No fraud flag, but a HIGH risk band still raises the alert event.
	require.NoError(t, assessment.Complete(sampleResult(40, false, valueobject.RiskLevelHigh)))

	events := assessment.DomainEvents()
	require.Len(t, events, 2)
}

func TestCreditAssessment_CompleteValidation(t *testing.T) {
	assessment, err := model.NewCreditAssessment("applicant-001", validLoan())
	require.NoError(t, err)

	assert.ErrorContains(t, assessment.Complete(nil), "ensemble result is required")
	assert.ErrorContains(t, assessment.Complete(sampleResult(140, false, valueobject.RiskLevelLow)), "between 0 and 100")
}

func TestReconstructAssessment(t *testing.T) {
	id := uuid.New()
	scoredAt := time.Now().UTC().Add(-time.Hour)
	result := sampleResult(75, false, valueobject.RiskLevelMedium)

	assessment := model.ReconstructAssessment(
		id, "applicant-002", validLoan(), result,
		scoredAt, 2, scoredAt.Add(-time.Minute), scoredAt,
	)

	assert.Equal(t, id, assessment.ID())
	assert.Equal(t, result, assessment.Result())
	assert.Equal(t, 2, assessment.Version())
	// Reconstruction never replays events.
	assert.Empty(t, assessment.DomainEvents())
}
