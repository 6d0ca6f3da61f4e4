package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/dto"
	"github.com/sadmanHT/CreditBridge-sub001/internal/application/usecase"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/event"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/testutil"
)

type mockRepo struct {
	saved       []*model.CreditAssessment
	saveErr     error
	findByIDFn  func(ctx context.Context, id uuid.UUID) (*model.CreditAssessment, error)
	assessments map[uuid.UUID]*model.CreditAssessment
}

func (m *mockRepo) Save(_ context.Context, a *model.CreditAssessment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CreditAssessment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return m.assessments[id], nil
}

func (m *mockRepo) FindByApplicantID(_ context.Context, _ string, _, _ int) ([]*model.CreditAssessment, error) {
	return nil, nil
}

type mockPublisher struct {
	published  []event.DomainEvent
	publishErr error
}

func (m *mockPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, events...)
	return nil
}

func buildEnsemble(t *testing.T) *service.Ensemble {
	t.Helper()
	registry := service.NewDefaultRegistry()
	engine := service.NewExplainEngine(service.NewDefaultExplainerRegistry(), nil)
	ensemble, err := registry.BuildEnsemble(service.DefaultDecisionPolicy(), engine)
	require.NoError(t, err)
	return ensemble
}

func scoreRequest() dto.ScoreApplicantRequest {
	return dto.ScoreApplicantRequest{
		ApplicantID:   testutil.TestApplicantID1,
		Region:        "north",
		Occupation:    "merchant",
		MonthlyIncome: decimal.NewFromInt(2500),
		DebtRatio:     decimal.NewFromFloat(0.3),
		EngineeredFeatures: map[string]float64{
			service.FeatureMobileActivityScore:  72,
			service.FeatureTransactionVolume30d: 15000,
			service.FeatureActivityConsistency:  85,
		},
		FeatureSet:     service.FeatureSetCoreBehavioral,
		FeatureVersion: service.FeatureVersionV1,
		LoanAmount:     decimal.NewFromInt(5000),
		LoanPurpose:    "inventory",
	}
}

func TestScoreApplicant_Execute(t *testing.T) {
	repo := &mockRepo{}
	publisher := &mockPublisher{}
	uc := usecase.NewScoreApplicant(repo, publisher, buildEnsemble(t))

	resp, err := uc.Execute(context.Background(), scoreRequest())
	require.NoError(t, err)

	assert.Equal(t, testutil.TestApplicantID1, resp.ApplicantID)
	assert.Equal(t, 69, resp.FinalCreditScore)
	assert.Equal(t, "REVIEW", resp.Decision)
	assert.Equal(t, "MEDIUM", resp.RiskLevel)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.ModelOutputs, 3)

	require.Len(t, repo.saved, 1)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, event.EventTypeScoringCompleted, publisher.published[0].EventType())
}

func TestScoreApplicant_FeatureValidationPropagates(t *testing.T) {
	repo := &mockRepo{}
	publisher := &mockPublisher{}
	uc := usecase.NewScoreApplicant(repo, publisher, buildEnsemble(t))

	req := scoreRequest()
	req.FeatureVersion = "v2"

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	// The typed error survives the use case wrapping.
	var validationErr *valueobject.FeatureValidationError
	assert.True(t, errors.As(err, &validationErr))

	// Nothing is persisted or published on failure.
	assert.Empty(t, repo.saved)
	assert.Empty(t, publisher.published)
}

func TestScoreApplicant_SaveFailure(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("connection reset")}
	publisher := &mockPublisher{}
	uc := usecase.NewScoreApplicant(repo, publisher, buildEnsemble(t))

	_, err := uc.Execute(context.Background(), scoreRequest())
	assert.ErrorContains(t, err, "failed to save assessment")
	assert.Empty(t, publisher.published)
}

func TestScoreApplicant_InvalidRequest(t *testing.T) {
	uc := usecase.NewScoreApplicant(&mockRepo{}, &mockPublisher{}, buildEnsemble(t))

	req := scoreRequest()
	req.ApplicantID = ""

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorContains(t, err, "failed to create assessment")
}

func TestGetAssessment_Execute(t *testing.T) {
	assessment, err := model.NewCreditAssessment(testutil.TestApplicantID1, model.LoanRequest{
		Amount:  decimal.NewFromInt(5000),
		Purpose: "inventory",
	})
	require.NoError(t, err)

	repo := &mockRepo{assessments: map[uuid.UUID]*model.CreditAssessment{
		assessment.ID(): assessment,
	}}
	uc := usecase.NewGetAssessment(repo)

	resp, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: assessment.ID()})
	require.NoError(t, err)
	assert.Equal(t, assessment.ID(), resp.ID)
}

func TestGetAssessment_NotFound(t *testing.T) {
	uc := usecase.NewGetAssessment(&mockRepo{})

	_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: testutil.TestAssessmentID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrAssessmentNotFound))
}
