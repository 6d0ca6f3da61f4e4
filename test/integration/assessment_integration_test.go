//go:build integration

package integration

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
	"github.com/sadmanHT/CreditBridge-sub001/internal/infrastructure/postgres"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { pg.Cleanup(t) })

	pg.RunMigrations(t, migrationsDir())

	return pg.Pool
}

func scoredAssessment(t *testing.T, applicantID string) *model.CreditAssessment {
	t.Helper()

	registry := service.NewDefaultRegistry()
	engine := service.NewExplainEngine(service.NewDefaultExplainerRegistry(), nil)
	ensemble, err := registry.BuildEnsemble(service.DefaultDecisionPolicy(), engine)
	require.NoError(t, err)

	input := model.ScoringInput{
		Borrower: model.Borrower{
			ID:            applicantID,
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
		},
		Loan: model.LoanRequest{Amount: decimal.NewFromInt(5000), Purpose: "inventory"},
	}

	result, err := ensemble.Predict(input)
	require.NoError(t, err)

	assessment, err := model.NewCreditAssessment(applicantID, input.Loan)
	require.NoError(t, err)
	require.NoError(t, assessment.Complete(result))
	assessment.DomainEvents() // drain; persistence is event-free

	return assessment
}

func TestAssessmentRepository_SaveAndFindByID(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAssessmentRepository(pool)
	ctx := context.Background()

	assessment := scoredAssessment(t, testutil.TestApplicantID1)
	require.NoError(t, repo.Save(ctx, assessment))

	retrieved, err := repo.FindByID(ctx, assessment.ID())
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, assessment.ID(), retrieved.ID())
	assert.Equal(t, assessment.ApplicantID(), retrieved.ApplicantID())
	assert.True(t, assessment.Loan().Amount.Equal(retrieved.Loan().Amount))
	assert.Equal(t, assessment.Loan().Purpose, retrieved.Loan().Purpose)
	assert.Equal(t, assessment.Version(), retrieved.Version())

	result := retrieved.Result()
	require.NotNil(t, result)
	assert.Equal(t, 69, result.FinalCreditScore)
	assert.Equal(t, "REVIEW", result.Decision.String())
	assert.Equal(t, "MEDIUM", result.RiskLevel.String())
	assert.False(t, result.FraudFlag)
	assert.Len(t, result.ModelOutputs, 3)
	assert.NotEmpty(t, result.StructuredExplanation.AggregatedFactors)
}

func TestAssessmentRepository_FindByID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAssessmentRepository(pool)

	retrieved, err := repo.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestAssessmentRepository_SaveUnscoredThenComplete(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAssessmentRepository(pool)
	ctx := context.Background()

	assessment, err := model.NewCreditAssessment(testutil.TestApplicantID1, model.LoanRequest{
		Amount:  decimal.NewFromInt(5000),
		Purpose: "inventory",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, assessment))

	// An unscored assessment round-trips with no result.
	retrieved, err := repo.FindByID(ctx, assessment.ID())
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Nil(t, retrieved.Result())
	assert.Equal(t, 1, retrieved.Version())

	// Completing and saving again upserts the verdict.
	scored := scoredAssessment(t, testutil.TestApplicantID1)
	require.NoError(t, assessment.Complete(scored.Result()))
	assessment.DomainEvents()
	require.NoError(t, repo.Save(ctx, assessment))

	retrieved, err = repo.FindByID(ctx, assessment.ID())
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	require.NotNil(t, retrieved.Result())
	assert.Equal(t, 2, retrieved.Version())
	assert.False(t, retrieved.ScoredAt().IsZero())
}

func TestAssessmentRepository_FindByApplicantID(t *testing.T) {
	pool := setupTestDB(t)
	repo := postgres.NewAssessmentRepository(pool)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, scoredAssessment(t, testutil.TestApplicantID1)))
	}
	require.NoError(t, repo.Save(ctx, scoredAssessment(t, testutil.TestApplicantID2)))

	history, err := repo.FindByApplicantID(ctx, testutil.TestApplicantID1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
	for _, a := range history {
		assert.Equal(t, testutil.TestApplicantID1, a.ApplicantID())
	}

	// Pagination.
	page, err := repo.FindByApplicantID(ctx, testutil.TestApplicantID1, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := repo.FindByApplicantID(ctx, testutil.TestApplicantID1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	other, err := repo.FindByApplicantID(ctx, testutil.TestApplicantID2, 10, 0)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
