package legacy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/legacy"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
)

func legacyEnsemble(t *testing.T) *service.Ensemble {
	t.Helper()
	registry := service.NewDefaultRegistry()
	engine := service.NewExplainEngine(service.NewDefaultExplainerRegistry(), nil)
	ensemble, err := registry.BuildEnsemble(service.DefaultDecisionPolicy(), engine)
	require.NoError(t, err)
	return ensemble
}

func TestLegacyScoreApplicant(t *testing.T) {
	borrower := model.Borrower{
		ID:            "applicant-001",
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
	}
	loan := model.LoanRequest{Amount: decimal.NewFromInt(5000), Purpose: "inventory"}

	flat, err := legacy.ScoreApplicant(legacyEnsemble(t), borrower, loan)
	require.NoError(t, err)

	assert.Equal(t, 69, flat["final_credit_score"])
	assert.Equal(t, false, flat["fraud_flag"])
	assert.Equal(t, "REVIEW", flat["decision"])
	assert.Equal(t, "MEDIUM", flat["risk_level"])
	assert.Contains(t, flat["ensemble_summary"], "Moderate creditworthiness")

	outputs, ok := flat["model_outputs"].(map[string]any)
	require.True(t, ok)
	require.Len(t, outputs, 3)

	credit, ok := outputs["credit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RuleBasedCreditModel-v1.0", credit["model"])
	assert.Equal(t, false, credit["risk_flag"])
}

func TestLegacyScoreApplicant_PropagatesErrors(t *testing.T) {
	borrower := model.Borrower{
		ID:             "applicant-001",
		FeatureSet:     "wrong_set",
		FeatureVersion: service.FeatureVersionV1,
	}
	loan := model.LoanRequest{Amount: decimal.NewFromInt(5000), Purpose: "inventory"}

	_, err := legacy.ScoreApplicant(legacyEnsemble(t), borrower, loan)
	assert.Error(t, err)
}
