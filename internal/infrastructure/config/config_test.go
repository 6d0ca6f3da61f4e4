package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8093", cfg.GRPCAddress())
	assert.Equal(t, ":9093", cfg.HTTPAddress())
	assert.Equal(t, 80, cfg.ApproveThreshold)
	assert.Equal(t, 60, cfg.ReviewThreshold)
	assert.True(t, cfg.WeightCredit.Equal(decimal.NewFromFloat(0.50)))
	assert.True(t, cfg.WeightTrust.Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, cfg.WeightFraud.Equal(decimal.NewFromFloat(0.25)))

	total := cfg.WeightCredit.Add(cfg.WeightTrust).Add(cfg.WeightFraud)
	assert.True(t, total.Equal(decimal.NewFromInt(1)))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("ENSEMBLE_APPROVE_THRESHOLD", "85")
	t.Setenv("MODEL_WEIGHT_CREDIT", "0.60")
	t.Setenv("MODEL_WEIGHT_TRUST", "0.20")
	t.Setenv("MODEL_WEIGHT_FRAUD", "0.20")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.GRPCAddress())
	assert.Equal(t, 85, cfg.DecisionPolicy().ApproveThreshold)
	assert.True(t, cfg.WeightCredit.Equal(decimal.NewFromFloat(0.60)))
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("ENSEMBLE_REVIEW_THRESHOLD", "sixty")

	_, err := config.Load()
	assert.ErrorContains(t, err, "must be an integer")
}

func TestLoad_InvalidDecimal(t *testing.T) {
	t.Setenv("MODEL_WEIGHT_FRAUD", "a quarter")

	_, err := config.Load()
	assert.ErrorContains(t, err, "must be a decimal")
}
