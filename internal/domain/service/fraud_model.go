package service

import (
	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

const (
	fraudModelName    = "FraudRuleModel"
	fraudModelVersion = "v1.0"
)

// FraudModel scans transaction velocity and consistency indicators for
// fraud signals. The base score is 0.05; each matched rule adds its
// increment and a named signal, capped at 1.0.
type FraudModel struct {
	// fraudThreshold is the fraud probability at which IsFraud fires.
	fraudThreshold decimal.Decimal
}

// NewFraudModel creates the fraud rule model.
func NewFraudModel() *FraudModel {
	return &FraudModel{fraudThreshold: decimal.NewFromFloat(0.6)}
}

// Name returns the model family name.
func (m *FraudModel) Name() string { return fraudModelName }

// Version returns the model revision.
func (m *FraudModel) Version() string { return fraudModelVersion }

// FeatureContract returns nil: the fraud model inspects engineered features
// opportunistically when present but does not require them.
func (m *FraudModel) FeatureContract() *valueobject.FeatureContract {
	return nil
}

// Predict evaluates fraud rules over the borrower's behavioral features,
// loan request and peer circle.
func (m *FraudModel) Predict(input model.ScoringInput) (model.ModelOutput, error) {
	score := decimal.NewFromFloat(0.05)
	signals := make([]string, 0)

	features := input.Borrower.EngineeredFeatures

	// Rule: abnormal 30-day transaction velocity.
	if volume, ok := features[FeatureTransactionVolume30d]; ok && volume > 100_000 {
		score = score.Add(decimal.NewFromFloat(0.30))
		signals = append(signals, "transaction_velocity_spike")
	}

	// Rule: erratic activity pattern.
	if consistency, ok := features[FeatureActivityConsistency]; ok && consistency < 30 {
		score = score.Add(decimal.NewFromFloat(0.25))
		signals = append(signals, "erratic_activity_pattern")
	}

	// Rule: dormant device profile.
	if mobile, ok := features[FeatureMobileActivityScore]; ok && mobile < 10 {
		score = score.Add(decimal.NewFromFloat(0.15))
		signals = append(signals, "dormant_device_profile")
	}

	// Rule: requested amount far out of line with declared income.
	income := input.Borrower.MonthlyIncome
	if income.IsPositive() {
		tenMonths := income.Mul(decimal.NewFromInt(10))
		if input.Loan.Amount.GreaterThan(tenMonths) {
			score = score.Add(decimal.NewFromFloat(0.20))
			signals = append(signals, "loan_income_mismatch")
		}
	}

	// Rule: over-leveraged borrower.
	if input.Borrower.DebtRatio.GreaterThan(decimal.NewFromFloat(0.6)) {
		score = score.Add(decimal.NewFromFloat(0.15))
		signals = append(signals, "over_leveraged")
	}

	// Rule: proximity to a cluster of defaulted peers.
	defaulted := 0
	for _, p := range input.Borrower.Peers {
		if p.Defaulted {
			defaulted++
		}
	}
	if defaulted >= 2 {
		score = score.Add(decimal.NewFromFloat(0.20))
		signals = append(signals, "defaulted_peer_cluster")
	}

	one := decimal.NewFromInt(1)
	if score.GreaterThan(one) {
		score = one
	}
	score = score.Round(2)

	isFraud := score.GreaterThanOrEqual(m.fraudThreshold)

	return model.FraudModelOutput{
		Model:      fraudModelName,
		Version:    fraudModelVersion,
		FraudScore: score,
		IsFraud:    isFraud,
		RiskLevel:  m.riskLevel(score).String(),
		Signals:    signals,
	}, nil
}

// riskLevel bands the fraud probability. Thresholds are policy constants
// owned by the fraud model.
func (m *FraudModel) riskLevel(score decimal.Decimal) valueobject.RiskLevel {
	switch {
	case score.GreaterThanOrEqual(m.fraudThreshold):
		return valueobject.RiskLevelHigh
	case score.GreaterThanOrEqual(decimal.NewFromFloat(0.3)):
		return valueobject.RiskLevelMedium
	default:
		return valueobject.RiskLevelLow
	}
}
