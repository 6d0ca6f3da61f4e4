package service

import (
	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

const (
	creditModelName    = "RuleBasedCreditModel"
	creditModelVersion = "v1.0"

	// FeatureSetCoreBehavioral identifies the engineered feature set the
	// credit model consumes.
	FeatureSetCoreBehavioral = "core_behavioral"

	// FeatureVersionV1 is the feature pipeline version the credit model
	// was calibrated against.
	FeatureVersionV1 = "v1"

	// Engineered feature names required by the credit model.
	FeatureMobileActivityScore  = "mobile_activity_score"
	FeatureTransactionVolume30d = "transaction_volume_30d"
	FeatureActivityConsistency  = "activity_consistency"
)

// CreditModel is the rule-based credit scorer. It combines a mobile activity
// score, a 30-day transaction volume and an activity consistency score into
// a 0-100 credit score with banded risk levels.
//
// Scoring model weights:
//   - Mobile activity:      40%
//   - Activity consistency: 35%
//   - Transaction volume:   25%
type CreditModel struct {
	contract valueobject.FeatureContract

	// volumeCeiling is the 30-day transaction volume that earns a full
	// volume factor score.
	volumeCeiling decimal.Decimal
}

// NewCreditModel creates the rule-based credit model with its declared
// feature contract.
func NewCreditModel() *CreditModel {
	return &CreditModel{
		contract: valueobject.NewFeatureContract(
			FeatureSetCoreBehavioral,
			FeatureVersionV1,
			[]string{
				FeatureMobileActivityScore,
				FeatureTransactionVolume30d,
				FeatureActivityConsistency,
			},
		),
		volumeCeiling: decimal.NewFromInt(50_000),
	}
}

// Name returns the model family name.
func (m *CreditModel) Name() string { return creditModelName }

// Version returns the model revision.
func (m *CreditModel) Version() string { return creditModelVersion }

// FeatureContract returns the declared feature requirements.
func (m *CreditModel) FeatureContract() *valueobject.FeatureContract {
	contract := m.contract
	return &contract
}

// Predict combines the engineered behavioral features into a 0-100 credit
// score. Feature presence is guaranteed by contract validation upstream.
func (m *CreditModel) Predict(input model.ScoringInput) (model.ModelOutput, error) {
	features := input.Borrower.EngineeredFeatures

	mobileScore := clampFactorScore(int(features[FeatureMobileActivityScore]))
	consistencyScore := clampFactorScore(int(features[FeatureActivityConsistency]))
	volumeScore := m.scoreVolume(features[FeatureTransactionVolume30d])

	factors := []model.ScoringFactor{
		{
			Name:   FeatureMobileActivityScore,
			Weight: decimal.NewFromFloat(0.40),
			Score:  mobileScore,
			Impact: impactLabel(mobileScore),
		},
		{
			Name:   FeatureActivityConsistency,
			Weight: decimal.NewFromFloat(0.35),
			Score:  consistencyScore,
			Impact: impactLabel(consistencyScore),
		},
		{
			Name:   FeatureTransactionVolume30d,
			Weight: decimal.NewFromFloat(0.25),
			Score:  volumeScore,
			Impact: impactLabel(volumeScore),
		},
	}

	total := decimal.Zero
	for _, f := range factors {
		total = total.Add(f.Weight.Mul(decimal.NewFromInt(int64(f.Score))))
	}

	score := clampFactorScore(int(total.IntPart()))

	return model.CreditModelOutput{
		Model:     creditModelName,
		Version:   creditModelVersion,
		Score:     score,
		RiskLevel: m.riskLevel(score).String(),
		Factors:   factors,
	}, nil
}

// scoreVolume maps a 30-day transaction volume onto a 0-100 factor score,
// scaling linearly up to the volume ceiling.
func (m *CreditModel) scoreVolume(volume float64) int {
	v := decimal.NewFromFloat(volume)
	if v.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	if v.GreaterThanOrEqual(m.volumeCeiling) {
		return 100
	}
	return int(v.Mul(decimal.NewFromInt(100)).Div(m.volumeCeiling).IntPart())
}

// riskLevel bands the credit score. These thresholds are policy constants
// owned by the credit model.
func (m *CreditModel) riskLevel(score int) valueobject.RiskLevel {
	switch {
	case score >= 75:
		return valueobject.RiskLevelLow
	case score >= 50:
		return valueobject.RiskLevelMedium
	default:
		return valueobject.RiskLevelHigh
	}
}

// clampFactorScore bounds a factor score to the 0-100 range.
func clampFactorScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// impactLabel returns a human-readable impact label for a factor score.
func impactLabel(score int) string {
	switch {
	case score >= 80:
		return "POSITIVE"
	case score >= 50:
		return "NEUTRAL"
	default:
		return "NEGATIVE"
	}
}
