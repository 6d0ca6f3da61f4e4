package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

// EnsembleVersion identifies the aggregation algorithm revision recorded in
// result metadata.
const EnsembleVersion = "v1.0"

// DecisionPolicy holds the score bands separating APPROVE, REVIEW and
// REJECT. Band boundaries are inclusive-low: a score equal to a threshold
// lands in the higher band. The risk level bands mirror the decision bands.
type DecisionPolicy struct {
	ApproveThreshold int
	ReviewThreshold  int
}

// DefaultDecisionPolicy returns the standard 80/60 bands.
func DefaultDecisionPolicy() DecisionPolicy {
	return DecisionPolicy{ApproveThreshold: 80, ReviewThreshold: 60}
}

// Validate checks the policy bands are ordered and in range.
func (p DecisionPolicy) Validate() error {
	if p.ReviewThreshold <= 0 || p.ApproveThreshold > 100 {
		return fmt.Errorf("thresholds must fall within (0, 100], got review=%d approve=%d", p.ReviewThreshold, p.ApproveThreshold)
	}
	if p.ReviewThreshold >= p.ApproveThreshold {
		return fmt.Errorf("review threshold %d must be below approve threshold %d", p.ReviewThreshold, p.ApproveThreshold)
	}
	return nil
}

// Decide maps a final credit score and fraud flag to a verdict. A fraud
// flag forces rejection regardless of score.
func (p DecisionPolicy) Decide(score int, fraudFlag bool) valueobject.Decision {
	switch {
	case fraudFlag:
		return valueobject.DecisionReject
	case score >= p.ApproveThreshold:
		return valueobject.DecisionApprove
	case score >= p.ReviewThreshold:
		return valueobject.DecisionReview
	default:
		return valueobject.DecisionReject
	}
}

// RiskLevel maps a final credit score and fraud flag onto the risk bands
// shared with Decide.
func (p DecisionPolicy) RiskLevel(score int, fraudFlag bool) valueobject.RiskLevel {
	switch {
	case fraudFlag:
		return valueobject.RiskLevelHigh
	case score >= p.ApproveThreshold:
		return valueobject.RiskLevelLow
	case score >= p.ReviewThreshold:
		return valueobject.RiskLevelMedium
	default:
		return valueobject.RiskLevelHigh
	}
}

// Ensemble invokes every registered model over one input and merges their
// outputs into a single verdict. Ensembles are stateless after construction
// and safe for concurrent use; build one via ModelRegistry.BuildEnsemble.
type Ensemble struct {
	entries []registeredModel
	policy  DecisionPolicy
	explain *ExplainEngine
}

// Predict runs the full scoring pipeline: feature validation for every
// model that declares a contract, model invocation in registration order,
// weighted aggregation, decision banding and explanation.
//
// A feature validation failure or model execution error aborts the whole
// call; scoring is never partial. Explanation failures do not abort (see
// ExplainEngine).
func (e *Ensemble) Predict(input model.ScoringInput) (*model.EnsembleResult, error) {
	// Validate every declared contract before invoking any model, so a
	// mis-tagged feature payload fails fast without side effects.
	for _, entry := range e.entries {
		contract := entry.model.FeatureContract()
		if contract == nil {
			continue
		}
		if err := contract.Validate(
			input.Borrower.EngineeredFeatures,
			input.Borrower.FeatureSet,
			input.Borrower.FeatureVersion,
		); err != nil {
			return nil, fmt.Errorf("model %q: %w", entry.key, err)
		}
	}

	outputs := make(map[string]model.ModelOutput, len(e.entries))
	weights := make(map[string]decimal.Decimal, len(e.entries))
	order := make([]string, 0, len(e.entries))

	for _, entry := range e.entries {
		out, err := entry.model.Predict(input)
		if err != nil {
			return nil, &ModelExecutionError{ModelKey: entry.key, Err: err}
		}
		if out == nil {
			return nil, &ModelExecutionError{ModelKey: entry.key, Err: fmt.Errorf("model returned no output")}
		}
		outputs[entry.key] = out
		weights[entry.key] = entry.weight
		order = append(order, entry.key)
	}

	finalScore := e.weightedScore(outputs)

	fraudFlag := false
	for _, key := range order {
		if outputs[key].RiskFlagged() {
			fraudFlag = true
			break
		}
	}

	decision := e.policy.Decide(finalScore, fraudFlag)
	riskLevel := e.policy.RiskLevel(finalScore, fraudFlag)

	structured := e.explain.Aggregate(input, outputs, weights, order)

	return &model.EnsembleResult{
		FinalCreditScore: finalScore,
		FraudFlag:        fraudFlag,
		Decision:         decision,
		RiskLevel:        riskLevel,
		ModelOutputs:     outputs,
		Metadata: model.EnsembleMetadata{
			Version:    EnsembleVersion,
			Weights:    weights,
			ModelsUsed: order,
		},
		Explanation: map[string]string{
			"ensemble_summary": legacySummary(finalScore, fraudFlag),
		},
		StructuredExplanation: structured,
	}, nil
}

// Models returns the ensemble's models in invocation order.
func (e *Ensemble) Models() []ModelInfo {
	infos := make([]ModelInfo, 0, len(e.entries))
	for _, entry := range e.entries {
		infos = append(infos, ModelInfo{Key: entry.key, DisplayName: DisplayName(entry.model)})
	}
	return infos
}

// Policy returns the decision policy governing this ensemble.
func (e *Ensemble) Policy() DecisionPolicy {
	return e.policy
}

// weightedScore combines every model's normalized 0-100 score using the
// configured weights, clamped to the valid range.
func (e *Ensemble) weightedScore(outputs map[string]model.ModelOutput) int {
	total := decimal.Zero
	for _, entry := range e.entries {
		total = total.Add(entry.weight.Mul(outputs[entry.key].NormalizedScore()))
	}
	return clampFactorScore(int(total.Round(0).IntPart()))
}

// legacySummary reproduces the flat summary wording used by earlier API
// consumers, with the historical 80/60 bands.
func legacySummary(score int, fraudFlag bool) string {
	switch {
	case fraudFlag:
		return fmt.Sprintf("Application flagged for fraud indicators (score %d/100); manual investigation required.", score)
	case score >= 80:
		return fmt.Sprintf("Excellent creditworthiness (score %d/100); applicant qualifies for approval.", score)
	case score >= 60:
		return fmt.Sprintf("Moderate creditworthiness (score %d/100); manual review recommended.", score)
	default:
		return fmt.Sprintf("High credit risk (score %d/100); application does not meet lending criteria.", score)
	}
}
