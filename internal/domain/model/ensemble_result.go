package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

// EnsembleMetadata describes how a result was produced: the engine version,
// the per-model weights (summing to 1.0 across the models used) and the
// models invoked, in invocation order.
type EnsembleMetadata struct {
	Version    string                     `json:"version"`
	Weights    map[string]decimal.Decimal `json:"weights"`
	ModelsUsed []string                   `json:"models_used"`
}

// EnsembleResult is the unified verdict produced by one ensemble prediction.
// Explanation holds the legacy flat per-model summary map kept for older API
// consumers; StructuredExplanation is the full aggregated narrative.
type EnsembleResult struct {
	FinalCreditScore      int                    `json:"final_credit_score"`
	FraudFlag             bool                   `json:"fraud_flag"`
	Decision              valueobject.Decision   `json:"decision"`
	RiskLevel             valueobject.RiskLevel  `json:"risk_level"`
	ModelOutputs          map[string]ModelOutput `json:"model_outputs"`
	Metadata              EnsembleMetadata       `json:"ensemble_metadata"`
	Explanation           map[string]string      `json:"explanation"`
	StructuredExplanation AggregatedExplanation  `json:"structured_explanation"`
}

// ensembleResultJSON mirrors EnsembleResult with raw model outputs so the
// polymorphic ModelOutputs map can be decoded via UnmarshalModelOutput.
type ensembleResultJSON struct {
	FinalCreditScore      int                        `json:"final_credit_score"`
	FraudFlag             bool                       `json:"fraud_flag"`
	Decision              valueobject.Decision       `json:"decision"`
	RiskLevel             valueobject.RiskLevel      `json:"risk_level"`
	ModelOutputs          map[string]json.RawMessage `json:"model_outputs"`
	Metadata              EnsembleMetadata           `json:"ensemble_metadata"`
	Explanation           map[string]string          `json:"explanation"`
	StructuredExplanation AggregatedExplanation      `json:"structured_explanation"`
}

// UnmarshalJSON decodes a serialized ensemble result, dispatching each entry
// of the model output map to its concrete self-describing type.
func (r *EnsembleResult) UnmarshalJSON(data []byte) error {
	var raw ensembleResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	outputs := make(map[string]ModelOutput, len(raw.ModelOutputs))
	for key, msg := range raw.ModelOutputs {
		out, err := UnmarshalModelOutput(msg)
		if err != nil {
			return fmt.Errorf("model output %q: %w", key, err)
		}
		outputs[key] = out
	}

	r.FinalCreditScore = raw.FinalCreditScore
	r.FraudFlag = raw.FraudFlag
	r.Decision = raw.Decision
	r.RiskLevel = raw.RiskLevel
	r.ModelOutputs = outputs
	r.Metadata = raw.Metadata
	r.Explanation = raw.Explanation
	r.StructuredExplanation = raw.StructuredExplanation
	return nil
}
