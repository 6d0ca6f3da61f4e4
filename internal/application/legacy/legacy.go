// Package legacy adapts the flat scoring call shape used by earlier API
// consumers to the typed ensemble pipeline. New callers should use the
// usecase layer; this adapter exists only for backward compatibility and
// stays outside the scoring core.
package legacy

import (
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
)

// ScoreApplicant runs the ensemble and flattens the result into the legacy
// key-value shape older dashboards consume.
func ScoreApplicant(ensemble *service.Ensemble, borrower model.Borrower, loan model.LoanRequest) (map[string]any, error) {
	result, err := ensemble.Predict(model.ScoringInput{Borrower: borrower, Loan: loan})
	if err != nil {
		return nil, err
	}

	perModel := make(map[string]any, len(result.ModelOutputs))
	for key, out := range result.ModelOutputs {
		perModel[key] = map[string]any{
			"model":            out.ModelName() + "-" + out.ModelVersion(),
			"normalized_score": out.NormalizedScore().String(),
			"risk_flag":        out.RiskFlagged(),
		}
	}

	return map[string]any{
		"final_credit_score": result.FinalCreditScore,
		"fraud_flag":         result.FraudFlag,
		"decision":           result.Decision.String(),
		"risk_level":         result.RiskLevel.String(),
		"ensemble_summary":   result.Explanation["ensemble_summary"],
		"model_outputs":      perModel,
	}, nil
}
