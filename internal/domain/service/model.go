package service

import (
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

// Model is the contract every decision model must satisfy. Predict is pure
// and deterministic: identical input always yields identical output, with
// no I/O and no side effects. Threshold logic is a policy constant owned by
// each model, never by the ensemble.
type Model interface {
	// Name identifies the model family, e.g. "RuleBasedCreditModel".
	Name() string

	// Version identifies the model revision, e.g. "v1.0".
	Version() string

	// FeatureContract declares the engineered features the model requires.
	// A nil contract means the model operates on raw borrower and loan
	// fields and skips feature validation.
	FeatureContract() *valueobject.FeatureContract

	// Predict evaluates the input and returns the model's typed output.
	Predict(input model.ScoringInput) (model.ModelOutput, error)
}

// DisplayName returns the canonical "Name-Version" identifier for a model,
// e.g. "RuleBasedCreditModel-v1.0". Explainer routing matches on this name.
func DisplayName(m Model) string {
	return m.Name() + "-" + m.Version()
}
