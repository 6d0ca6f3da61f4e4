package service

import (
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// Explainer turns one model's output into a structured, human-readable
// explanation. Explainers are pure and stateless; Matches routes a model's
// display name (e.g. "RuleBasedCreditModel-v1.0") to the explainer variant
// that understands its output shape.
type Explainer interface {
	// Type identifies the explainer variant, recorded on each Explanation.
	Type() string

	// Matches reports whether this explainer handles the named model.
	Matches(modelName string) bool

	// Explain renders the structured rationale for one model output.
	Explain(input model.ScoringInput, out model.ModelOutput) (model.Explanation, error)
}

// ExplainerRegistry holds explainer variants in registration order. Resolve
// scans the list and returns the first variant whose Matches predicate
// accepts the model name, so registration order encodes routing precedence.
type ExplainerRegistry struct {
	explainers []Explainer
}

// NewExplainerRegistry creates a registry over the given explainers,
// preserving their order.
func NewExplainerRegistry(explainers ...Explainer) *ExplainerRegistry {
	return &ExplainerRegistry{explainers: explainers}
}

// NewDefaultExplainerRegistry wires the standard explainer chain: the trust
// graph explainer, the rule explainer, and the generic graph explainer as a
// fallback for any other graph-shaped model.
func NewDefaultExplainerRegistry() *ExplainerRegistry {
	return NewExplainerRegistry(
		NewTrustGraphExplainer(),
		NewRuleExplainer(),
		NewGraphExplainer(),
	)
}

// Resolve returns the first registered explainer matching the model name.
// Resolution is deterministic: repeated calls with the same name always
// return the same variant.
func (r *ExplainerRegistry) Resolve(modelName string) (Explainer, error) {
	for _, ex := range r.explainers {
		if ex.Matches(modelName) {
			return ex, nil
		}
	}
	return nil, &ExplainerLookupError{ModelName: modelName}
}
