package service

import (
	"fmt"
	"strings"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// ruleExplainerConfidence is fixed and high: rule evaluation is exact, not
// probabilistic.
const ruleExplainerConfidence = 0.95

// RuleExplainer renders explanations for rule-based model outputs: the
// credit model's weighted factor breakdown and the fraud model's matched
// signals.
type RuleExplainer struct{}

// NewRuleExplainer creates the rule explainer.
func NewRuleExplainer() *RuleExplainer {
	return &RuleExplainer{}
}

// Type identifies this explainer variant.
func (e *RuleExplainer) Type() string { return "rule" }

// Matches accepts any model in a rule-based family.
func (e *RuleExplainer) Matches(modelName string) bool {
	return strings.Contains(modelName, "Rule")
}

// Explain renders the rationale for a rule-based model output.
func (e *RuleExplainer) Explain(_ model.ScoringInput, out model.ModelOutput) (model.Explanation, error) {
	switch o := out.(type) {
	case model.CreditModelOutput:
		return e.explainCredit(o), nil
	case model.FraudModelOutput:
		return e.explainFraud(o), nil
	default:
		return model.Explanation{}, fmt.Errorf("rule explainer cannot explain output of %s", out.ModelName())
	}
}

func (e *RuleExplainer) explainCredit(o model.CreditModelOutput) model.Explanation {
	factors := make([]model.ExplanationFactor, 0, len(o.Factors))
	for _, f := range o.Factors {
		// Center the factor score on 50 so sub-par factors carry a
		// negative impact proportional to their weight.
		impact := f.Weight.InexactFloat64() * float64(f.Score-50) / 50.0
		factors = append(factors, model.ExplanationFactor{
			Label:     f.Name,
			Impact:    impact,
			Rationale: fmt.Sprintf("%s scored %d of 100 (%s, weight %s)", f.Name, f.Score, f.Impact, f.Weight),
		})
	}

	return model.Explanation{
		Type:    e.Type(),
		Factors: factors,
		Summary: fmt.Sprintf("Rule evaluation produced a credit score of %d/100 with %s risk.",
			o.Score, o.RiskLevel),
		Confidence: ruleExplainerConfidence,
	}
}

func (e *RuleExplainer) explainFraud(o model.FraudModelOutput) model.Explanation {
	factors := make([]model.ExplanationFactor, 0, len(o.Signals))
	for _, signal := range o.Signals {
		factors = append(factors, model.ExplanationFactor{
			Label:     signal,
			Impact:    -0.25,
			Rationale: fmt.Sprintf("fraud rule %q matched", signal),
			Alert:     o.IsFraud,
		})
	}

	summary := fmt.Sprintf("Fraud screening passed with probability %s (%s risk).", o.FraudScore, o.RiskLevel)
	if o.IsFraud {
		summary = fmt.Sprintf("Fraud screening failed: probability %s with %d matched rules.", o.FraudScore, len(o.Signals))
	}

	return model.Explanation{
		Type:       e.Type(),
		Factors:    factors,
		Summary:    summary,
		Confidence: ruleExplainerConfidence,
	}
}
