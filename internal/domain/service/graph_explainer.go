package service

import (
	"fmt"
	"strings"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// GraphExplainer is the generic fallback for graph-shaped model outputs not
// covered by a dedicated explainer. It reports only the normalized score and
// risk flag, at reduced confidence.
type GraphExplainer struct{}

// NewGraphExplainer creates the generic graph explainer.
func NewGraphExplainer() *GraphExplainer {
	return &GraphExplainer{}
}

// Type identifies this explainer variant.
func (e *GraphExplainer) Type() string { return "graph" }

// Matches accepts any graph-family model. Register this explainer after the
// dedicated variants so it only catches what they do not.
func (e *GraphExplainer) Matches(modelName string) bool {
	return strings.Contains(modelName, "Graph")
}

// Explain renders a generic explanation from the output's common surface.
func (e *GraphExplainer) Explain(_ model.ScoringInput, out model.ModelOutput) (model.Explanation, error) {
	score := out.NormalizedScore()

	factors := []model.ExplanationFactor{
		{
			Label:     "graph_score",
			Impact:    (score.InexactFloat64() - 50) / 50,
			Rationale: fmt.Sprintf("%s produced a normalized score of %s/100", out.ModelName(), score),
		},
	}
	if out.RiskFlagged() {
		factors = append(factors, model.ExplanationFactor{
			Label:     "graph_risk_flag",
			Impact:    -1.0,
			Rationale: fmt.Sprintf("%s raised a risk flag", out.ModelName()),
			Alert:     true,
		})
	}

	return model.Explanation{
		Type:       e.Type(),
		Factors:    factors,
		Summary:    fmt.Sprintf("Graph analysis by %s scored %s/100.", out.ModelName(), score),
		Confidence: 0.5,
	}, nil
}
