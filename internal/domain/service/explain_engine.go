package service

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

const (
	// ExplainEngineVersion identifies the aggregation revision recorded in
	// explanation metadata.
	ExplainEngineVersion = "v1.0"

	explanationMethod = "weighted_factor_merge"
)

// ExplainEngine resolves an explainer for every model output and merges the
// per-model explanations into one ranked narrative. Explanation is
// best-effort: a model whose explainer cannot be resolved or fails gets a
// placeholder entry and reduced coverage in metadata, but aggregation never
// aborts.
type ExplainEngine struct {
	registry *ExplainerRegistry
	logger   *slog.Logger
}

// NewExplainEngine creates an engine over the given explainer registry.
// A nil logger falls back to the default slog logger.
func NewExplainEngine(registry *ExplainerRegistry, logger *slog.Logger) *ExplainEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExplainEngine{registry: registry, logger: logger}
}

// Aggregate explains every model output and merges the results. Outputs are
// processed in the given key order; weights are the ensemble weights keyed
// the same way.
func (e *ExplainEngine) Aggregate(
	input model.ScoringInput,
	outputs map[string]model.ModelOutput,
	weights map[string]decimal.Decimal,
	order []string,
) model.AggregatedExplanation {
	explanations := make(map[string]model.Explanation, len(outputs))
	var aggregated []model.AggregatedFactor
	var summaries []string

	confidenceSum := decimal.Zero
	weightSum := decimal.Zero
	explained := 0

	for _, key := range order {
		out := outputs[key]
		weight := weights[key]

		explanation, err := e.explainOne(input, out)
		if err != nil {
			e.logger.Warn("explanation unavailable for model",
				slog.String("model_key", key),
				slog.String("model", out.ModelName()),
				slog.String("error", err.Error()),
			)
			// Record the failure instead of dropping the model entry.
			explanations[key] = model.Explanation{
				Type:    "unavailable",
				Factors: []model.ExplanationFactor{},
				Summary: fmt.Sprintf("explanation unavailable: %v", err),
			}
			continue
		}

		explanations[key] = explanation
		explained++
		summaries = append(summaries, explanation.Summary)

		confidenceSum = confidenceSum.Add(weight.Mul(decimal.NewFromFloat(explanation.Confidence)))
		weightSum = weightSum.Add(weight)

		for _, f := range explanation.Factors {
			aggregated = append(aggregated, model.AggregatedFactor{
				ModelKey:  key,
				Label:     f.Label,
				Impact:    f.Impact,
				Weight:    weight.InexactFloat64(),
				Rationale: f.Rationale,
				Alert:     f.Alert,
			})
		}
	}

	// Rank by weighted impact magnitude; stable so equal factors keep
	// model invocation order.
	sort.SliceStable(aggregated, func(i, j int) bool {
		return weightedImpact(aggregated[i]) > weightedImpact(aggregated[j])
	})
	if aggregated == nil {
		aggregated = make([]model.AggregatedFactor, 0)
	}

	overall := "No model explanations available."
	if len(summaries) > 0 {
		overall = strings.Join(summaries, " ")
	}

	// Renormalize confidence over the models actually explained.
	confidence := 0.0
	if weightSum.IsPositive() {
		confidence = roundConfidence(confidenceSum.Div(weightSum).InexactFloat64())
	}

	return model.AggregatedExplanation{
		OverallSummary:    overall,
		Confidence:        confidence,
		ModelExplanations: explanations,
		AggregatedFactors: aggregated,
		Metadata: model.ExplanationMetadata{
			NumModels:         len(order),
			NumExplained:      explained,
			ExplanationMethod: explanationMethod,
			EngineVersion:     ExplainEngineVersion,
		},
	}
}

// explainOne resolves and runs the explainer for a single output.
func (e *ExplainEngine) explainOne(input model.ScoringInput, out model.ModelOutput) (model.Explanation, error) {
	name := out.ModelName() + "-" + out.ModelVersion()
	explainer, err := e.registry.Resolve(name)
	if err != nil {
		return model.Explanation{}, err
	}
	return explainer.Explain(input, out)
}

func weightedImpact(f model.AggregatedFactor) float64 {
	return f.Weight * math.Abs(f.Impact)
}

func roundConfidence(c float64) float64 {
	return math.Round(c*10000) / 10000
}
