package model

// ExplanationFactor is one human-readable factor contributing to a model's
// output. Impact is signed: positive values supported the applicant,
// negative values counted against them. Alert marks factors that warrant
// analyst attention regardless of magnitude.
type ExplanationFactor struct {
	Label     string  `json:"label"`
	Impact    float64 `json:"impact"`
	Rationale string  `json:"rationale"`
	Alert     bool    `json:"alert,omitempty"`
}

// Explanation is the structured rationale for a single model's output.
// Immutable once produced.
type Explanation struct {
	Type       string              `json:"type"`
	Factors    []ExplanationFactor `json:"factors"`
	Summary    string              `json:"summary"`
	Confidence float64             `json:"confidence"`
}

// AggregatedFactor is an explanation factor tagged with the ensemble weight
// of the model that produced it.
type AggregatedFactor struct {
	ModelKey  string  `json:"model_key"`
	Label     string  `json:"label"`
	Impact    float64 `json:"impact"`
	Weight    float64 `json:"weight"`
	Rationale string  `json:"rationale"`
	Alert     bool    `json:"alert,omitempty"`
}

// ExplanationMetadata records the coverage and provenance of an aggregated
// explanation. NumExplained may be lower than NumModels when an explainer
// could not be resolved or failed; explanation is best-effort.
type ExplanationMetadata struct {
	NumModels         int    `json:"num_models"`
	NumExplained      int    `json:"num_explained"`
	ExplanationMethod string `json:"explanation_method"`
	EngineVersion     string `json:"engine_version"`
}

// AggregatedExplanation merges every model's explanation into one ranked,
// confidence-weighted narrative.
type AggregatedExplanation struct {
	OverallSummary    string                 `json:"overall_summary"`
	Confidence        float64                `json:"confidence"`
	ModelExplanations map[string]Explanation `json:"model_explanations"`
	AggregatedFactors []AggregatedFactor     `json:"aggregated_factors"`
	Metadata          ExplanationMetadata    `json:"metadata"`
}
