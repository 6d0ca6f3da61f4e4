package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Registry keys for the standard decision models.
const (
	ModelKeyCredit = "credit"
	ModelKeyTrust  = "trust"
	ModelKeyFraud  = "fraud"
)

// registeredModel pairs a model with its registry key and ensemble weight.
type registeredModel struct {
	key    string
	model  Model
	weight decimal.Decimal
}

// ModelInfo describes one registry entry for listing purposes.
type ModelInfo struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// ModelRegistry holds exactly one stateless instance per decision model,
// in a fixed invocation order. Register all models during construction and
// treat the registry as read-only afterwards; it is then safe for
// concurrent reuse across requests.
type ModelRegistry struct {
	entries []registeredModel
	index   map[string]int
}

// NewRegistry creates an empty model registry.
func NewRegistry() *ModelRegistry {
	return &ModelRegistry{index: make(map[string]int)}
}

// NewDefaultRegistry builds the standard three-model registry: the
// rule-based credit model at 50%, the peer trust graph model at 25% and the
// fraud rule model at 25%.
func NewDefaultRegistry() *ModelRegistry {
	r := NewRegistry()
	// Registration of the built-in models cannot collide.
	_ = r.Register(ModelKeyCredit, NewCreditModel(), decimal.NewFromFloat(0.50))
	_ = r.Register(ModelKeyTrust, NewTrustModel(), decimal.NewFromFloat(0.25))
	_ = r.Register(ModelKeyFraud, NewFraudModel(), decimal.NewFromFloat(0.25))
	return r
}

// Register adds a model under the given key with its ensemble weight.
// Keys must be unique; invocation order follows registration order.
func (r *ModelRegistry) Register(key string, m Model, weight decimal.Decimal) error {
	if key == "" {
		return fmt.Errorf("model key is required")
	}
	if m == nil {
		return fmt.Errorf("model is required for key %q", key)
	}
	if _, exists := r.index[key]; exists {
		return fmt.Errorf("model key %q already registered", key)
	}
	if weight.IsNegative() {
		return fmt.Errorf("model weight for %q must not be negative", key)
	}

	r.index[key] = len(r.entries)
	r.entries = append(r.entries, registeredModel{key: key, model: m, weight: weight})
	return nil
}

// Get resolves a model by its registry key.
func (r *ModelRegistry) Get(key string) (Model, error) {
	i, ok := r.index[key]
	if !ok {
		return nil, &ModelLookupError{Key: key}
	}
	return r.entries[i].model, nil
}

// List returns all registered models in invocation order.
func (r *ModelRegistry) List() []ModelInfo {
	infos := make([]ModelInfo, 0, len(r.entries))
	for _, e := range r.entries {
		infos = append(infos, ModelInfo{
			Key:         e.key,
			DisplayName: DisplayName(e.model),
		})
	}
	return infos
}

// BuildEnsemble wires all registered models into an ensemble governed by
// the given decision policy. The registered weights must sum to exactly 1.0.
func (r *ModelRegistry) BuildEnsemble(policy DecisionPolicy, explain *ExplainEngine) (*Ensemble, error) {
	if len(r.entries) == 0 {
		return nil, fmt.Errorf("cannot build ensemble: no models registered")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision policy: %w", err)
	}
	if explain == nil {
		return nil, fmt.Errorf("explainability engine is required")
	}

	total := decimal.Zero
	for _, e := range r.entries {
		total = total.Add(e.weight)
	}
	if !total.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("model weights must sum to 1.0, got %s", total)
	}

	entries := make([]registeredModel, len(r.entries))
	copy(entries, r.entries)

	return &Ensemble{
		entries: entries,
		policy:  policy,
		explain: explain,
	}, nil
}
