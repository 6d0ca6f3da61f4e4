package valueobject

import (
	"fmt"
	"sort"
	"strings"
)

// FeatureContract declares the engineered feature set a decision model
// requires. A model publishes its contract once at construction; the
// ensemble validates caller-supplied features against it before invoking
// the model. Contracts are immutable.
type FeatureContract struct {
	featureSet       string
	featureVersion   string
	requiredFeatures []string
}

// NewFeatureContract creates a feature contract for the given set, version
// and required feature names.
func NewFeatureContract(featureSet, featureVersion string, requiredFeatures []string) FeatureContract {
	required := make([]string, len(requiredFeatures))
	copy(required, requiredFeatures)
	sort.Strings(required)
	return FeatureContract{
		featureSet:       featureSet,
		featureVersion:   featureVersion,
		requiredFeatures: required,
	}
}

// FeatureSet returns the identifier of the expected feature set.
func (c FeatureContract) FeatureSet() string { return c.featureSet }

// FeatureVersion returns the expected feature set version.
func (c FeatureContract) FeatureVersion() string { return c.featureVersion }

// RequiredFeatures returns the required feature names in sorted order.
func (c FeatureContract) RequiredFeatures() []string {
	out := make([]string, len(c.requiredFeatures))
	copy(out, c.requiredFeatures)
	return out
}

// Validate checks caller-supplied features against the contract. It fails
// when the declared set or version does not match, or when any required
// feature is absent. Extra unrecognized keys are tolerated so newer feature
// pipelines remain compatible with older models.
func (c FeatureContract) Validate(features map[string]float64, featureSet, featureVersion string) error {
	if featureSet != c.featureSet {
		return &FeatureValidationError{
			FeatureSet:     c.featureSet,
			FeatureVersion: c.featureVersion,
			Reason:         fmt.Sprintf("feature_set mismatch: want %q, got %q", c.featureSet, featureSet),
		}
	}
	if featureVersion != c.featureVersion {
		return &FeatureValidationError{
			FeatureSet:     c.featureSet,
			FeatureVersion: c.featureVersion,
			Reason:         fmt.Sprintf("feature_version mismatch: want %q, got %q", c.featureVersion, featureVersion),
		}
	}

	var missing []string
	for _, name := range c.requiredFeatures {
		if _, ok := features[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &FeatureValidationError{
			FeatureSet:     c.featureSet,
			FeatureVersion: c.featureVersion,
			Missing:        missing,
			Reason:         fmt.Sprintf("missing required features: %s", strings.Join(missing, ", ")),
		}
	}

	return nil
}

// FeatureValidationError reports a feature contract violation. The request
// cannot be retried as-is; the caller must supply a conforming feature
// payload.
type FeatureValidationError struct {
	FeatureSet     string
	FeatureVersion string
	Missing        []string
	Reason         string
}

// Error implements the error interface.
func (e *FeatureValidationError) Error() string {
	return fmt.Sprintf("feature validation failed for %s/%s: %s", e.FeatureSet, e.FeatureVersion, e.Reason)
}
