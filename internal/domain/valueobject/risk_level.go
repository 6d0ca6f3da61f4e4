package valueobject

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is an immutable value object classifying applicant risk.
type RiskLevel struct {
	value string
}

var (
	RiskLevelLow    = RiskLevel{value: "LOW"}
	RiskLevelMedium = RiskLevel{value: "MEDIUM"}
	RiskLevelHigh   = RiskLevel{value: "HIGH"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "HIGH":
		return RiskLevelHigh, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalJSON encodes the risk level as its string value.
func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes the risk level from its string value.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := RiskLevelFromString(s)
	if err != nil {
		return err
	}
	*r = level
	return nil
}
