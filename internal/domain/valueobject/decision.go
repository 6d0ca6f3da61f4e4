package valueobject

import (
	"encoding/json"
	"fmt"
)

// Decision is an immutable value object representing the ensemble verdict
// for a loan application.
type Decision struct {
	value string
}

var (
	DecisionApprove = Decision{value: "APPROVE"}
	DecisionReview  = Decision{value: "REVIEW"}
	DecisionReject  = Decision{value: "REJECT"}
)

// DecisionFromString reconstructs a Decision from its string representation.
func DecisionFromString(s string) (Decision, error) {
	switch s {
	case "APPROVE":
		return DecisionApprove, nil
	case "REVIEW":
		return DecisionReview, nil
	case "REJECT":
		return DecisionReject, nil
	default:
		return Decision{}, fmt.Errorf("invalid decision: %s", s)
	}
}

// String returns the string representation.
func (d Decision) String() string {
	return d.value
}

// IsZero returns true if the decision has not been set.
func (d Decision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another Decision.
func (d Decision) Equal(other Decision) bool {
	return d.value == other.value
}

// IsApproved returns true if the decision is APPROVE.
func (d Decision) IsApproved() bool {
	return d.value == "APPROVE"
}

// IsReview returns true if the decision is REVIEW.
func (d Decision) IsReview() bool {
	return d.value == "REVIEW"
}

// IsRejected returns true if the decision is REJECT.
func (d Decision) IsRejected() bool {
	return d.value == "REJECT"
}

// MarshalJSON encodes the decision as its string value.
func (d Decision) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// UnmarshalJSON decodes the decision from its string value.
func (d *Decision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decision, err := DecisionFromString(s)
	if err != nil {
		return err
	}
	*d = decision
	return nil
}
