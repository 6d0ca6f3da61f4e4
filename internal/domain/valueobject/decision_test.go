package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

func TestDecisionFromString(t *testing.T) {
	decision, err := valueobject.DecisionFromString("APPROVE")
	require.NoError(t, err)
	assert.True(t, decision.IsApproved())

	_, err = valueobject.DecisionFromString("MAYBE")
	assert.Error(t, err)
}

func TestDecision_Predicates(t *testing.T) {
	assert.True(t, valueobject.DecisionReview.IsReview())
	assert.True(t, valueobject.DecisionReject.IsRejected())
	assert.False(t, valueobject.DecisionReject.IsApproved())
}

func TestDecision_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(valueobject.DecisionReject)
	require.NoError(t, err)
	assert.Equal(t, `"REJECT"`, string(data))

	var decision valueobject.Decision
	require.NoError(t, json.Unmarshal(data, &decision))
	assert.True(t, decision.Equal(valueobject.DecisionReject))
}
