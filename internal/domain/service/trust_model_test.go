package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
)

func trustInput(peers []model.PeerRelationship) model.ScoringInput {
	input := scoringInput(nil)
	input.Borrower.Peers = peers
	return input
}

func TestTrustModel_NoPeersNeutral(t *testing.T) {
	m := service.NewTrustModel()

	out, err := m.Predict(trustInput(nil))
	require.NoError(t, err)

	trust, ok := out.(model.TrustModelOutput)
	require.True(t, ok)
	assert.True(t, trust.TrustScore.Equal(decimal.NewFromFloat(0.5)))
	assert.False(t, trust.FlagRisk)
	assert.Equal(t, 0, trust.PeerCount)
}

func TestTrustModel_AllGoodPeers(t *testing.T) {
	m := service.NewTrustModel()

	out, err := m.Predict(trustInput([]model.PeerRelationship{
		{PeerID: "p1", Relation: "guarantor"},
		{PeerID: "p2", Relation: "family"},
	}))
	require.NoError(t, err)

	trust := out.(model.TrustModelOutput)
	assert.True(t, trust.TrustScore.Equal(decimal.NewFromInt(1)))
	assert.False(t, trust.FlagRisk)
	assert.False(t, trust.RiskFlagged())
}

func TestTrustModel_DefaultRingDetected(t *testing.T) {
	m := service.NewTrustModel()

	out, err := m.Predict(trustInput([]model.PeerRelationship{
		{PeerID: "p1", Relation: "business", Defaulted: true},
		{PeerID: "p2", Relation: "business", Defaulted: true},
		{PeerID: "p3", Relation: "family"},
	}))
	require.NoError(t, err)

	trust := out.(model.TrustModelOutput)
	// 2 of 3 defaulted: ring size met and at least half the circle.
	assert.True(t, trust.FlagRisk)
	assert.True(t, trust.RiskFlagged())
	assert.Equal(t, 2, trust.DefaultedPeers)
}

func TestTrustModel_SingleDefaultNoRing(t *testing.T) {
	m := service.NewTrustModel()

	out, err := m.Predict(trustInput([]model.PeerRelationship{
		{PeerID: "p1", Relation: "family", Defaulted: true},
		{PeerID: "p2", Relation: "family"},
	}))
	require.NoError(t, err)

	trust := out.(model.TrustModelOutput)
	assert.False(t, trust.FlagRisk)
	assert.True(t, trust.TrustScore.Equal(decimal.NewFromFloat(0.5)))
}

func TestTrustModel_MinorityDefaultsNoRing(t *testing.T) {
	m := service.NewTrustModel()

	out, err := m.Predict(trustInput([]model.PeerRelationship{
		{PeerID: "p1", Defaulted: true},
		{PeerID: "p2", Defaulted: true},
		{PeerID: "p3"},
		{PeerID: "p4"},
		{PeerID: "p5"},
	}))
	require.NoError(t, err)

	trust := out.(model.TrustModelOutput)
	// 2 of 5 defaulted: below half the circle, no ring.
	assert.False(t, trust.FlagRisk)
	assert.True(t, trust.TrustScore.Equal(decimal.NewFromFloat(0.6)))
}

func TestTrustModel_NoContract(t *testing.T) {
	m := service.NewTrustModel()
	assert.Nil(t, m.FeatureContract())
}
