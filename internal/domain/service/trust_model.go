package service

import (
	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
)

const (
	trustModelName    = "TrustGraphModel"
	trustModelVersion = "v1.0"
)

// TrustModel scores a borrower by walking their peer-relationship list. The
// trust score is the ratio of peers in good standing; a cluster of defaulted
// peers flags a possible coordinated-default ring.
type TrustModel struct {
	// minRingSize is the minimum number of defaulted peers before ring
	// detection can fire.
	minRingSize int
}

// NewTrustModel creates the peer trust graph model.
func NewTrustModel() *TrustModel {
	return &TrustModel{minRingSize: 2}
}

// Name returns the model family name.
func (m *TrustModel) Name() string { return trustModelName }

// Version returns the model revision.
func (m *TrustModel) Version() string { return trustModelVersion }

// FeatureContract returns nil: the trust model operates on raw borrower
// fields and needs no engineered features.
func (m *TrustModel) FeatureContract() *valueobject.FeatureContract {
	return nil
}

// Predict computes the peer trust ratio and checks for default rings.
// A borrower with no peer data gets a neutral 0.5 trust score.
func (m *TrustModel) Predict(input model.ScoringInput) (model.ModelOutput, error) {
	peers := input.Borrower.Peers

	if len(peers) == 0 {
		return model.TrustModelOutput{
			Model:      trustModelName,
			Version:    trustModelVersion,
			TrustScore: decimal.NewFromFloat(0.5),
			FlagRisk:   false,
		}, nil
	}

	defaulted := 0
	for _, p := range peers {
		if p.Defaulted {
			defaulted++
		}
	}
	good := len(peers) - defaulted

	trustScore := decimal.NewFromInt(int64(good)).
		Div(decimal.NewFromInt(int64(len(peers)))).
		Round(4)

	// Ring detection: at least minRingSize defaulted peers making up half
	// or more of the borrower's circle.
	flagRisk := defaulted >= m.minRingSize && defaulted*2 >= len(peers)

	return model.TrustModelOutput{
		Model:          trustModelName,
		Version:        trustModelVersion,
		TrustScore:     trustScore,
		FlagRisk:       flagRisk,
		PeerCount:      len(peers),
		DefaultedPeers: defaulted,
	}, nil
}
