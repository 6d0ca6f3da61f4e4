package service

import (
	"fmt"
	"strings"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// TrustGraphExplainer renders explanations for the peer trust graph model:
// peer-repayment ratios and coordinated-default ring alerts. Confidence
// scales with the size of the peer sample.
type TrustGraphExplainer struct{}

// NewTrustGraphExplainer creates the trust graph explainer.
func NewTrustGraphExplainer() *TrustGraphExplainer {
	return &TrustGraphExplainer{}
}

// Type identifies this explainer variant.
func (e *TrustGraphExplainer) Type() string { return "trust_graph" }

// Matches accepts the trust graph model family.
func (e *TrustGraphExplainer) Matches(modelName string) bool {
	return strings.Contains(modelName, "TrustGraph")
}

// Explain renders graph insights for a trust model output.
func (e *TrustGraphExplainer) Explain(_ model.ScoringInput, out model.ModelOutput) (model.Explanation, error) {
	o, ok := out.(model.TrustModelOutput)
	if !ok {
		return model.Explanation{}, fmt.Errorf("trust graph explainer cannot explain output of %s", out.ModelName())
	}

	var factors []model.ExplanationFactor

	if o.PeerCount == 0 {
		factors = append(factors, model.ExplanationFactor{
			Label:     "peer_repayment_ratio",
			Impact:    0,
			Rationale: "no peer relationships on record; neutral trust assumed",
		})
	} else {
		goodPeers := o.PeerCount - o.DefaultedPeers
		factors = append(factors, model.ExplanationFactor{
			Label:  "peer_repayment_ratio",
			Impact: (o.TrustScore.InexactFloat64() - 0.5) * 2,
			Rationale: fmt.Sprintf("%d of %d peers are in good standing (trust ratio %s)",
				goodPeers, o.PeerCount, o.TrustScore),
		})
	}

	if o.FlagRisk {
		factors = append(factors, model.ExplanationFactor{
			Label:  "coordinated_default_ring",
			Impact: -1.0,
			Rationale: fmt.Sprintf("%d defaulted peers in a circle of %d suggest a possible coordinated default ring",
				o.DefaultedPeers, o.PeerCount),
			Alert: true,
		})
	}

	summary := fmt.Sprintf("Peer trust graph analysis yielded a trust score of %s across %d peers.",
		o.TrustScore, o.PeerCount)
	if o.FlagRisk {
		summary += " A coordinated-default ring alert was raised."
	}

	return model.Explanation{
		Type:       e.Type(),
		Factors:    factors,
		Summary:    summary,
		Confidence: e.confidence(o.PeerCount),
	}, nil
}

// confidence grows with the peer sample: 0.2 with no peers, +0.15 per peer,
// capped at 0.95.
func (e *TrustGraphExplainer) confidence(peerCount int) float64 {
	if peerCount == 0 {
		return 0.2
	}
	c := 0.35 + 0.15*float64(peerCount)
	if c > 0.95 {
		return 0.95
	}
	return c
}
