package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ModelOutput is the self-describing result of one decision model. Each
// concrete output carries the producing model's name and version, exposes
// its score mapped onto the common 0-100 creditworthiness scale, and reports
// whether the model raised a risk flag.
type ModelOutput interface {
	ModelName() string
	ModelVersion() string

	// NormalizedScore maps the model's native output onto a 0-100 scale
	// where higher means more creditworthy.
	NormalizedScore() decimal.Decimal

	// RiskFlagged reports whether the model raised a fraud or risk flag.
	RiskFlagged() bool
}

// ScoringFactor is one weighted component of a rule-based model score.
type ScoringFactor struct {
	Name   string          `json:"name"`
	Weight decimal.Decimal `json:"weight"`
	Score  int             `json:"score"`
	Impact string          `json:"impact"`
}

// CreditModelOutput is produced by the rule-based credit model.
type CreditModelOutput struct {
	Model     string          `json:"model_name"`
	Version   string          `json:"model_version"`
	Score     int             `json:"score"`
	RiskLevel string          `json:"risk_level"`
	Factors   []ScoringFactor `json:"factors"`
}

func (o CreditModelOutput) ModelName() string    { return o.Model }
func (o CreditModelOutput) ModelVersion() string { return o.Version }
func (o CreditModelOutput) RiskFlagged() bool    { return false }

// NormalizedScore returns the credit score, already on the 0-100 scale.
func (o CreditModelOutput) NormalizedScore() decimal.Decimal {
	return decimal.NewFromInt(int64(o.Score))
}

// TrustModelOutput is produced by the peer trust graph model.
type TrustModelOutput struct {
	Model          string          `json:"model_name"`
	Version        string          `json:"model_version"`
	TrustScore     decimal.Decimal `json:"trust_score"`
	FlagRisk       bool            `json:"flag_risk"`
	PeerCount      int             `json:"peer_count"`
	DefaultedPeers int             `json:"defaulted_peers"`
}

func (o TrustModelOutput) ModelName() string    { return o.Model }
func (o TrustModelOutput) ModelVersion() string { return o.Version }
func (o TrustModelOutput) RiskFlagged() bool    { return o.FlagRisk }

// NormalizedScore rescales the 0.0-1.0 trust score onto the 0-100 scale.
func (o TrustModelOutput) NormalizedScore() decimal.Decimal {
	return o.TrustScore.Mul(decimal.NewFromInt(100))
}

// FraudModelOutput is produced by the fraud rule model.
type FraudModelOutput struct {
	Model      string          `json:"model_name"`
	Version    string          `json:"model_version"`
	FraudScore decimal.Decimal `json:"fraud_score"`
	IsFraud    bool            `json:"is_fraud"`
	RiskLevel  string          `json:"risk_level"`
	Signals    []string        `json:"signals"`
}

func (o FraudModelOutput) ModelName() string    { return o.Model }
func (o FraudModelOutput) ModelVersion() string { return o.Version }
func (o FraudModelOutput) RiskFlagged() bool    { return o.IsFraud }

// NormalizedScore inverts the 0.0-1.0 fraud probability onto the 0-100
// creditworthiness scale: a clean profile scores 100.
func (o FraudModelOutput) NormalizedScore() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(o.FraudScore).Mul(decimal.NewFromInt(100))
}

// UnmarshalModelOutput decodes a serialized model output into its concrete
// type, dispatching on the embedded model_name tag.
func UnmarshalModelOutput(data []byte) (ModelOutput, error) {
	var tag struct {
		Model string `json:"model_name"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("decode model output tag: %w", err)
	}

	switch tag.Model {
	case "RuleBasedCreditModel":
		var out CreditModelOutput
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode credit model output: %w", err)
		}
		return out, nil
	case "TrustGraphModel":
		var out TrustModelOutput
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode trust model output: %w", err)
		}
		return out, nil
	case "FraudRuleModel":
		var out FraudModelOutput
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode fraud model output: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown model output type: %q", tag.Model)
	}
}
