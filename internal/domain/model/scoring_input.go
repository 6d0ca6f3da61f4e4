package model

import (
	"github.com/shopspring/decimal"
)

// PeerRelationship links a borrower to one peer in their lending circle,
// including whether that peer has defaulted on a prior loan.
type PeerRelationship struct {
	PeerID    string `json:"peer_id"`
	Relation  string `json:"relation"`
	Defaulted bool   `json:"defaulted"`
}

// Borrower carries applicant attributes supplied by the caller. The optional
// engineered feature mapping is tagged with the feature set and version it
// was produced under; decision models declare which set/version they accept.
type Borrower struct {
	ID                 string             `json:"id"`
	Region             string             `json:"region"`
	Occupation         string             `json:"occupation"`
	MonthlyIncome      decimal.Decimal    `json:"monthly_income"`
	DebtRatio          decimal.Decimal    `json:"debt_ratio"`
	Peers              []PeerRelationship `json:"peers"`
	EngineeredFeatures map[string]float64 `json:"engineered_features,omitempty"`
	FeatureSet         string             `json:"feature_set,omitempty"`
	FeatureVersion     string             `json:"feature_version,omitempty"`
}

// LoanRequest carries the requested loan attributes.
type LoanRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Purpose string          `json:"purpose"`
}

// ScoringInput is the complete input to one ensemble prediction. It is owned
// by the caller, passed by value into the scoring core, and never mutated.
type ScoringInput struct {
	Borrower Borrower    `json:"borrower"`
	Loan     LoanRequest `json:"loan"`
}
