package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
)

// PeerDTO describes one peer relationship in a scoring request.
type PeerDTO struct {
	PeerID    string `json:"peer_id"`
	Relation  string `json:"relation"`
	Defaulted bool   `json:"defaulted"`
}

// ScoreApplicantRequest is the input DTO for the ScoreApplicant use case.
type ScoreApplicantRequest struct {
	ApplicantID        string             `json:"applicant_id"`
	Region             string             `json:"region"`
	Occupation         string             `json:"occupation"`
	MonthlyIncome      decimal.Decimal    `json:"monthly_income"`
	DebtRatio          decimal.Decimal    `json:"debt_ratio"`
	Peers              []PeerDTO          `json:"peers"`
	EngineeredFeatures map[string]float64 `json:"engineered_features,omitempty"`
	FeatureSet         string             `json:"feature_set,omitempty"`
	FeatureVersion     string             `json:"feature_version,omitempty"`
	LoanAmount         decimal.Decimal    `json:"loan_amount"`
	LoanPurpose        string             `json:"loan_purpose"`
}

// ToScoringInput maps the request DTO to the domain scoring input.
func (r ScoreApplicantRequest) ToScoringInput() model.ScoringInput {
	peers := make([]model.PeerRelationship, 0, len(r.Peers))
	for _, p := range r.Peers {
		peers = append(peers, model.PeerRelationship{
			PeerID:    p.PeerID,
			Relation:  p.Relation,
			Defaulted: p.Defaulted,
		})
	}

	return model.ScoringInput{
		Borrower: model.Borrower{
			ID:                 r.ApplicantID,
			Region:             r.Region,
			Occupation:         r.Occupation,
			MonthlyIncome:      r.MonthlyIncome,
			DebtRatio:          r.DebtRatio,
			Peers:              peers,
			EngineeredFeatures: r.EngineeredFeatures,
			FeatureSet:         r.FeatureSet,
			FeatureVersion:     r.FeatureVersion,
		},
		Loan: model.LoanRequest{
			Amount:  r.LoanAmount,
			Purpose: r.LoanPurpose,
		},
	}
}

// AssessmentResponse is the output DTO returned for a scored assessment.
type AssessmentResponse struct {
	ID               uuid.UUID             `json:"id"`
	ApplicantID      string                `json:"applicant_id"`
	LoanAmount       string                `json:"loan_amount"`
	LoanPurpose      string                `json:"loan_purpose"`
	FinalCreditScore int                   `json:"final_credit_score"`
	FraudFlag        bool                  `json:"fraud_flag"`
	Decision         string                `json:"decision"`
	RiskLevel        string                `json:"risk_level"`
	Result           *model.EnsembleResult `json:"result"`
	ScoredAt         time.Time             `json:"scored_at"`
	CreatedAt        time.Time             `json:"created_at"`
}

// GetAssessmentRequest is the input DTO for retrieving an assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// FromModel maps a domain assessment to the response DTO.
func FromModel(a *model.CreditAssessment) AssessmentResponse {
	resp := AssessmentResponse{
		ID:          a.ID(),
		ApplicantID: a.ApplicantID(),
		LoanAmount:  a.Loan().Amount.String(),
		LoanPurpose: a.Loan().Purpose,
		Result:      a.Result(),
		ScoredAt:    a.ScoredAt(),
		CreatedAt:   a.CreatedAt(),
	}

	if result := a.Result(); result != nil {
		resp.FinalCreditScore = result.FinalCreditScore
		resp.FraudFlag = result.FraudFlag
		resp.Decision = result.Decision.String()
		resp.RiskLevel = result.RiskLevel.String()
	}

	return resp
}
