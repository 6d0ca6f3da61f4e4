package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sadmanHT/CreditBridge-sub001/internal/application/dto"
	"github.com/sadmanHT/CreditBridge-sub001/internal/application/usecase"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/service"
	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/valueobject"
	"github.com/sadmanHT/CreditBridge-sub001/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Compile-time assertion that ScoringServiceHandler implements ScoringServiceServer.
var _ ScoringServiceServer = (*ScoringServiceHandler)(nil)

// ScoringServiceHandler implements the gRPC ScoringServiceServer interface.
type ScoringServiceHandler struct {
	UnimplementedScoringServiceServer
	scoreApplicant *usecase.ScoreApplicant
	getAssessment  *usecase.GetAssessment
	registry       *service.ModelRegistry
	logger         *slog.Logger
}

// NewScoringServiceHandler creates a new gRPC handler.
func NewScoringServiceHandler(
	scoreApplicant *usecase.ScoreApplicant,
	getAssessment *usecase.GetAssessment,
	registry *service.ModelRegistry,
	logger *slog.Logger,
) *ScoringServiceHandler {
	return &ScoringServiceHandler{
		scoreApplicant: scoreApplicant,
		getAssessment:  getAssessment,
		registry:       registry,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// PeerMsg represents the proto Peer message.
type PeerMsg struct {
	PeerID    string `json:"peer_id"`
	Relation  string `json:"relation"`
	Defaulted bool   `json:"defaulted"`
}

// ScoreApplicantRequest represents the proto ScoreApplicantRequest message.
type ScoreApplicantRequest struct {
	ApplicantID        string             `json:"applicant_id"`
	Region             string             `json:"region"`
	Occupation         string             `json:"occupation"`
	MonthlyIncome      string             `json:"monthly_income"`
	DebtRatio          string             `json:"debt_ratio"`
	Peers              []*PeerMsg         `json:"peers"`
	EngineeredFeatures map[string]float64 `json:"engineered_features"`
	FeatureSet         string             `json:"feature_set"`
	FeatureVersion     string             `json:"feature_version"`
	LoanAmount         string             `json:"loan_amount"`
	LoanPurpose        string             `json:"loan_purpose"`
}

// AssessmentMsg represents the proto Assessment message. The full ensemble
// result, including per-model outputs and the structured explanation, rides
// along as serialized JSON.
type AssessmentMsg struct {
	ID               string `json:"id"`
	ApplicantID      string `json:"applicant_id"`
	LoanAmount       string `json:"loan_amount"`
	LoanPurpose      string `json:"loan_purpose"`
	FinalCreditScore int32  `json:"final_credit_score"`
	FraudFlag        bool   `json:"fraud_flag"`
	Decision         string `json:"decision"`
	RiskLevel        string `json:"risk_level"`
	ResultJSON       []byte `json:"result_json"`
}

// ScoreApplicantResponse represents the proto ScoreApplicantResponse message.
type ScoreApplicantResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ListModelsRequest represents the proto ListModelsRequest message.
type ListModelsRequest struct{}

// ModelInfoMsg represents the proto ModelInfo message.
type ModelInfoMsg struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
}

// ListModelsResponse represents the proto ListModelsResponse message.
type ListModelsResponse struct {
	Models []*ModelInfoMsg `json:"models"`
}

// ScoreApplicant handles a scoring request.
func (h *ScoringServiceHandler) ScoreApplicant(ctx context.Context, req *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	monthlyIncome, err := decimal.NewFromString(req.MonthlyIncome)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid monthly_income: %v", err)
	}

	debtRatio, err := decimal.NewFromString(req.DebtRatio)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid debt_ratio: %v", err)
	}

	loanAmount, err := decimal.NewFromString(req.LoanAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid loan_amount: %v", err)
	}

	peers := make([]dto.PeerDTO, 0, len(req.Peers))
	for _, p := range req.Peers {
		if p == nil {
			continue
		}
		peers = append(peers, dto.PeerDTO{
			PeerID:    p.PeerID,
			Relation:  p.Relation,
			Defaulted: p.Defaulted,
		})
	}

	h.logger.Info("scoring applicant",
		slog.String("applicant_id", req.ApplicantID),
		slog.String("loan_amount", req.LoanAmount),
	)

	result, err := h.scoreApplicant.Execute(ctx, dto.ScoreApplicantRequest{
		ApplicantID:        req.ApplicantID,
		Region:             req.Region,
		Occupation:         req.Occupation,
		MonthlyIncome:      monthlyIncome,
		DebtRatio:          debtRatio,
		Peers:              peers,
		EngineeredFeatures: req.EngineeredFeatures,
		FeatureSet:         req.FeatureSet,
		FeatureVersion:     req.FeatureVersion,
		LoanAmount:         loanAmount,
		LoanPurpose:        req.LoanPurpose,
	})
	if err != nil {
		return nil, h.mapScoringError(req.ApplicantID, err)
	}

	return &ScoreApplicantResponse{Assessment: toAssessmentMsg(result)}, nil
}

// GetAssessment handles a get assessment request.
func (h *ScoringServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		if errors.Is(err, usecase.ErrAssessmentNotFound) {
			return nil, status.Errorf(codes.NotFound, "assessment %s not found", req.ID)
		}
		h.logger.Error("failed to load assessment",
			slog.String("assessment_id", req.ID),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

// ListModels returns the registered models in registration order.
func (h *ScoringServiceHandler) ListModels(ctx context.Context, _ *ListModelsRequest) (*ListModelsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleAuditor, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	infos := h.registry.List()
	models := make([]*ModelInfoMsg, 0, len(infos))
	for _, info := range infos {
		models = append(models, &ModelInfoMsg{
			Key:         info.Key,
			DisplayName: info.DisplayName,
		})
	}

	return &ListModelsResponse{Models: models}, nil
}

// mapScoringError translates domain scoring failures into gRPC status codes.
// Feature contract violations are caller errors; model execution failures
// are internal.
func (h *ScoringServiceHandler) mapScoringError(applicantID string, err error) error {
	var validationErr *valueobject.FeatureValidationError
	if errors.As(err, &validationErr) {
		return status.Errorf(codes.InvalidArgument, "feature validation failed: %v", validationErr)
	}

	var execErr *service.ModelExecutionError
	if errors.As(err, &execErr) {
		h.logger.Error("model execution failed",
			slog.String("applicant_id", applicantID),
			slog.String("model_key", execErr.ModelKey),
			slog.String("error", execErr.Error()),
		)
		return status.Error(codes.Internal, "scoring failed")
	}

	h.logger.Error("failed to score applicant",
		slog.String("applicant_id", applicantID),
		slog.String("error", err.Error()),
	)
	return status.Error(codes.Internal, "internal error")
}

func toAssessmentMsg(resp dto.AssessmentResponse) *AssessmentMsg {
	msg := &AssessmentMsg{
		ID:               resp.ID.String(),
		ApplicantID:      resp.ApplicantID,
		LoanAmount:       resp.LoanAmount,
		LoanPurpose:      resp.LoanPurpose,
		FinalCreditScore: int32(resp.FinalCreditScore),
		FraudFlag:        resp.FraudFlag,
		Decision:         resp.Decision,
		RiskLevel:        resp.RiskLevel,
	}

	if resp.Result != nil {
		if data, err := json.Marshal(resp.Result); err == nil {
			msg.ResultJSON = data
		}
	}

	return msg
}
