package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/sadmanHT/CreditBridge-sub001/internal/domain/model"
	pgutil "github.com/sadmanHT/CreditBridge-sub001/pkg/postgres"
)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
// The full ensemble result, including per-model outputs and the structured
// explanation, is stored as JSONB; verdict fields are denormalized into
// scalar columns for querying.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save persists a credit assessment and its aggregated explanation factors
// in one transaction.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.CreditAssessment) error {
	var (
		resultJSON []byte
		score      *int
		fraudFlag  *bool
		decision   *string
		riskLevel  *string
	)
	if result := assessment.Result(); result != nil {
		data, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal ensemble result: %w", err)
		}
		resultJSON = data
		s := result.FinalCreditScore
		f := result.FraudFlag
		d := result.Decision.String()
		rl := result.RiskLevel.String()
		score, fraudFlag, decision, riskLevel = &s, &f, &d, &rl
	}

	// Upsert the assessment.
	query := `
		INSERT INTO credit_assessments (
			id, applicant_id, loan_amount, loan_purpose,
			final_credit_score, fraud_flag, decision, risk_level,
			result, scored_at, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			final_credit_score = EXCLUDED.final_credit_score,
			fraud_flag = EXCLUDED.fraud_flag,
			decision = EXCLUDED.decision,
			risk_level = EXCLUDED.risk_level,
			result = EXCLUDED.result,
			scored_at = EXCLUDED.scored_at,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	var scoredAt *time.Time
	if !assessment.ScoredAt().IsZero() {
		t := assessment.ScoredAt()
		scoredAt = &t
	}

	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			assessment.ID(),
			assessment.ApplicantID(),
			assessment.Loan().Amount,
			assessment.Loan().Purpose,
			score,
			fraudFlag,
			decision,
			riskLevel,
			resultJSON,
			scoredAt,
			assessment.Version(),
			assessment.CreatedAt(),
			assessment.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		// Delete existing factors and insert fresh ones.
		_, err = tx.Exec(ctx, `DELETE FROM assessment_factors WHERE assessment_id = $1`, assessment.ID())
		if err != nil {
			return fmt.Errorf("failed to delete old assessment factors: %w", err)
		}

		if result := assessment.Result(); result != nil {
			for i, factor := range result.StructuredExplanation.AggregatedFactors {
				_, err = tx.Exec(ctx,
					`INSERT INTO assessment_factors (assessment_id, position, model_key, label, impact, weight, rationale, alert)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
					assessment.ID(), i, factor.ModelKey, factor.Label, factor.Impact, factor.Weight, factor.Rationale, factor.Alert,
				)
				if err != nil {
					return fmt.Errorf("failed to save assessment factor: %w", err)
				}
			}
		}

		return nil
	})
}

// FindByID retrieves an assessment by its unique identifier. Returns
// (nil, nil) when no assessment exists.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.CreditAssessment, error) {
	query := `
		SELECT id, applicant_id, loan_amount, loan_purpose,
			result, scored_at, version, created_at, updated_at
		FROM credit_assessments
		WHERE id = $1
	`

	return r.scanAssessment(r.pool.QueryRow(ctx, query, id))
}

// FindByApplicantID retrieves the assessment history for an applicant,
// newest first.
func (r *AssessmentRepository) FindByApplicantID(ctx context.Context, applicantID string, limit, offset int) ([]*model.CreditAssessment, error) {
	query := `
		SELECT id, applicant_id, loan_amount, loan_purpose,
			result, scored_at, version, created_at, updated_at
		FROM credit_assessments
		WHERE applicant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, applicantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var assessments []*model.CreditAssessment
	for rows.Next() {
		assessment, err := r.scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}

	return assessments, nil
}

func (r *AssessmentRepository) scanAssessment(row pgx.Row) (*model.CreditAssessment, error) {
	var (
		id          uuid.UUID
		applicantID string
		loanAmount  decimal.Decimal
		loanPurpose string
		resultJSON  []byte
		scoredAt    *time.Time
		version     int
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&id, &applicantID, &loanAmount, &loanPurpose,
		&resultJSON, &scoredAt, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	var result *model.EnsembleResult
	if len(resultJSON) > 0 {
		result = &model.EnsembleResult{}
		if err := json.Unmarshal(resultJSON, result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ensemble result: %w", err)
		}
	}

	var scoredAtVal time.Time
	if scoredAt != nil {
		scoredAtVal = *scoredAt
	}

	return model.ReconstructAssessment(
		id, applicantID,
		model.LoanRequest{Amount: loanAmount, Purpose: loanPurpose},
		result, scoredAtVal, version, createdAt, updatedAt,
	), nil
}
