package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/pkg/models"
)

// PostgresEvaluationRepository implements EvaluationRepository for PostgreSQL
type PostgresEvaluationRepository struct {
	db *sql.DB
}

// NewPostgresEvaluationRepository creates a new PostgreSQL evaluation repository
func NewPostgresEvaluationRepository(db *sql.DB) repository.EvaluationRepository {
	return &PostgresEvaluationRepository{db: db}
}

// Create inserts a new evaluation record
func (r *PostgresEvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	design, err := json.Marshal(evaluation.Design)
	if err != nil {
		return fmt.Errorf("failed to marshal room design: %w", err)
	}

	query := `
		INSERT INTO evaluations (id, session_id, status, progress, design, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		evaluation.ID,
		evaluation.SessionID,
		evaluation.Status,
		evaluation.Progress,
		string(design),
		evaluation.CreatedAt,
		evaluation.UpdatedAt)

	return err
}

// GetByID retrieves an evaluation by ID
func (r *PostgresEvaluationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error) {
	query := `
		SELECT id, session_id, status, progress, design,
		       measurement_s3_key, measurement_format, measurement_quantity,
		       error_message, created_at, updated_at, completed_at
		FROM evaluations
		WHERE id = $1`

	return scanEvaluation(r.db.QueryRowContext(ctx, query, id))
}

// GetBySessionID retrieves evaluations by session ID
func (r *PostgresEvaluationRepository) GetBySessionID(ctx context.Context, sessionID string) ([]*models.Evaluation, error) {
	query := `
		SELECT id, session_id, status, progress, design,
		       measurement_s3_key, measurement_format, measurement_quantity,
		       error_message, created_at, updated_at, completed_at
		FROM evaluations
		WHERE session_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		evaluation, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}

	return evaluations, rows.Err()
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(row scanner) (*models.Evaluation, error) {
	var evaluation models.Evaluation
	var designStr string
	var measurementKey, measurementFormat, measurementQuantity, errorMsg sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&evaluation.ID,
		&evaluation.SessionID,
		&evaluation.Status,
		&evaluation.Progress,
		&designStr,
		&measurementKey,
		&measurementFormat,
		&measurementQuantity,
		&errorMsg,
		&evaluation.CreatedAt,
		&evaluation.UpdatedAt,
		&completedAt)

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(designStr), &evaluation.Design); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room design: %w", err)
	}

	if measurementKey.Valid {
		evaluation.MeasurementS3Key = &measurementKey.String
	}
	if measurementFormat.Valid {
		evaluation.MeasurementFormat = &measurementFormat.String
	}
	if measurementQuantity.Valid {
		evaluation.MeasurementQuantity = &measurementQuantity.String
	}
	if errorMsg.Valid {
		evaluation.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		evaluation.CompletedAt = &completedAt.Time
	}

	return &evaluation, nil
}

// UpdateStatus updates the status and progress of an evaluation
func (r *PostgresEvaluationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE evaluations
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError updates the error message for an evaluation
func (r *PostgresEvaluationRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE evaluations
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// AttachMeasurement records the uploaded measurement export for an evaluation
func (r *PostgresEvaluationRepository) AttachMeasurement(ctx context.Context, id uuid.UUID, s3Key, format, quantity string) error {
	query := `
		UPDATE evaluations
		SET measurement_s3_key = $1, measurement_format = $2, measurement_quantity = $3, updated_at = NOW()
		WHERE id = $4`

	_, err := r.db.ExecContext(ctx, query, s3Key, format, quantity, id)
	return err
}

// StoreResults stores evaluation results
func (r *PostgresEvaluationRepository) StoreResults(ctx context.Context, results *models.EvaluationResults) error {
	t60, err := json.Marshal(results.T60)
	if err != nil {
		return fmt.Errorf("failed to marshal t60 curve: %w", err)
	}
	alphaMean, err := json.Marshal(results.AlphaMean)
	if err != nil {
		return fmt.Errorf("failed to marshal alpha mean curve: %w", err)
	}
	total, err := json.Marshal(results.TotalAbsorption)
	if err != nil {
		return fmt.Errorf("failed to marshal absorption curve: %w", err)
	}

	var measured []byte
	if results.Measured != nil {
		measured, err = json.Marshal(results.Measured)
		if err != nil {
			return fmt.Errorf("failed to marshal measured curve: %w", err)
		}
	}
	var compliance []byte
	if results.Compliance != nil {
		compliance, err = json.Marshal(results.Compliance)
		if err != nil {
			return fmt.Errorf("failed to marshal compliance report: %w", err)
		}
	}

	query := `
		INSERT INTO evaluation_results (id, evaluation_id, model, t60, alpha_mean, total_absorption, measured, compliance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		results.ID,
		results.EvaluationID,
		results.Model,
		string(t60),
		string(alphaMean),
		string(total),
		nullableJSON(measured),
		nullableJSON(compliance),
		results.CreatedAt)

	return err
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

// GetResults retrieves evaluation results
func (r *PostgresEvaluationRepository) GetResults(ctx context.Context, evaluationID uuid.UUID) (*models.EvaluationResults, error) {
	query := `
		SELECT id, evaluation_id, model, t60, alpha_mean, total_absorption, measured, compliance, created_at
		FROM evaluation_results
		WHERE evaluation_id = $1`

	var results models.EvaluationResults
	var t60Str, alphaStr, totalStr string
	var measuredStr, complianceStr sql.NullString

	err := r.db.QueryRowContext(ctx, query, evaluationID).Scan(
		&results.ID,
		&results.EvaluationID,
		&results.Model,
		&t60Str,
		&alphaStr,
		&totalStr,
		&measuredStr,
		&complianceStr,
		&results.CreatedAt)

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(t60Str), &results.T60); err != nil {
		return nil, fmt.Errorf("failed to unmarshal t60 curve: %w", err)
	}
	if err := json.Unmarshal([]byte(alphaStr), &results.AlphaMean); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alpha mean curve: %w", err)
	}
	if err := json.Unmarshal([]byte(totalStr), &results.TotalAbsorption); err != nil {
		return nil, fmt.Errorf("failed to unmarshal absorption curve: %w", err)
	}
	if measuredStr.Valid {
		if err := json.Unmarshal([]byte(measuredStr.String), &results.Measured); err != nil {
			return nil, fmt.Errorf("failed to unmarshal measured curve: %w", err)
		}
	}
	if complianceStr.Valid {
		results.Compliance = &models.ComplianceReport{}
		if err := json.Unmarshal([]byte(complianceStr.String), results.Compliance); err != nil {
			return nil, fmt.Errorf("failed to unmarshal compliance report: %w", err)
		}
	}

	return &results, nil
}
