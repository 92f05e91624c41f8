package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/resona-acoustics/resona/pkg/models"
)

// EvaluationRepository defines the interface for evaluation data operations
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Evaluation, error)
	GetBySessionID(ctx context.Context, sessionID string) ([]*models.Evaluation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	AttachMeasurement(ctx context.Context, id uuid.UUID, s3Key, format, quantity string) error
	StoreResults(ctx context.Context, results *models.EvaluationResults) error
	GetResults(ctx context.Context, evaluationID uuid.UUID) (*models.EvaluationResults, error)
}

// MaterialRepository defines the interface for material library operations
type MaterialRepository interface {
	Upsert(ctx context.Context, material *models.MaterialInfo) error
	GetByID(ctx context.Context, id string) (*models.MaterialInfo, error)
	List(ctx context.Context) ([]models.MaterialInfo, error)
}
