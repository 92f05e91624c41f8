package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/resona-acoustics/resona/internal/repository"
	"github.com/resona-acoustics/resona/pkg/materials"
	"github.com/resona-acoustics/resona/pkg/models"
)

// PostgresMaterialRepository implements MaterialRepository for PostgreSQL
type PostgresMaterialRepository struct {
	db *sql.DB
}

// NewPostgresMaterialRepository creates a new PostgreSQL material repository
func NewPostgresMaterialRepository(db *sql.DB) *PostgresMaterialRepository {
	return &PostgresMaterialRepository{db: db}
}

var _ repository.MaterialRepository = (*PostgresMaterialRepository)(nil)

// Upsert inserts or replaces a material library entry
func (r *PostgresMaterialRepository) Upsert(ctx context.Context, material *models.MaterialInfo) error {
	coeffs, err := json.Marshal(material.Coefficients)
	if err != nil {
		return fmt.Errorf("failed to marshal coefficients: %w", err)
	}

	query := `
		INSERT INTO materials (id, name, coefficients)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, coefficients = EXCLUDED.coefficients`

	_, err = r.db.ExecContext(ctx, query, material.ID, material.Name, string(coeffs))
	return err
}

// GetByID retrieves a material by identifier
func (r *PostgresMaterialRepository) GetByID(ctx context.Context, id string) (*models.MaterialInfo, error) {
	query := `SELECT id, name, coefficients FROM materials WHERE id = $1`

	var material models.MaterialInfo
	var coeffsStr string

	err := r.db.QueryRowContext(ctx, query, id).Scan(&material.ID, &material.Name, &coeffsStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", materials.ErrMaterialNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(coeffsStr), &material.Coefficients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coefficients: %w", err)
	}

	return &material, nil
}

// List retrieves all material library entries
func (r *PostgresMaterialRepository) List(ctx context.Context) ([]models.MaterialInfo, error) {
	query := `SELECT id, name, coefficients FROM materials ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MaterialInfo
	for rows.Next() {
		var material models.MaterialInfo
		var coeffsStr string
		if err := rows.Scan(&material.ID, &material.Name, &coeffsStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(coeffsStr), &material.Coefficients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal coefficients for %q: %w", material.ID, err)
		}
		out = append(out, material)
	}

	return out, rows.Err()
}

// Library loads the full table into an in-memory absorption library for
// the evaluation pipeline.
func (r *PostgresMaterialRepository) Library(ctx context.Context) (materials.Library, error) {
	infos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	mats := make([]materials.Material, 0, len(infos))
	for _, info := range infos {
		curve, err := models.PointsCurve(info.Coefficients)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", info.ID, err)
		}
		mats = append(mats, materials.Material{ID: info.ID, Name: info.Name, Coefficients: curve})
	}
	return materials.NewInMemory(mats), nil
}
