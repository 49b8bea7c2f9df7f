package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"materialOrderManagement/models"
)

// MaterialRepository reads the static material catalog. The catalog is
// seeded by migrations and never written at runtime.
type MaterialRepository struct {
	db *sql.DB
}

func NewMaterialRepository(db *sql.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// GetByName looks up one catalog entry. Returns (nil, nil) for unknown
// materials; the lifecycle layer turns that into a validation error.
func (r *MaterialRepository) GetByName(ctx context.Context, name string) (*models.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m models.Material
	err := r.db.QueryRowContext(ctx, `SELECT name, unit_price, unit FROM materials WHERE name = ?`, name).
		Scan(&m.Name, &m.UnitPrice, &m.Unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// List returns the full catalog, alphabetically.
func (r *MaterialRepository) List(ctx context.Context) ([]models.Material, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT name, unit_price, unit FROM materials ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Material
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.Name, &m.UnitPrice, &m.Unit); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
