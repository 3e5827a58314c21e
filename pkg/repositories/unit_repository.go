package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/database"
	"github.com/platewise/platewise-engine/pkg/models"
)

// UnitRepository provides data access for measurement units.
type UnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, userID, unitID uuid.UUID) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Unit, error)
	GetByID(ctx context.Context, userID, unitID uuid.UUID) (*models.Unit, error)
}

type unitRepository struct {
	db *database.DB
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(db *database.DB) UnitRepository {
	return &unitRepository{db: db}
}

var _ UnitRepository = (*unitRepository)(nil)

func (r *unitRepository) Create(ctx context.Context, unit *models.Unit) error {
	now := time.Now()

	query := `
		INSERT INTO units (user_id, name, abbreviation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		unit.UserID,
		unit.Name,
		unit.Abbreviation,
		now,
		now,
	).Scan(&unit.ID, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create unit: %w", err)
	}

	return nil
}

func (r *unitRepository) Update(ctx context.Context, unit *models.Unit) error {
	query := `
		UPDATE units
		SET name = $3, abbreviation = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		unit.ID,
		unit.UserID,
		unit.Name,
		unit.Abbreviation,
	).Scan(&unit.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to update unit: %w", err)
	}

	return nil
}

func (r *unitRepository) Delete(ctx context.Context, userID, unitID uuid.UUID) error {
	query := `DELETE FROM units WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, unitID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *unitRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.Unit, error) {
	query := `
		SELECT id, user_id, name, abbreviation, created_at, updated_at
		FROM units
		WHERE user_id = $1
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating units: %w", err)
	}

	return units, nil
}

func (r *unitRepository) GetByID(ctx context.Context, userID, unitID uuid.UUID) (*models.Unit, error) {
	query := `
		SELECT id, user_id, name, abbreviation, created_at, updated_at
		FROM units
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRow(ctx, query, unitID, userID)
	unit, err := scanUnit(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return unit, nil
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.UserID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan unit: %w", err)
	}
	return &u, nil
}
