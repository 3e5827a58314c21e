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

// IngredientRepository provides data access for ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, userID, ingredientID uuid.UUID) error
	GetByUser(ctx context.Context, userID uuid.UUID, search string) ([]*models.Ingredient, error)
	GetByID(ctx context.Context, userID, ingredientID uuid.UUID) (*models.Ingredient, error)
}

type ingredientRepository struct {
	db *database.DB
}

// NewIngredientRepository creates a new IngredientRepository.
func NewIngredientRepository(db *database.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

var _ IngredientRepository = (*ingredientRepository)(nil)

func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	now := time.Now()

	query := `
		INSERT INTO ingredients (user_id, name, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		ingredient.UserID,
		ingredient.Name,
		ingredient.CategoryID,
		now,
		now,
	).Scan(&ingredient.ID, &ingredient.CreatedAt, &ingredient.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create ingredient: %w", err)
	}

	return nil
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $3, category_id = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		ingredient.ID,
		ingredient.UserID,
		ingredient.Name,
		ingredient.CategoryID,
	).Scan(&ingredient.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to update ingredient: %w", err)
	}

	return nil
}

func (r *ingredientRepository) Delete(ctx context.Context, userID, ingredientID uuid.UUID) error {
	query := `DELETE FROM ingredients WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, ingredientID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *ingredientRepository) GetByUser(ctx context.Context, userID uuid.UUID, search string) ([]*models.Ingredient, error) {
	query := `
		SELECT i.id, i.user_id, i.name, i.category_id, c.name,
		       i.created_at, i.updated_at
		FROM ingredients i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.user_id = $1
		  AND ($2 = '' OR i.name ILIKE '%' || $2 || '%')
		ORDER BY i.name`

	rows, err := r.db.Query(ctx, query, userID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []*models.Ingredient
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, userID, ingredientID uuid.UUID) (*models.Ingredient, error) {
	query := `
		SELECT i.id, i.user_id, i.name, i.category_id, c.name,
		       i.created_at, i.updated_at
		FROM ingredients i
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE i.id = $1 AND i.user_id = $2`

	row := r.db.QueryRow(ctx, query, ingredientID, userID)
	ingredient, err := scanIngredient(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return ingredient, nil
}

func scanIngredient(row pgx.Row) (*models.Ingredient, error) {
	var i models.Ingredient
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Name,
		&i.CategoryID,
		&i.CategoryName,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan ingredient: %w", err)
	}
	return &i, nil
}
