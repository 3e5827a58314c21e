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

// DishRepository provides data access for dishes and their ingredient lines.
type DishRepository interface {
	Create(ctx context.Context, dish *models.Dish) error
	Update(ctx context.Context, dish *models.Dish) error
	Delete(ctx context.Context, userID, dishID uuid.UUID) error
	GetByUser(ctx context.Context, userID uuid.UUID, search string) ([]*models.Dish, error)
	GetByID(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error)
}

type dishRepository struct {
	db *database.DB
}

// NewDishRepository creates a new DishRepository.
func NewDishRepository(db *database.DB) DishRepository {
	return &dishRepository{db: db}
}

var _ DishRepository = (*dishRepository)(nil)

// Create inserts the dish and its ingredient lines in one transaction.
func (r *dishRepository) Create(ctx context.Context, dish *models.Dish) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()

	query := `
		INSERT INTO dishes (user_id, name, description, base_calories,
			preparation_time_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, query,
		dish.UserID,
		dish.Name,
		nullString(dish.Description),
		dish.BaseCalories,
		dish.PreparationTimeMinutes,
		now,
		now,
	).Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}

	if err := insertDishIngredients(ctx, tx, dish); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dish: %w", err)
	}
	return nil
}

// Update rewrites the dish row and replaces its ingredient lines wholesale,
// matching how the dish form submits the full ingredient list every time.
func (r *dishRepository) Update(ctx context.Context, dish *models.Dish) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE dishes
		SET name = $3, description = $4, base_calories = $5,
		    preparation_time_minutes = $6, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	err = tx.QueryRow(ctx, query,
		dish.ID,
		dish.UserID,
		dish.Name,
		nullString(dish.Description),
		dish.BaseCalories,
		dish.PreparationTimeMinutes,
	).Scan(&dish.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update dish: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM dish_ingredients WHERE dish_id = $1`, dish.ID); err != nil {
		return fmt.Errorf("failed to clear dish ingredients: %w", err)
	}

	if err := insertDishIngredients(ctx, tx, dish); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit dish: %w", err)
	}
	return nil
}

func insertDishIngredients(ctx context.Context, tx pgx.Tx, dish *models.Dish) error {
	for i := range dish.Ingredients {
		line := &dish.Ingredients[i]
		line.DishID = dish.ID

		err := tx.QueryRow(ctx, `
			INSERT INTO dish_ingredients (dish_id, ingredient_id, quantity, unit_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			line.DishID,
			line.IngredientID,
			line.Quantity,
			line.UnitID,
		).Scan(&line.ID)
		if err != nil {
			return fmt.Errorf("failed to insert dish ingredient: %w", err)
		}
	}
	return nil
}

func (r *dishRepository) Delete(ctx context.Context, userID, dishID uuid.UUID) error {
	query := `DELETE FROM dishes WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, dishID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *dishRepository) GetByUser(ctx context.Context, userID uuid.UUID, search string) ([]*models.Dish, error) {
	query := `
		SELECT id, user_id, name, description, base_calories,
		       preparation_time_minutes, created_at, updated_at
		FROM dishes
		WHERE user_id = $1
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, userID, search)
	if err != nil {
		return nil, fmt.Errorf("failed to query dishes: %w", err)
	}
	defer rows.Close()

	var dishes []*models.Dish
	for rows.Next() {
		dish, err := scanDish(rows)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dishes: %w", err)
	}

	return dishes, nil
}

func (r *dishRepository) GetByID(ctx context.Context, userID, dishID uuid.UUID) (*models.Dish, error) {
	query := `
		SELECT id, user_id, name, description, base_calories,
		       preparation_time_minutes, created_at, updated_at
		FROM dishes
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRow(ctx, query, dishID, userID)
	dish, err := scanDish(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.getIngredientLines(ctx, dishID)
	if err != nil {
		return nil, err
	}
	dish.Ingredients = lines

	return dish, nil
}

func (r *dishRepository) getIngredientLines(ctx context.Context, dishID uuid.UUID) ([]models.DishIngredient, error) {
	query := `
		SELECT di.id, di.dish_id, di.ingredient_id, i.name,
		       di.quantity, di.unit_id, u.name, u.abbreviation
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		JOIN units u ON u.id = di.unit_id
		WHERE di.dish_id = $1
		ORDER BY i.name`

	rows, err := r.db.Query(ctx, query, dishID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dish ingredients: %w", err)
	}
	defer rows.Close()

	var lines []models.DishIngredient
	for rows.Next() {
		var line models.DishIngredient
		err := rows.Scan(
			&line.ID,
			&line.DishID,
			&line.IngredientID,
			&line.IngredientName,
			&line.Quantity,
			&line.UnitID,
			&line.UnitName,
			&line.UnitAbbreviation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dish ingredient: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dish ingredients: %w", err)
	}

	return lines, nil
}

func scanDish(row pgx.Row) (*models.Dish, error) {
	var d models.Dish
	var description *string

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&description,
		&d.BaseCalories,
		&d.PreparationTimeMinutes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan dish: %w", err)
	}

	if description != nil {
		d.Description = *description
	}

	return &d, nil
}
