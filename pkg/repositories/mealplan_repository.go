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

// MealPlanRepository provides data access for meal plans, their items, and
// the two flat row sets backing the weekly calendar and shopping list.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *models.MealPlan) error
	Delete(ctx context.Context, userID, planID uuid.UUID) error
	GetByID(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error)
	AddItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error
	UpdateItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error
	DeleteItem(ctx context.Context, userID, planID, itemID uuid.UUID) error

	// FetchWeeklyMealPlanRows returns the user's meal slots in [start, end]
	// (dates inclusive) left-joined to items and dishes, ordered by date,
	// meal label, dish name. Slots without items yield one row with null
	// item columns.
	FetchWeeklyMealPlanRows(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.MealPlanRow, error)

	// FetchWeeklyIngredientUsageRows returns one row per ingredient line per
	// planned meal item in [start, end], ordered by category then ingredient
	// name. Ordering is cosmetic; the aggregator re-derives item order.
	FetchWeeklyIngredientUsageRows(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.IngredientUsageRow, error)
}

type mealPlanRepository struct {
	db *database.DB
}

// NewMealPlanRepository creates a new MealPlanRepository.
func NewMealPlanRepository(db *database.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

var _ MealPlanRepository = (*mealPlanRepository)(nil)

func (r *mealPlanRepository) Create(ctx context.Context, plan *models.MealPlan) error {
	now := time.Now()

	query := `
		INSERT INTO meal_plans (user_id, plan_date, meal_label, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		plan.UserID,
		plan.PlanDate,
		plan.MealLabel,
		nullString(plan.Notes),
		now,
		now,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// One slot per (user, date, label)
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create meal plan: %w", err)
	}

	return nil
}

func (r *mealPlanRepository) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	query := `DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, planID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *mealPlanRepository) GetByID(ctx context.Context, userID, planID uuid.UUID) (*models.MealPlan, error) {
	query := `
		SELECT id, user_id, plan_date, meal_label, notes, created_at, updated_at
		FROM meal_plans
		WHERE id = $1 AND user_id = $2`

	var p models.MealPlan
	var notes *string
	err := r.db.QueryRow(ctx, query, planID, userID).Scan(
		&p.ID, &p.UserID, &p.PlanDate, &p.MealLabel, &notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan meal plan: %w", err)
	}
	if notes != nil {
		p.Notes = *notes
	}

	items, err := r.getItems(ctx, planID)
	if err != nil {
		return nil, err
	}
	p.Items = items

	return &p, nil
}

// GetByUser lists the user's meal slots without their items, newest week
// first. The calendar endpoint is the item-bearing view; this one backs the
// plain management list.
func (r *mealPlanRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	query := `
		SELECT id, user_id, plan_date, meal_label, notes, created_at, updated_at
		FROM meal_plans
		WHERE user_id = $1
		ORDER BY plan_date DESC, meal_label`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]*models.MealPlan, 0)
	for rows.Next() {
		var p models.MealPlan
		var notes *string
		err := rows.Scan(&p.ID, &p.UserID, &p.PlanDate, &p.MealLabel, &notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		if notes != nil {
			p.Notes = *notes
		}
		plans = append(plans, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal plans: %w", err)
	}

	return plans, nil
}

func (r *mealPlanRepository) getItems(ctx context.Context, planID uuid.UUID) ([]models.MealItem, error) {
	query := `
		SELECT mi.id, mi.meal_plan_id, mi.dish_id, d.name,
		       mi.servings, mi.customizations, mi.notes, mi.created_at
		FROM meal_items mi
		JOIN dishes d ON d.id = mi.dish_id
		WHERE mi.meal_plan_id = $1
		ORDER BY d.name`

	rows, err := r.db.Query(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal items: %w", err)
	}
	defer rows.Close()

	var items []models.MealItem
	for rows.Next() {
		var item models.MealItem
		var customizations []byte
		var notes *string
		err := rows.Scan(
			&item.ID,
			&item.MealPlanID,
			&item.DishID,
			&item.DishName,
			&item.Servings,
			&customizations,
			&notes,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal item: %w", err)
		}
		item.Customizations = customizations
		if notes != nil {
			item.Notes = *notes
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meal items: %w", err)
	}

	return items, nil
}

// AddItem inserts a meal item after checking the plan belongs to the user.
func (r *mealPlanRepository) AddItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error {
	query := `
		INSERT INTO meal_items (meal_plan_id, dish_id, servings, customizations, notes, created_at)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM meal_plans WHERE id = $1 AND user_id = $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		item.MealPlanID,
		item.DishID,
		item.Servings,
		jsonbOrNil(item.Customizations),
		nullString(item.Notes),
		time.Now(),
		userID,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to add meal item: %w", err)
	}

	return nil
}

func (r *mealPlanRepository) UpdateItem(ctx context.Context, userID uuid.UUID, item *models.MealItem) error {
	query := `
		UPDATE meal_items mi
		SET servings = $3, customizations = $4, notes = $5
		FROM meal_plans mp
		WHERE mi.id = $1 AND mi.meal_plan_id = $2
		  AND mp.id = mi.meal_plan_id AND mp.user_id = $6
		RETURNING mi.id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		item.ID,
		item.MealPlanID,
		item.Servings,
		jsonbOrNil(item.Customizations),
		nullString(item.Notes),
		userID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update meal item: %w", err)
	}

	return nil
}

func (r *mealPlanRepository) DeleteItem(ctx context.Context, userID, planID, itemID uuid.UUID) error {
	query := `
		DELETE FROM meal_items mi
		USING meal_plans mp
		WHERE mi.id = $1 AND mi.meal_plan_id = $2
		  AND mp.id = mi.meal_plan_id AND mp.user_id = $3`

	result, err := r.db.Exec(ctx, query, itemID, planID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete meal item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *mealPlanRepository) FetchWeeklyMealPlanRows(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.MealPlanRow, error) {
	query := `
		SELECT mp.id, mp.plan_date, mp.meal_label, mp.created_at,
		       mi.id, mi.dish_id, mi.servings, mi.customizations, mi.notes,
		       d.name, d.base_calories, d.preparation_time_minutes
		FROM meal_plans mp
		LEFT JOIN meal_items mi ON mi.meal_plan_id = mp.id
		LEFT JOIN dishes d ON d.id = mi.dish_id
		WHERE mp.user_id = $1
		  AND mp.plan_date >= $2 AND mp.plan_date <= $3
		ORDER BY mp.plan_date, mp.meal_label, d.name`

	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly meal plan rows: %w", err)
	}
	defer rows.Close()

	var result []models.MealPlanRow
	for rows.Next() {
		var row models.MealPlanRow
		var customizations []byte
		err := rows.Scan(
			&row.MealPlanID,
			&row.PlanDate,
			&row.MealLabel,
			&row.PlanCreatedAt,
			&row.MealItemID,
			&row.DishID,
			&row.Servings,
			&customizations,
			&row.Notes,
			&row.DishName,
			&row.BaseCalories,
			&row.PrepTimeMin,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly meal plan row: %w", err)
		}
		row.Customizations = customizations
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly meal plan rows: %w", err)
	}

	return result, nil
}

func (r *mealPlanRepository) FetchWeeklyIngredientUsageRows(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]models.IngredientUsageRow, error) {
	query := `
		SELECT i.id, i.name, c.name,
		       di.quantity, u.id, u.name, u.abbreviation,
		       mi.servings, d.name, mp.plan_date, mp.meal_label
		FROM meal_plans mp
		JOIN meal_items mi ON mi.meal_plan_id = mp.id
		JOIN dishes d ON d.id = mi.dish_id
		JOIN dish_ingredients di ON di.dish_id = d.id
		JOIN ingredients i ON i.id = di.ingredient_id
		JOIN units u ON u.id = di.unit_id
		LEFT JOIN categories c ON c.id = i.category_id
		WHERE mp.user_id = $1
		  AND mp.plan_date >= $2 AND mp.plan_date <= $3
		ORDER BY c.name, i.name`

	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly ingredient usage rows: %w", err)
	}
	defer rows.Close()

	var result []models.IngredientUsageRow
	for rows.Next() {
		var row models.IngredientUsageRow
		err := rows.Scan(
			&row.IngredientID,
			&row.IngredientName,
			&row.IngredientCategory,
			&row.DishQuantity,
			&row.UnitID,
			&row.UnitName,
			&row.UnitAbbreviation,
			&row.Servings,
			&row.DishName,
			&row.MealDate,
			&row.MealLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient usage row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredient usage rows: %w", err)
	}

	return result, nil
}

// jsonbOrNil converts raw JSON to a value suitable for a JSONB column,
// storing NULL for empty input.
func jsonbOrNil(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
