package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/testhelpers"
)

// planTestContext holds repositories wired to the shared test database plus
// a fresh user with a small catalog.
type planTestContext struct {
	t     *testing.T
	ctx   context.Context
	users uuid.UUID

	mealPlans MealPlanRepository
	dishes    DishRepository

	gramID    uuid.UUID
	oatmealID uuid.UUID
	dishID    uuid.UUID
}

func setupPlanTest(t *testing.T) *planTestContext {
	t.Helper()

	engineDB := testhelpers.GetEngineDB(t)
	ctx := context.Background()

	var userID uuid.UUID
	err := engineDB.DB.QueryRow(ctx,
		"INSERT INTO users (email, name) VALUES ($1, $2) RETURNING id",
		uuid.NewString()+"@test.local", "Test User").Scan(&userID)
	require.NoError(t, err)

	tc := &planTestContext{
		t:         t,
		ctx:       ctx,
		users:     userID,
		mealPlans: NewMealPlanRepository(engineDB.DB),
		dishes:    NewDishRepository(engineDB.DB),
	}

	unitRepo := NewUnitRepository(engineDB.DB)
	unit := &models.Unit{UserID: userID, Name: "gram", Abbreviation: "g"}
	require.NoError(t, unitRepo.Create(ctx, unit))
	tc.gramID = unit.ID

	ingredientRepo := NewIngredientRepository(engineDB.DB)
	ingredient := &models.Ingredient{UserID: userID, Name: "Oatmeal"}
	require.NoError(t, ingredientRepo.Create(ctx, ingredient))
	tc.oatmealID = ingredient.ID

	dish := &models.Dish{
		UserID: userID,
		Name:   "Oatmeal Bowl",
		Ingredients: []models.DishIngredient{
			{IngredientID: tc.oatmealID, Quantity: 50, UnitID: tc.gramID},
		},
	}
	require.NoError(t, tc.dishes.Create(ctx, dish))
	tc.dishID = dish.ID

	return tc
}

func (tc *planTestContext) createPlan(date string, label string) *models.MealPlan {
	tc.t.Helper()
	planDate, err := time.Parse("2006-01-02", date)
	require.NoError(tc.t, err)

	plan := &models.MealPlan{UserID: tc.users, PlanDate: planDate, MealLabel: label}
	require.NoError(tc.t, tc.mealPlans.Create(tc.ctx, plan))
	return plan
}

func TestMealPlanRepository_DuplicateSlotConflicts(t *testing.T) {
	tc := setupPlanTest(t)

	tc.createPlan("2026-09-07", models.MealLabelBreakfast)

	dup := &models.MealPlan{
		UserID:    tc.users,
		PlanDate:  time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		MealLabel: models.MealLabelBreakfast,
	}
	err := tc.mealPlans.Create(tc.ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict), "got %v", err)
}

func TestMealPlanRepository_ItemLifecycle(t *testing.T) {
	tc := setupPlanTest(t)
	plan := tc.createPlan("2026-09-08", models.MealLabelDinner)

	item := &models.MealItem{MealPlanID: plan.ID, DishID: tc.dishID, Servings: 2}
	require.NoError(t, tc.mealPlans.AddItem(tc.ctx, tc.users, item))
	require.NotEqual(t, uuid.Nil, item.ID)

	loaded, err := tc.mealPlans.GetByID(tc.ctx, tc.users, plan.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2.0, loaded.Items[0].Servings)
	assert.Equal(t, "Oatmeal Bowl", loaded.Items[0].DishName)

	item.Servings = 3
	require.NoError(t, tc.mealPlans.UpdateItem(tc.ctx, tc.users, item))

	require.NoError(t, tc.mealPlans.DeleteItem(tc.ctx, tc.users, plan.ID, item.ID))

	loaded, err = tc.mealPlans.GetByID(tc.ctx, tc.users, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
}

func TestMealPlanRepository_AddItemToForeignPlanFails(t *testing.T) {
	tc := setupPlanTest(t)
	plan := tc.createPlan("2026-09-09", models.MealLabelLunch)

	otherUser := uuid.New()
	item := &models.MealItem{MealPlanID: plan.ID, DishID: tc.dishID, Servings: 1}
	err := tc.mealPlans.AddItem(tc.ctx, otherUser, item)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)
}

func TestMealPlanRepository_FetchWeeklyMealPlanRows(t *testing.T) {
	tc := setupPlanTest(t)

	weekStart := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)

	withItems := tc.createPlan("2026-09-07", models.MealLabelDinner)
	item := &models.MealItem{MealPlanID: withItems.ID, DishID: tc.dishID, Servings: 2}
	require.NoError(t, tc.mealPlans.AddItem(tc.ctx, tc.users, item))

	empty := tc.createPlan("2026-09-08", models.MealLabelLunch)

	// Out of window: must not appear.
	tc.createPlan("2026-09-14", models.MealLabelBreakfast)

	rows, err := tc.mealPlans.FetchWeeklyMealPlanRows(tc.ctx, tc.users, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by date: the populated dinner slot first.
	assert.Equal(t, withItems.ID, rows[0].MealPlanID)
	require.NotNil(t, rows[0].MealItemID)
	assert.Equal(t, "Oatmeal Bowl", *rows[0].DishName)
	assert.Equal(t, 2.0, *rows[0].Servings)

	// The empty slot comes back as a single row with null item columns.
	assert.Equal(t, empty.ID, rows[1].MealPlanID)
	assert.Nil(t, rows[1].MealItemID)
	assert.Nil(t, rows[1].DishName)
}

func TestMealPlanRepository_FetchWeeklyIngredientUsageRows(t *testing.T) {
	tc := setupPlanTest(t)

	weekStart := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)

	plan := tc.createPlan("2026-09-21", models.MealLabelBreakfast)
	item := &models.MealItem{MealPlanID: plan.ID, DishID: tc.dishID, Servings: 3}
	require.NoError(t, tc.mealPlans.AddItem(tc.ctx, tc.users, item))

	rows, err := tc.mealPlans.FetchWeeklyIngredientUsageRows(tc.ctx, tc.users, weekStart, weekEnd)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, tc.oatmealID, row.IngredientID)
	assert.Equal(t, "Oatmeal", row.IngredientName)
	assert.Nil(t, row.IngredientCategory)
	assert.Equal(t, 50.0, row.DishQuantity)
	assert.Equal(t, 3.0, row.Servings)
	assert.Equal(t, "g", row.UnitAbbreviation)
	assert.Equal(t, "Oatmeal Bowl", row.DishName)
}

func TestMealPlanRepository_GetByID_NotFound(t *testing.T) {
	tc := setupPlanTest(t)

	_, err := tc.mealPlans.GetByID(tc.ctx, tc.users, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "got %v", err)
}
