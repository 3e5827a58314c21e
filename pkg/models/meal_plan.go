package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Meal labels recognized by the planner. One meal plan row exists per
// (user, date, label); items hang off it.
const (
	MealLabelBreakfast = "breakfast"
	MealLabelLunch     = "lunch"
	MealLabelDinner    = "dinner"
	MealLabelDessert   = "dessert"
)

// KnownMealLabels enumerates valid meal labels in display order.
var KnownMealLabels = []string{
	MealLabelBreakfast,
	MealLabelLunch,
	MealLabelDinner,
	MealLabelDessert,
}

// IsKnownMealLabel reports whether label is one of the recognized meal labels.
func IsKnownMealLabel(label string) bool {
	for _, l := range KnownMealLabels {
		if l == label {
			return true
		}
	}
	return false
}

// MealPlan is one planned meal slot: a (date, meal label) pair owned by a
// user. A slot may exist with no items yet.
type MealPlan struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	PlanDate  time.Time  `json:"plan_date"`
	MealLabel string     `json:"meal_label"`
	Notes     string     `json:"notes,omitempty"`
	Items     []MealItem `json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MealItem places a dish into a meal slot with a serving multiplier.
// Customizations is free-form JSON from the frontend (swaps, notes per
// ingredient) and passes through the API opaquely.
type MealItem struct {
	ID             uuid.UUID       `json:"id"`
	MealPlanID     uuid.UUID       `json:"meal_plan_id"`
	DishID         uuid.UUID       `json:"dish_id"`
	DishName       string          `json:"dish_name,omitempty"` // joined, read-only
	Servings       float64         `json:"servings"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
