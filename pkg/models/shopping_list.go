package models

import (
	"time"

	"github.com/google/uuid"
)

// IngredientUsageRow is one (ingredient, unit, dish, meal-occurrence) tuple
// from the weekly usage query. The same (IngredientID, UnitID) pair appears
// once per contributing dish line per planned meal.
type IngredientUsageRow struct {
	IngredientID       uuid.UUID
	IngredientName     string
	IngredientCategory *string
	DishQuantity       float64
	UnitID             uuid.UUID
	UnitName           string
	UnitAbbreviation   string
	Servings           float64
	DishName           string
	MealDate           time.Time
	MealLabel          string
}

// ShoppingListItem is one aggregated line of the weekly shopping list:
// the total quantity of an ingredient in one unit, with the distinct dish
// names that contributed to it in first-seen order.
type ShoppingListItem struct {
	IngredientID     uuid.UUID `json:"ingredient_id"`
	IngredientName   string    `json:"ingredient_name"`
	TotalQuantity    float64   `json:"total_quantity"`
	UnitID           uuid.UUID `json:"unit_id"`
	UnitName         string    `json:"unit_name"`
	UnitAbbreviation string    `json:"unit_abbreviation"`
	Category         *string   `json:"category,omitempty"`
	Dishes           []string  `json:"dishes"`
}

// ShoppingList is the aggregated weekly list plus per-category item counts.
// The summary counts always sum to len(Items).
type ShoppingList struct {
	WeekStart         string              `json:"week_start"`
	WeekEnd           string              `json:"week_end"`
	Items             []*ShoppingListItem `json:"items"`
	SummaryByCategory map[string]int      `json:"summary_by_category"`
}
