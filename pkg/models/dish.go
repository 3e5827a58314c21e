package models

import (
	"time"

	"github.com/google/uuid"
)

// Dish is a recipe: a named set of ingredient lines with per-serving
// quantities plus presentation metadata.
type Dish struct {
	ID                     uuid.UUID        `json:"id"`
	UserID                 uuid.UUID        `json:"user_id"`
	Name                   string           `json:"name"`
	Description            string           `json:"description,omitempty"`
	BaseCalories           *int             `json:"base_calories,omitempty"`
	PreparationTimeMinutes *int             `json:"preparation_time_minutes,omitempty"`
	Ingredients            []DishIngredient `json:"ingredients,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// DishIngredient is one ingredient line of a dish: the quantity of an
// ingredient needed for a single serving, in a specific unit.
type DishIngredient struct {
	ID               uuid.UUID `json:"id"`
	DishID           uuid.UUID `json:"dish_id"`
	IngredientID     uuid.UUID `json:"ingredient_id"`
	IngredientName   string    `json:"ingredient_name,omitempty"` // joined, read-only
	Quantity         float64   `json:"quantity"`
	UnitID           uuid.UUID `json:"unit_id"`
	UnitName         string    `json:"unit_name,omitempty"`         // joined, read-only
	UnitAbbreviation string    `json:"unit_abbreviation,omitempty"` // joined, read-only
}
