package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MealPlanRow is one row of the weekly meal plan query: a meal slot
// left-joined to its items and their dishes. Item fields are nil together
// when the slot has no items (the left-join artifact); only MealItemID's
// nullness decides whether an item view is materialized.
type MealPlanRow struct {
	MealPlanID     uuid.UUID
	PlanDate       time.Time
	MealLabel      string
	PlanCreatedAt  time.Time
	MealItemID     *uuid.UUID
	DishID         *uuid.UUID
	Servings       *float64
	Customizations json.RawMessage
	Notes          *string
	DishName       *string
	BaseCalories   *int
	PrepTimeMin    *int
}

// MealItemView is the calendar-facing projection of a meal item.
type MealItemView struct {
	ID              uuid.UUID       `json:"id"`
	DishID          *uuid.UUID      `json:"dish_id"`
	DishName        *string         `json:"dish_name"`
	Servings        *float64        `json:"servings"`
	Customizations  json.RawMessage `json:"customizations,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	BaseCalories    *int            `json:"base_calories,omitempty"`
	PreparationTime *int            `json:"preparation_time,omitempty"`
}

// MealRecord is one materialized meal slot in the weekly calendar.
// Items preserves query row order and is empty (not nil) for slots
// without items.
type MealRecord struct {
	ID        uuid.UUID      `json:"id"`
	MealLabel string         `json:"meal_label"`
	Date      string         `json:"date"`
	CreatedAt time.Time      `json:"created_at"`
	Items     []MealItemView `json:"items"`
}

// WeeklyCalendar is the nested weekly view: date key (YYYY-MM-DD) → meal
// label → meal record. Construction happens per request; nothing here is
// shared or cached.
type WeeklyCalendar struct {
	WeekStart string                            `json:"week_start"`
	Days      map[string]map[string]*MealRecord `json:"days"`
}
