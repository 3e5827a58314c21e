package services

import (
	"time"

	"github.com/platewise/platewise-engine/pkg/models"
)

// BuildWeeklyCalendar folds flat meal-plan rows into the nested weekly view:
// date key → meal label → meal record with its items in row order.
//
// Rows must already be limited to [weekStart, weekStart+6]; the repository
// query owns that window and the ordering (date, meal label, dish name).
// This function performs no filtering, no sorting, and no validation of the
// join shape: a slot whose item fields are all null materializes with an
// empty items slice, and an item is appended whenever MealItemID is non-nil
// regardless of the other joined fields.
func BuildWeeklyCalendar(rows []models.MealPlanRow, weekStart time.Time) *models.WeeklyCalendar {
	cal := &models.WeeklyCalendar{
		WeekStart: DateKey(weekStart),
		Days:      make(map[string]map[string]*models.MealRecord),
	}

	for _, row := range rows {
		dateKey := DateKey(row.PlanDate)

		day, ok := cal.Days[dateKey]
		if !ok {
			day = make(map[string]*models.MealRecord)
			cal.Days[dateKey] = day
		}

		record, ok := day[row.MealLabel]
		if !ok {
			record = &models.MealRecord{
				ID:        row.MealPlanID,
				MealLabel: row.MealLabel,
				Date:      dateKey,
				CreatedAt: row.PlanCreatedAt,
				Items:     make([]models.MealItemView, 0),
			}
			day[row.MealLabel] = record
		}

		if row.MealItemID == nil {
			// Empty meal slot (left-join artifact): the record stays with
			// items = [], it is not omitted.
			continue
		}

		record.Items = append(record.Items, models.MealItemView{
			ID:              *row.MealItemID,
			DishID:          row.DishID,
			DishName:        row.DishName,
			Servings:        row.Servings,
			Customizations:  row.Customizations,
			Notes:           row.Notes,
			BaseCalories:    row.BaseCalories,
			PreparationTime: row.PrepTimeMin,
		})
	}

	return cal
}
