package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-engine/pkg/models"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("bad test date %q: %v", value, err)
	}
	return d
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func intPtr(i int) *int             { return &i }
func uuidPtr(u uuid.UUID) *uuid.UUID { return &u }

func itemRow(planID uuid.UUID, date time.Time, label, dishName string, servings float64) models.MealPlanRow {
	itemID := uuid.New()
	dishID := uuid.New()
	return models.MealPlanRow{
		MealPlanID:    planID,
		PlanDate:      date,
		MealLabel:     label,
		PlanCreatedAt: date,
		MealItemID:    &itemID,
		DishID:        &dishID,
		Servings:      floatPtr(servings),
		DishName:      strPtr(dishName),
	}
}

func TestBuildWeeklyCalendar_NestsRowsByDateAndLabel(t *testing.T) {
	weekStart := mustDate(t, "2026-09-07")
	monday := weekStart
	tuesday := weekStart.AddDate(0, 0, 1)

	breakfastID := uuid.New()
	dinnerID := uuid.New()

	rows := []models.MealPlanRow{
		itemRow(breakfastID, monday, models.MealLabelBreakfast, "Oatmeal Bowl", 1),
		itemRow(dinnerID, tuesday, models.MealLabelDinner, "Chicken and Rice", 2),
	}
	// Both rows of the same slot must land in one record.
	rows = append(rows, itemRow(breakfastID, monday, models.MealLabelBreakfast, "Scrambled Eggs", 1))

	cal := BuildWeeklyCalendar(rows, weekStart)

	if cal.WeekStart != "2026-09-07" {
		t.Errorf("expected week_start 2026-09-07, got %s", cal.WeekStart)
	}
	if len(cal.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(cal.Days))
	}

	breakfast := cal.Days["2026-09-07"][models.MealLabelBreakfast]
	if breakfast == nil {
		t.Fatal("expected breakfast record on 2026-09-07")
	}
	if breakfast.ID != breakfastID {
		t.Errorf("expected record ID %s, got %s", breakfastID, breakfast.ID)
	}
	if breakfast.Date != "2026-09-07" {
		t.Errorf("expected record date 2026-09-07, got %s", breakfast.Date)
	}
	if len(breakfast.Items) != 2 {
		t.Fatalf("expected 2 breakfast items, got %d", len(breakfast.Items))
	}
	// Row order is preserved.
	if *breakfast.Items[0].DishName != "Oatmeal Bowl" || *breakfast.Items[1].DishName != "Scrambled Eggs" {
		t.Errorf("items out of order: %v, %v", *breakfast.Items[0].DishName, *breakfast.Items[1].DishName)
	}

	dinner := cal.Days["2026-09-08"][models.MealLabelDinner]
	if dinner == nil {
		t.Fatal("expected dinner record on 2026-09-08")
	}
	if len(dinner.Items) != 1 {
		t.Fatalf("expected 1 dinner item, got %d", len(dinner.Items))
	}
	if *dinner.Items[0].Servings != 2 {
		t.Errorf("expected 2 servings, got %v", *dinner.Items[0].Servings)
	}
}

func TestBuildWeeklyCalendar_EmptySlotKeepsEmptyItems(t *testing.T) {
	weekStart := mustDate(t, "2026-09-07")
	planID := uuid.New()

	// Left-join artifact: the slot exists but has no items, so the item
	// columns come back null.
	rows := []models.MealPlanRow{{
		MealPlanID:    planID,
		PlanDate:      weekStart,
		MealLabel:     models.MealLabelLunch,
		PlanCreatedAt: weekStart,
	}}

	cal := BuildWeeklyCalendar(rows, weekStart)

	record := cal.Days["2026-09-07"][models.MealLabelLunch]
	if record == nil {
		t.Fatal("empty slot must still materialize a record")
	}
	if record.Items == nil {
		t.Fatal("empty slot items must be an empty slice, not nil")
	}
	if len(record.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(record.Items))
	}

	// And it must serialize as [] so the frontend sees the slot.
	raw, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `"items":[]`; !strings.Contains(string(raw), want) {
		t.Errorf("expected serialized record to contain %s, got %s", want, raw)
	}
}

func TestBuildWeeklyCalendar_NormalizesTimestampsToDateKeys(t *testing.T) {
	weekStart := mustDate(t, "2026-09-07")

	// Timestamps on the same calendar date must share a day key regardless
	// of time-of-day.
	morning := time.Date(2026, 9, 9, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, 9, 9, 21, 0, 0, 0, time.UTC)

	rows := []models.MealPlanRow{
		itemRow(uuid.New(), morning, models.MealLabelBreakfast, "Oatmeal Bowl", 1),
		itemRow(uuid.New(), evening, models.MealLabelDinner, "Chicken and Rice", 1),
	}

	cal := BuildWeeklyCalendar(rows, weekStart)

	if len(cal.Days) != 1 {
		t.Fatalf("expected a single day key, got %d", len(cal.Days))
	}
	day, ok := cal.Days["2026-09-09"]
	if !ok {
		t.Fatal("expected day key 2026-09-09")
	}
	if len(day) != 2 {
		t.Errorf("expected 2 meal records on the day, got %d", len(day))
	}
}

func TestBuildWeeklyCalendar_EmptyInput(t *testing.T) {
	cal := BuildWeeklyCalendar(nil, mustDate(t, "2026-09-07"))

	if cal.WeekStart != "2026-09-07" {
		t.Errorf("expected week_start 2026-09-07, got %s", cal.WeekStart)
	}
	if cal.Days == nil {
		t.Fatal("Days must be an empty map, not nil")
	}
	if len(cal.Days) != 0 {
		t.Errorf("expected no days, got %d", len(cal.Days))
	}
}
