package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-engine/pkg/models"
)

// UncategorizedLabel is the summary bucket for items without a category.
// Note the asymmetry with sorting, which treats a missing category as the
// empty string: both behaviors are part of the API contract and must not
// be unified.
const UncategorizedLabel = "Uncategorized"

// usageKey identifies one shopping-list line. Usages of the same ingredient
// in different units stay separate lines; quantities in incompatible units
// are never summed.
type usageKey struct {
	ingredientID uuid.UUID
	unitID       uuid.UUID
}

// AggregateShoppingList folds a week's ingredient-usage rows into a
// deduplicated shopping list. Each row contributes dishQuantity × servings
// to the total of its (ingredient, unit) line; the line's dish names are
// deduplicated in first-seen order. Items sort by category (missing sorts
// as empty string, i.e. first), then ingredient name.
//
// Rows must already be limited to [weekStart, weekEnd]; row order does not
// affect totals. Empty input yields an empty list, not an error.
//
// The sort compares strings byte-wise rather than with a collator. Exports
// pin the resulting order, and every consumer today shares it; switching to
// locale-aware collation (x/text) would change output for non-ASCII names
// and needs all consumers to move together.
func AggregateShoppingList(rows []models.IngredientUsageRow, weekStart, weekEnd time.Time) *models.ShoppingList {
	byKey := make(map[usageKey]*models.ShoppingListItem)
	seenDishes := make(map[usageKey]map[string]struct{})
	items := make([]*models.ShoppingListItem, 0, len(rows))

	for _, row := range rows {
		key := usageKey{ingredientID: row.IngredientID, unitID: row.UnitID}

		item, ok := byKey[key]
		if !ok {
			item = &models.ShoppingListItem{
				IngredientID:     row.IngredientID,
				IngredientName:   row.IngredientName,
				UnitID:           row.UnitID,
				UnitName:         row.UnitName,
				UnitAbbreviation: row.UnitAbbreviation,
				Category:         row.IngredientCategory,
				Dishes:           make([]string, 0, 1),
			}
			byKey[key] = item
			seenDishes[key] = make(map[string]struct{})
			items = append(items, item)
		}

		item.TotalQuantity += row.DishQuantity * row.Servings

		if _, dup := seenDishes[key][row.DishName]; !dup {
			seenDishes[key][row.DishName] = struct{}{}
			item.Dishes = append(item.Dishes, row.DishName)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := sortCategory(items[i]), sortCategory(items[j])
		if ci != cj {
			return ci < cj
		}
		return items[i].IngredientName < items[j].IngredientName
	})

	summary := make(map[string]int)
	for _, item := range items {
		label := UncategorizedLabel
		if item.Category != nil {
			label = *item.Category
		}
		summary[label]++
	}

	return &models.ShoppingList{
		WeekStart:         DateKey(weekStart),
		WeekEnd:           DateKey(weekEnd),
		Items:             items,
		SummaryByCategory: summary,
	}
}

// sortCategory is the ordering key for an item's category: missing
// categories compare as the empty string (before any non-empty category).
func sortCategory(item *models.ShoppingListItem) string {
	if item.Category == nil {
		return ""
	}
	return *item.Category
}
