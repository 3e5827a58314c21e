package services

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
)

func exportList() *models.ShoppingList {
	grain := "grain"
	return &models.ShoppingList{
		WeekStart: "2026-09-07",
		WeekEnd:   "2026-09-13",
		Items: []*models.ShoppingListItem{
			{
				IngredientID:     uuid.New(),
				IngredientName:   "Oatmeal",
				TotalQuantity:    300,
				UnitID:           uuid.New(),
				UnitName:         "gram",
				UnitAbbreviation: "g",
				Category:         &grain,
				Dishes:           []string{"Oatmeal Bowl", "Porridge"},
			},
			{
				IngredientID:     uuid.New(),
				IngredientName:   "Milk",
				TotalQuantity:    2.5,
				UnitID:           uuid.New(),
				UnitName:         "cup",
				UnitAbbreviation: "cup",
				Dishes:           []string{"Smoothie"},
			},
		},
		SummaryByCategory: map[string]int{"grain": 1, UncategorizedLabel: 1},
	}
}

func TestFormatShoppingList_JSON(t *testing.T) {
	export, err := FormatShoppingList(exportList(), ExportFormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "application/json", export.ContentType)
	assert.Equal(t, "shopping-list-2026-09-07.json", export.Filename)

	// Full fidelity: the serialized list decodes back to the same shape.
	var decoded models.ShoppingList
	require.NoError(t, json.Unmarshal([]byte(export.Content), &decoded))
	assert.Equal(t, "2026-09-07", decoded.WeekStart)
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, 300.0, decoded.Items[0].TotalQuantity)
	assert.Equal(t, map[string]int{"grain": 1, UncategorizedLabel: 1}, decoded.SummaryByCategory)
}

func TestFormatShoppingList_Text(t *testing.T) {
	export, err := FormatShoppingList(exportList(), ExportFormatText)
	require.NoError(t, err)

	assert.Equal(t, "text/plain; charset=utf-8", export.ContentType)
	assert.Equal(t, "shopping-list-2026-09-07.txt", export.Filename)

	want := "Shopping list for week of 2026-09-07 (2 items)\n" +
		"• 300 g Oatmeal (for Oatmeal Bowl, Porridge)\n" +
		"• 2.5 cup Milk (for Smoothie)\n"
	assert.Equal(t, want, export.Content)
}

func TestFormatShoppingList_TextSingularHeader(t *testing.T) {
	list := exportList()
	list.Items = list.Items[:1]

	export, err := FormatShoppingList(list, ExportFormatText)
	require.NoError(t, err)

	assert.Contains(t, export.Content, "(1 item)\n")
	assert.NotContains(t, export.Content, "1 items")
}

func TestFormatShoppingList_TextEmptyList(t *testing.T) {
	list := &models.ShoppingList{
		WeekStart:         "2026-09-07",
		WeekEnd:           "2026-09-13",
		Items:             []*models.ShoppingListItem{},
		SummaryByCategory: map[string]int{},
	}

	export, err := FormatShoppingList(list, ExportFormatText)
	require.NoError(t, err)

	assert.Equal(t, "Shopping list for week of 2026-09-07 (0 items)\n", export.Content)
}

func TestFormatShoppingList_UnknownFormat(t *testing.T) {
	for _, format := range []string{"", "csv", "JSON", "pdf"} {
		_, err := FormatShoppingList(exportList(), format)
		require.Error(t, err, "format %q", format)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidFormat), "format %q", format)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := map[float64]string{
		300:    "300",
		2.5:    "2.5",
		0.125:  "0.125",
		1:      "1",
		100.50: "100.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatQuantity(in))
	}
}
