package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
)

// Recognized export formats.
const (
	ExportFormatJSON = "json"
	ExportFormatText = "text"
)

// Export is a serialized shopping list ready for download.
type Export struct {
	Content     string
	ContentType string
	Filename    string
}

// FormatShoppingList serializes a shopping list for download. "json" is a
// pretty-printed full-fidelity serialization; "text" is one bullet line per
// item in list order under a header naming the week. Any other format fails
// with ErrInvalidFormat; nothing is silently substituted.
func FormatShoppingList(list *models.ShoppingList, format string) (*Export, error) {
	switch format {
	case ExportFormatJSON:
		content, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize shopping list: %w", err)
		}
		return &Export{
			Content:     string(content),
			ContentType: "application/json",
			Filename:    fmt.Sprintf("shopping-list-%s.json", list.WeekStart),
		}, nil

	case ExportFormatText:
		return &Export{
			Content:     formatShoppingListText(list),
			ContentType: "text/plain; charset=utf-8",
			Filename:    fmt.Sprintf("shopping-list-%s.txt", list.WeekStart),
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, format)
	}
}

func formatShoppingListText(list *models.ShoppingList) string {
	noun := "item"
	if len(list.Items) != 1 {
		noun = inflection.Plural(noun)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list for week of %s (%d %s)\n",
		list.WeekStart, len(list.Items), noun)

	for _, item := range list.Items {
		fmt.Fprintf(&b, "• %s %s %s (for %s)\n",
			formatQuantity(item.TotalQuantity),
			item.UnitAbbreviation,
			item.IngredientName,
			strings.Join(item.Dishes, ", "))
	}

	return b.String()
}

// formatQuantity renders a total without trailing zeros: whole numbers print
// bare ("300"), fractions keep their shortest exact representation ("2.5").
// Full precision is kept internally; rounding is a presentation concern only.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
