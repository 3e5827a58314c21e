package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// startDatePattern is the required shape of the start_date query parameter.
var startDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseStartDate extracts and validates the start_date query parameter.
// Returns the parsed date and true on success, or the zero time and false
// on error (after writing an error response). Absence and malformation are
// distinct client errors.
func ParseStartDate(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (time.Time, bool) {
	raw := r.URL.Query().Get("start_date")
	if raw == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_parameter", "start_date query parameter is required"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return time.Time{}, false
	}

	if !startDatePattern.MatchString(raw) {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_date", "start_date must be formatted YYYY-MM-DD"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_date", "start_date is not a valid calendar date"); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return time.Time{}, false
	}

	return date, true
}

// ParseCategoryID extracts and validates the category ID from the request path.
// Expects path parameter: cid
func ParseCategoryID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "cid", "invalid_category_id", "Invalid category ID format", logger)
}

// ParseUnitID extracts and validates the unit ID from the request path.
// Expects path parameter: uid
func ParseUnitID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "uid", "invalid_unit_id", "Invalid unit ID format", logger)
}

// ParseIngredientID extracts and validates the ingredient ID from the request path.
// Expects path parameter: iid
func ParseIngredientID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "iid", "invalid_ingredient_id", "Invalid ingredient ID format", logger)
}

// ParseDishID extracts and validates the dish ID from the request path.
// Expects path parameter: did
func ParseDishID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "did", "invalid_dish_id", "Invalid dish ID format", logger)
}

// ParseMealPlanID extracts and validates the meal plan ID from the request path.
// Expects path parameter: mid
func ParseMealPlanID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "mid", "invalid_meal_plan_id", "Invalid meal plan ID format", logger)
}

// ParseMealItemID extracts and validates the meal item ID from the request path.
// Expects path parameter: itid
func ParseMealItemID(w http.ResponseWriter, r *http.Request, logger *zap.Logger) (uuid.UUID, bool) {
	return parseUUID(w, r, "itid", "invalid_meal_item_id", "Invalid meal item ID format", logger)
}

// parseUUID is the internal helper that does the actual parsing work.
func parseUUID(w http.ResponseWriter, r *http.Request, pathParam, errorCode, errorMessage string, logger *zap.Logger) (uuid.UUID, bool) {
	idStr := r.PathValue(pathParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, errorMessage); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return id, true
}
