package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/jsonutil"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
	"github.com/platewise/platewise-engine/pkg/validate"
)

// DishIngredientRequest is one ingredient line in a dish request. Quantity is
// a raw message because the frontend sometimes sends numeric fields as
// strings.
type DishIngredientRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     json.RawMessage `json:"quantity"`
	UnitID       uuid.UUID       `json:"unit_id"`
}

// DishRequest is the request body for creating or updating a dish.
type DishRequest struct {
	Name                   string                  `json:"name"`
	Description            string                  `json:"description,omitempty"`
	BaseCalories           *int                    `json:"base_calories,omitempty"`
	PreparationTimeMinutes *int                    `json:"preparation_time_minutes,omitempty"`
	Ingredients            []DishIngredientRequest `json:"ingredients,omitempty"`
}

// DishHandler handles dish HTTP requests.
type DishHandler struct {
	dishes services.DishService
	logger *zap.Logger
}

// NewDishHandler creates a new dish handler.
func NewDishHandler(dishes services.DishService, logger *zap.Logger) *DishHandler {
	return &DishHandler{
		dishes: dishes,
		logger: logger,
	}
}

// RegisterRoutes registers the dish handler's routes on the given mux.
func (h *DishHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /dishes", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /dishes", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /dishes/{did}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /dishes/{did}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /dishes/{did}", authMiddleware.RequireAuth(h.Delete))
}

// dishFromRequest converts a request body into a model, normalizing quantity
// values that arrive as JSON strings.
func (h *DishHandler) dishFromRequest(w http.ResponseWriter, req *DishRequest) (*models.Dish, bool) {
	dish := &models.Dish{
		Name:                   req.Name,
		Description:            req.Description,
		BaseCalories:           req.BaseCalories,
		PreparationTimeMinutes: req.PreparationTimeMinutes,
		Ingredients:            make([]models.DishIngredient, 0, len(req.Ingredients)),
	}

	for _, line := range req.Ingredients {
		quantity, err := jsonutil.FlexibleFloatValue(line.Quantity)
		if err != nil {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_quantity", "Ingredient quantity must be numeric"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return nil, false
		}
		dish.Ingredients = append(dish.Ingredients, models.DishIngredient{
			IngredientID: line.IngredientID,
			Quantity:     quantity,
			UnitID:       line.UnitID,
		})
	}

	return dish, true
}

// List handles GET /dishes?search=
func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	search := r.URL.Query().Get("search")
	if result := validate.CheckSearchTerm("search", search); result != nil {
		h.logger.Warn("Rejected search term",
			zap.String("param", result.ParamName),
			zap.String("fingerprint", result.Fingerprint))
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_search", "Search term contains disallowed characters"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dishes, err := h.dishes.GetDishes(r.Context(), userID, search)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"dishes": dishes},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode dishes response", zap.Error(err))
	}
}

// Get handles GET /dishes/{did}
// Returns the dish with its full ingredient lines.
func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dishID, ok := ParseDishID(w, r, h.logger)
	if !ok {
		return
	}

	dish, err := h.dishes.GetDish(r.Context(), userID, dishID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"dish": dish},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode dish response", zap.Error(err))
	}
}

// Create handles POST /dishes
func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dish, ok := h.dishFromRequest(w, &req)
	if !ok {
		return
	}

	if err := h.dishes.CreateDish(r.Context(), userID, dish); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"dish": dish},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode dish response", zap.Error(err))
	}
}

// Update handles PUT /dishes/{did}
// Replaces the dish's fields and its entire ingredient line set.
func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dishID, ok := ParseDishID(w, r, h.logger)
	if !ok {
		return
	}

	var req DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dish, ok := h.dishFromRequest(w, &req)
	if !ok {
		return
	}
	dish.ID = dishID

	if err := h.dishes.UpdateDish(r.Context(), userID, dish); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"dish": dish},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode dish response", zap.Error(err))
	}
}

// Delete handles DELETE /dishes/{did}
func (h *DishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	dishID, ok := ParseDishID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.dishes.DeleteDish(r.Context(), userID, dishID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Dish deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode dish response", zap.Error(err))
	}
}
