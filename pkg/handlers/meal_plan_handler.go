package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/jsonutil"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
)

// MealPlanRequest is the request body for creating a meal slot.
type MealPlanRequest struct {
	PlanDate  string `json:"plan_date"`
	MealLabel string `json:"meal_label"`
	Notes     string `json:"notes,omitempty"`
}

// MealItemRequest is the request body for adding or updating a meal item.
// Servings is a raw message because the frontend sometimes sends numeric
// fields as strings.
type MealItemRequest struct {
	DishID         uuid.UUID       `json:"dish_id"`
	Servings       json.RawMessage `json:"servings"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// MealPlanHandler handles meal slot and meal item HTTP requests.
type MealPlanHandler struct {
	mealPlans services.MealPlanService
	logger    *zap.Logger
}

// NewMealPlanHandler creates a new meal plan handler.
func NewMealPlanHandler(mealPlans services.MealPlanService, logger *zap.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlans: mealPlans,
		logger:    logger,
	}
}

// RegisterRoutes registers the meal plan handler's routes on the given mux.
func (h *MealPlanHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /meal-plans", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /meal-plans", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /meal-plans/{mid}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("DELETE /meal-plans/{mid}", authMiddleware.RequireAuth(h.Delete))
	mux.HandleFunc("POST /meal-plans/{mid}/items", authMiddleware.RequireAuth(h.AddItem))
	mux.HandleFunc("PUT /meal-plans/{mid}/items/{itid}", authMiddleware.RequireAuth(h.UpdateItem))
	mux.HandleFunc("DELETE /meal-plans/{mid}/items/{itid}", authMiddleware.RequireAuth(h.DeleteItem))
}

// List handles GET /meal-plans
// Returns the user's meal slots without items; the weekly calendar endpoint
// is the item-bearing view.
func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	plans, err := h.mealPlans.GetMealPlans(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"meal_plans": plans},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode meal plans response", zap.Error(err))
	}
}

// Create handles POST /meal-plans
// Creates an empty meal slot for a (date, meal label) pair. A duplicate slot
// for the same date and label is a conflict.
func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req MealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planDate, err := time.Parse("2006-01-02", req.PlanDate)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_date", "plan_date must be formatted YYYY-MM-DD"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	plan := &models.MealPlan{
		PlanDate:  planDate,
		MealLabel: req.MealLabel,
		Notes:     req.Notes,
	}
	if err := h.mealPlans.CreateMealPlan(r.Context(), userID, plan); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"meal_plan": plan},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode meal plan response", zap.Error(err))
	}
}

// Get handles GET /meal-plans/{mid}
func (h *MealPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planID, ok := ParseMealPlanID(w, r, h.logger)
	if !ok {
		return
	}

	plan, err := h.mealPlans.GetMealPlan(r.Context(), userID, planID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"meal_plan": plan},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode meal plan response", zap.Error(err))
	}
}

// Delete handles DELETE /meal-plans/{mid}
// Deleting a slot removes its items with it.
func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planID, ok := ParseMealPlanID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.mealPlans.DeleteMealPlan(r.Context(), userID, planID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Meal plan deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode meal plan response", zap.Error(err))
	}
}

// AddItem handles POST /meal-plans/{mid}/items
func (h *MealPlanHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planID, ok := ParseMealPlanID(w, r, h.logger)
	if !ok {
		return
	}

	item, ok := h.itemFromRequest(w, r, planID)
	if !ok {
		return
	}

	if err := h.mealPlans.AddMealItem(r.Context(), userID, item); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"meal_item": item},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode meal item response", zap.Error(err))
	}
}

// UpdateItem handles PUT /meal-plans/{mid}/items/{itid}
func (h *MealPlanHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planID, ok := ParseMealPlanID(w, r, h.logger)
	if !ok {
		return
	}

	itemID, ok := ParseMealItemID(w, r, h.logger)
	if !ok {
		return
	}

	item, ok := h.itemFromRequest(w, r, planID)
	if !ok {
		return
	}
	item.ID = itemID

	if err := h.mealPlans.UpdateMealItem(r.Context(), userID, item); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"meal_item": item},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode meal item response", zap.Error(err))
	}
}

// DeleteItem handles DELETE /meal-plans/{mid}/items/{itid}
func (h *MealPlanHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	planID, ok := ParseMealPlanID(w, r, h.logger)
	if !ok {
		return
	}

	itemID, ok := ParseMealItemID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.mealPlans.DeleteMealItem(r.Context(), userID, planID, itemID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Meal item deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode meal item response", zap.Error(err))
	}
}

func (h *MealPlanHandler) itemFromRequest(w http.ResponseWriter, r *http.Request, planID uuid.UUID) (*models.MealItem, bool) {
	var req MealItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	servings, err := jsonutil.FlexibleFloatValue(req.Servings)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_servings", "Servings must be numeric"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}

	return &models.MealItem{
		MealPlanID:     planID,
		DishID:         req.DishID,
		Servings:       servings,
		Customizations: req.Customizations,
		Notes:          req.Notes,
	}, true
}
