package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
	"github.com/platewise/platewise-engine/pkg/validate"
)

// IngredientRequest is the request body for creating or updating an ingredient.
type IngredientRequest struct {
	Name       string     `json:"name"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// IngredientHandler handles ingredient HTTP requests.
type IngredientHandler struct {
	ingredients services.IngredientService
	logger      *zap.Logger
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredients services.IngredientService, logger *zap.Logger) *IngredientHandler {
	return &IngredientHandler{
		ingredients: ingredients,
		logger:      logger,
	}
}

// RegisterRoutes registers the ingredient handler's routes on the given mux.
func (h *IngredientHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /ingredients", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /ingredients", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("GET /ingredients/{iid}", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("PUT /ingredients/{iid}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /ingredients/{iid}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /ingredients?search=
// The optional search term filters by name, case-insensitive substring match.
func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
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

	ingredients, err := h.ingredients.GetIngredients(r.Context(), userID, search)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"ingredients": ingredients},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ingredients response", zap.Error(err))
	}
}

// Get handles GET /ingredients/{iid}
func (h *IngredientHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ingredientID, ok := ParseIngredientID(w, r, h.logger)
	if !ok {
		return
	}

	ingredient, err := h.ingredients.GetIngredient(r.Context(), userID, ingredientID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"ingredient": ingredient},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ingredient response", zap.Error(err))
	}
}

// Create handles POST /ingredients
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req IngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ingredient := &models.Ingredient{Name: req.Name, CategoryID: req.CategoryID}
	if err := h.ingredients.CreateIngredient(r.Context(), userID, ingredient); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"ingredient": ingredient},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode ingredient response", zap.Error(err))
	}
}

// Update handles PUT /ingredients/{iid}
func (h *IngredientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ingredientID, ok := ParseIngredientID(w, r, h.logger)
	if !ok {
		return
	}

	var req IngredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ingredient := &models.Ingredient{ID: ingredientID, Name: req.Name, CategoryID: req.CategoryID}
	if err := h.ingredients.UpdateIngredient(r.Context(), userID, ingredient); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"ingredient": ingredient},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ingredient response", zap.Error(err))
	}
}

// Delete handles DELETE /ingredients/{iid}
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	ingredientID, ok := ParseIngredientID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.ingredients.DeleteIngredient(r.Context(), userID, ingredientID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Ingredient deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ingredient response", zap.Error(err))
	}
}
