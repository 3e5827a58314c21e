package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
)

// CategoryRequest is the request body for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryHandler handles ingredient category HTTP requests.
type CategoryHandler struct {
	categories services.CategoryService
	logger     *zap.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categories services.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		logger:     logger,
	}
}

// RegisterRoutes registers the category handler's routes on the given mux.
func (h *CategoryHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /categories", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /categories", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /categories/{cid}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /categories/{cid}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	categories, err := h.categories.GetCategories(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"categories": categories},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode categories response", zap.Error(err))
	}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	category := &models.Category{Name: req.Name}
	if err := h.categories.CreateCategory(r.Context(), userID, category); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"category": category},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode category response", zap.Error(err))
	}
}

// Update handles PUT /categories/{cid}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	categoryID, ok := ParseCategoryID(w, r, h.logger)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	category := &models.Category{ID: categoryID, Name: req.Name}
	if err := h.categories.UpdateCategory(r.Context(), userID, category); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"category": category},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode category response", zap.Error(err))
	}
}

// Delete handles DELETE /categories/{cid}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	categoryID, ok := ParseCategoryID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), userID, categoryID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Category deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode category response", zap.Error(err))
	}
}
