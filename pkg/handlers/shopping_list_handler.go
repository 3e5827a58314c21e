package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/services"
)

// ShoppingListHandler serves the aggregated weekly shopping list and its
// downloadable exports.
type ShoppingListHandler struct {
	shoppingLists services.ShoppingListService
	logger        *zap.Logger
}

// NewShoppingListHandler creates a new shopping list handler.
func NewShoppingListHandler(shoppingLists services.ShoppingListService, logger *zap.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{
		shoppingLists: shoppingLists,
		logger:        logger,
	}
}

// RegisterRoutes registers the shopping list handler's routes on the given mux.
func (h *ShoppingListHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /shopping-list", authMiddleware.RequireAuth(h.Get))
	mux.HandleFunc("POST /shopping-list", authMiddleware.RequireAuth(h.Export))
}

// Get handles GET /shopping-list?start_date=YYYY-MM-DD
// Aggregates the week's ingredient usage into a deduplicated, sorted list.
func (h *ShoppingListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	weekStart, ok := ParseStartDate(w, r, h.logger)
	if !ok {
		return
	}

	list, err := h.shoppingLists.ShoppingList(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"shopping_list": list},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode shopping list response", zap.Error(err))
	}
}

// Export handles POST /shopping-list?start_date=YYYY-MM-DD&export_format={json|text}
// Re-runs the aggregation and streams the serialized list as a file download.
func (h *ShoppingListHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	weekStart, ok := ParseStartDate(w, r, h.logger)
	if !ok {
		return
	}

	// No fallback format: an absent or empty export_format goes to the
	// service as-is and comes back as invalid_format.
	format := r.URL.Query().Get("export_format")

	export, err := h.shoppingLists.Export(r.Context(), userID, weekStart, format)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(export.Content)); err != nil {
		h.logger.Error("Failed to write shopping list export", zap.Error(err))
	}
}
