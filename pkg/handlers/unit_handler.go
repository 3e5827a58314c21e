package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
)

// UnitRequest is the request body for creating or updating a unit.
type UnitRequest struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// UnitHandler handles measurement unit HTTP requests.
type UnitHandler struct {
	units  services.UnitService
	logger *zap.Logger
}

// NewUnitHandler creates a new unit handler.
func NewUnitHandler(units services.UnitService, logger *zap.Logger) *UnitHandler {
	return &UnitHandler{
		units:  units,
		logger: logger,
	}
}

// RegisterRoutes registers the unit handler's routes on the given mux.
func (h *UnitHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /units", authMiddleware.RequireAuth(h.List))
	mux.HandleFunc("POST /units", authMiddleware.RequireAuth(h.Create))
	mux.HandleFunc("PUT /units/{uid}", authMiddleware.RequireAuth(h.Update))
	mux.HandleFunc("DELETE /units/{uid}", authMiddleware.RequireAuth(h.Delete))
}

// List handles GET /units
func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	units, err := h.units.GetUnits(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"units": units},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode units response", zap.Error(err))
	}
}

// Create handles POST /units
func (h *UnitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req UnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	unit := &models.Unit{Name: req.Name, Abbreviation: req.Abbreviation}
	if err := h.units.CreateUnit(r.Context(), userID, unit); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"unit": unit},
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode unit response", zap.Error(err))
	}
}

// Update handles PUT /units/{uid}
func (h *UnitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	unitID, ok := ParseUnitID(w, r, h.logger)
	if !ok {
		return
	}

	var req UnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	unit := &models.Unit{ID: unitID, Name: req.Name, Abbreviation: req.Abbreviation}
	if err := h.units.UpdateUnit(r.Context(), userID, unit); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"unit": unit},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode unit response", zap.Error(err))
	}
}

// Delete handles DELETE /units/{uid}
func (h *UnitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	unitID, ok := ParseUnitID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.units.DeleteUnit(r.Context(), userID, unitID); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Message: "Unit deleted",
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode unit response", zap.Error(err))
	}
}
