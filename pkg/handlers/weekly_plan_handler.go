package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/services"
)

// WeeklyPlanHandler serves the nested weekly calendar view.
type WeeklyPlanHandler struct {
	planner services.PlannerService
	logger  *zap.Logger
}

// NewWeeklyPlanHandler creates a new weekly plan handler.
func NewWeeklyPlanHandler(planner services.PlannerService, logger *zap.Logger) *WeeklyPlanHandler {
	return &WeeklyPlanHandler{
		planner: planner,
		logger:  logger,
	}
}

// RegisterRoutes registers the weekly plan handler's routes on the given mux.
func (h *WeeklyPlanHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware) {
	mux.HandleFunc("GET /weekly-meal-plan", authMiddleware.RequireAuth(h.Get))
}

// Get handles GET /weekly-meal-plan?start_date=YYYY-MM-DD
// Returns the full 7-day calendar for the week starting at start_date. Days
// and meal slots with no entries appear in the response as empty objects, so
// the frontend can render the grid without filling gaps itself.
func (h *WeeklyPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	calendar, err := h.planner.WeeklyCalendar(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	response := ApiResponse{
		Success: true,
		Data:    map[string]any{"weekly_meal_plan": calendar},
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode weekly meal plan response", zap.Error(err))
	}
}
