package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/auth"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
)

// authedRequest attaches JWT claims for userID, mirroring what the auth
// middleware does after validating a token.
func authedRequest(r *http.Request, userID uuid.UUID) *http.Request {
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	}
	ctx := context.WithValue(r.Context(), auth.ClaimsKey, claims)
	return r.WithContext(ctx)
}

type mockPlannerService struct {
	calendar *models.WeeklyCalendar
	err      error

	gotUserID    uuid.UUID
	gotWeekStart time.Time
}

var _ services.PlannerService = (*mockPlannerService)(nil)

func (m *mockPlannerService) WeeklyCalendar(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.WeeklyCalendar, error) {
	m.gotUserID, m.gotWeekStart = userID, weekStart
	return m.calendar, m.err
}

func TestWeeklyPlanHandler_Get(t *testing.T) {
	userID := uuid.New()
	svc := &mockPlannerService{
		calendar: &models.WeeklyCalendar{
			WeekStart: "2026-09-07",
			Days:      map[string]map[string]*models.MealRecord{},
		},
	}
	handler := NewWeeklyPlanHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/weekly-meal-plan?start_date=2026-09-07", nil), userID)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.gotUserID)
	assert.Equal(t, "2026-09-07", svc.gotWeekStart.Format("2006-01-02"))

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			WeeklyMealPlan models.WeeklyCalendar `json:"weekly_meal_plan"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)
	assert.Equal(t, "2026-09-07", response.Data.WeeklyMealPlan.WeekStart)
}

func TestWeeklyPlanHandler_Get_MissingStartDate(t *testing.T) {
	handler := NewWeeklyPlanHandler(&mockPlannerService{}, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/weekly-meal-plan", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "missing_parameter", body["error"])
}

func TestWeeklyPlanHandler_Get_MalformedStartDate(t *testing.T) {
	handler := NewWeeklyPlanHandler(&mockPlannerService{}, zap.NewNop())

	for _, raw := range []string{"09-07-2026", "2026/09/07", "2026-9-7", "2026-13-40", "not-a-date"} {
		req := authedRequest(httptest.NewRequest(http.MethodGet, "/weekly-meal-plan?start_date="+raw, nil), uuid.New())
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "start_date=%q", raw)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "invalid_date", body["error"], "start_date=%q", raw)
	}
}

func TestWeeklyPlanHandler_Get_FetchFailure(t *testing.T) {
	svc := &mockPlannerService{err: errors.New("connection reset")}
	handler := NewWeeklyPlanHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/weekly-meal-plan?start_date=2026-09-07", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body["error"])
	// The raw database error never reaches the client.
	assert.NotContains(t, body["message"], "connection reset")
}

func TestWeeklyPlanHandler_Get_Unauthenticated(t *testing.T) {
	handler := NewWeeklyPlanHandler(&mockPlannerService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/weekly-meal-plan?start_date=2026-09-07", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
