package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platewise/platewise-engine/pkg/apperrors"
	"github.com/platewise/platewise-engine/pkg/models"
	"github.com/platewise/platewise-engine/pkg/services"
)

type mockShoppingListService struct {
	list *models.ShoppingList
	err  error

	gotFormat string
}

var _ services.ShoppingListService = (*mockShoppingListService)(nil)

func (m *mockShoppingListService) ShoppingList(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*models.ShoppingList, error) {
	return m.list, m.err
}

func (m *mockShoppingListService) Export(ctx context.Context, userID uuid.UUID, weekStart time.Time, format string) (*services.Export, error) {
	m.gotFormat = format
	if m.err != nil {
		return nil, m.err
	}
	return services.FormatShoppingList(m.list, format)
}

func testShoppingList() *models.ShoppingList {
	grain := "grain"
	return &models.ShoppingList{
		WeekStart: "2026-09-07",
		WeekEnd:   "2026-09-13",
		Items: []*models.ShoppingListItem{{
			IngredientID:     uuid.New(),
			IngredientName:   "Oatmeal",
			TotalQuantity:    300,
			UnitID:           uuid.New(),
			UnitName:         "gram",
			UnitAbbreviation: "g",
			Category:         &grain,
			Dishes:           []string{"Oatmeal Bowl"},
		}},
		SummaryByCategory: map[string]int{"grain": 1},
	}
}

func TestShoppingListHandler_Get(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/shopping-list?start_date=2026-09-07", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			ShoppingList models.ShoppingList `json:"shopping_list"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.True(t, response.Success)
	require.Len(t, response.Data.ShoppingList.Items, 1)
	assert.Equal(t, 300.0, response.Data.ShoppingList.Items[0].TotalQuantity)
}

func TestShoppingListHandler_Get_MissingStartDate(t *testing.T) {
	handler := NewShoppingListHandler(&mockShoppingListService{}, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/shopping-list", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "missing_parameter", body["error"])
}

func TestShoppingListHandler_Get_FetchFailure(t *testing.T) {
	svc := &mockShoppingListService{err: errors.New("boom")}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/shopping-list?start_date=2026-09-07", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestShoppingListHandler_Export_JSON(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=2026-09-07&export_format=json", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("attachment; filename=%q", "shopping-list-2026-09-07.json"),
		rec.Header().Get("Content-Disposition"))

	var decoded models.ShoppingList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "2026-09-07", decoded.WeekStart)
}

func TestShoppingListHandler_Export_Text(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=2026-09-07&export_format=text", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("attachment; filename=%q", "shopping-list-2026-09-07.txt"),
		rec.Header().Get("Content-Disposition"))

	want := "Shopping list for week of 2026-09-07 (1 item)\n" +
		"• 300 g Oatmeal (for Oatmeal Bowl)\n"
	assert.Equal(t, want, rec.Body.String())
}

func TestShoppingListHandler_Export_MissingFormatRejected(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=2026-09-07", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "invalid_format", body["error"])
	assert.Equal(t, "", svc.gotFormat, "the empty format must reach the service unmodified")
}

func TestShoppingListHandler_Export_InvalidFormat(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=2026-09-07&export_format=csv", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "invalid_format", body["error"])
}

func TestShoppingListHandler_Export_InvalidDateRunsNoExport(t *testing.T) {
	svc := &mockShoppingListService{list: testShoppingList()}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=garbage&export_format=json", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.gotFormat, "export must not run with an invalid date")
}

// ErrInvalidFormat surfaces as a 400 even when raised inside the service.
func TestShoppingListHandler_Export_ServiceInvalidFormatError(t *testing.T) {
	svc := &mockShoppingListService{err: fmt.Errorf("%w: %q", apperrors.ErrInvalidFormat, "pdf")}
	handler := NewShoppingListHandler(svc, zap.NewNop())

	req := authedRequest(httptest.NewRequest(http.MethodPost,
		"/shopping-list?start_date=2026-09-07&export_format=pdf", nil), uuid.New())
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
