package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestParseStartDate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantOK    bool
		wantError string
	}{
		{name: "valid", query: "?start_date=2026-09-07", wantOK: true},
		{name: "missing", query: "", wantError: "missing_parameter"},
		{name: "empty", query: "?start_date=", wantError: "missing_parameter"},
		{name: "wrong separator", query: "?start_date=2026/09/07", wantError: "invalid_date"},
		{name: "short fields", query: "?start_date=2026-9-7", wantError: "invalid_date"},
		{name: "shape ok but impossible date", query: "?start_date=2026-02-30", wantError: "invalid_date"},
		{name: "trailing garbage", query: "?start_date=2026-09-07x", wantError: "invalid_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/weekly-meal-plan"+tt.query, nil)
			rec := httptest.NewRecorder()

			date, ok := ParseStartDate(rec, req, zap.NewNop())

			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				if got := date.Format("2006-01-02"); got != "2026-09-07" {
					t.Errorf("parsed %s", got)
				}
				return
			}

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if body := rec.Body.String(); !containsErrorCode(body, tt.wantError) {
				t.Errorf("expected error code %q in body %s", tt.wantError, body)
			}
		})
	}
}

// body is a small flat JSON object; substring match is enough here.
func containsErrorCode(body, code string) bool {
	return strings.Contains(body, `"error":"`+code+`"`)
}
