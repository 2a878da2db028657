package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/api/middleware"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestPaginationDefaults — нормализация параметров пагинации.
func TestPaginationDefaults(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name       string
		limit      *int
		offset     *int
		wantLimit  int
		wantOffset int
	}{
		{"nil параметры", nil, nil, 100, 0},
		{"обычные значения", intPtr(20), intPtr(40), 20, 40},
		{"limit ниже минимума", intPtr(0), nil, 1, 0},
		{"limit выше максимума", intPtr(5000), nil, 1000, 0},
		{"отрицательный offset", nil, intPtr(-5), 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := paginationDefaults(tt.limit, tt.offset)
			if limit != tt.wantLimit {
				t.Errorf("limit = %d, хотели %d", limit, tt.wantLimit)
			}
			if offset != tt.wantOffset {
				t.Errorf("offset = %d, хотели %d", offset, tt.wantOffset)
			}
		})
	}
}

// TestRequireAdmin — таблица решений доступа к административным
// endpoint'ам: аноним — 401, client — 403, admin проходит.
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		claims     *middleware.AuthClaims
		wantStatus int
		wantPass   bool
	}{
		{"аноним получает 401", nil, http.StatusUnauthorized, false},
		{"client получает 403", &middleware.AuthClaims{Subject: "c", Role: "client"}, http.StatusForbidden, false},
		{"admin проходит", &middleware.AuthClaims{Subject: "a", Role: "admin"}, http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.claims != nil {
				ctx = context.WithValue(ctx, middleware.ContextKeyClaims, tt.claims)
			}
			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil).WithContext(ctx)
			rec := httptest.NewRecorder()

			got := requireAdmin(rec, req)
			if tt.wantPass {
				if got == nil {
					t.Fatal("requireAdmin() вернул nil для admin")
				}
				return
			}
			if got != nil {
				t.Fatalf("requireAdmin() = %+v, ожидается nil", got)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("статус = %d, хотели %d", rec.Code, tt.wantStatus)
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("декодирование тела ошибки: %v", err)
			}
			wantCode := "FORBIDDEN"
			if tt.wantStatus == http.StatusUnauthorized {
				wantCode = "UNAUTHORIZED"
			}
			if body.Error.Code != wantCode {
				t.Errorf("code = %q, хотели %q", body.Error.Code, wantCode)
			}
		})
	}
}

// TestUpdateServicePricing_AnonymousUnauthorized — административный
// endpoint без сессии отвечает 401, а не 403.
func TestUpdateServicePricing_AnonymousUnauthorized(t *testing.T) {
	h := &APIHandler{logger: testLogger()}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/services/company", nil)
	rec := httptest.NewRecorder()

	h.UpdateServicePricing(rec, req, "company")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("статус = %d, хотели 401", rec.Code)
	}
}

// TestTrackApplications_ParamValidation — ровно один из параметров
// email и reference обязателен.
func TestTrackApplications_ParamValidation(t *testing.T) {
	strPtr := func(v string) *string { return &v }

	tests := []struct {
		name   string
		params generated.TrackApplicationsParams
	}{
		{"оба параметра", generated.TrackApplicationsParams{
			Email:     strPtr("ada@test.com"),
			Reference: strPtr("ref-1"),
		}},
		{"ни одного параметра", generated.TrackApplicationsParams{}},
		{"пустые строки", generated.TrackApplicationsParams{
			Email:     strPtr(""),
			Reference: strPtr(""),
		}},
	}

	h := &APIHandler{logger: testLogger()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/track", nil)
			rec := httptest.NewRecorder()

			h.TrackApplications(rec, req, tt.params)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("статус = %d, хотели 400", rec.Code)
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("декодирование тела ошибки: %v", err)
			}
			if body.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, хотели VALIDATION_ERROR", body.Error.Code)
			}
		})
	}
}
