package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubChecker — фиксированный результат проверки готовности.
type stubChecker struct {
	status  string
	message string
}

func (c *stubChecker) CheckReady() (string, string) { return c.status, c.message }

// TestHealthLive — liveness probe всегда отвечает 200 ok.
func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	h.HealthLive(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("статус = %d, хотели 200", rec.Code)
	}
	var body healthLiveResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("декодирование ответа: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, хотели ok", body.Status)
	}
	if body.Service != "portal-module" {
		t.Errorf("service = %q, хотели portal-module", body.Service)
	}
}

// TestHealthReady — readiness probe по состоянию PostgreSQL и Redis.
func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		pg         ReadinessChecker
		redis      ReadinessChecker
		wantCode   int
		wantStatus string
	}{
		{"обе зависимости ok",
			&stubChecker{status: "ok"}, &stubChecker{status: "ok"},
			http.StatusOK, "ok"},
		{"redis degraded",
			&stubChecker{status: "ok"}, &stubChecker{status: "degraded", message: "высокая задержка"},
			http.StatusOK, "degraded"},
		{"postgresql fail",
			&stubChecker{status: "fail", message: "нет подключения"}, &stubChecker{status: "ok"},
			http.StatusServiceUnavailable, "fail"},
		{"зависимости не инициализированы",
			nil, nil,
			http.StatusServiceUnavailable, "fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.pg, tt.redis)

			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()
			h.HealthReady(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("статус = %d, хотели %d", rec.Code, tt.wantCode)
			}
			var body healthReadyResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("декодирование ответа: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, хотели %q", body.Status, tt.wantStatus)
			}
		})
	}
}

// TestOverallStatus — свёртка статусов зависимостей.
func TestOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"все ok", []string{"ok", "ok"}, "ok"},
		{"есть degraded", []string{"ok", "degraded"}, "degraded"},
		{"есть fail", []string{"degraded", "fail"}, "fail"},
		{"без статусов", nil, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallStatus(tt.statuses...); got != tt.want {
				t.Errorf("overallStatus(%v) = %q, хотели %q", tt.statuses, got, tt.want)
			}
		})
	}
}
