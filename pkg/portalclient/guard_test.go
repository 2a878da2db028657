package portalclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// authServer возвращает сервер, восстанавливающий сессию с заданной ролью.
func authServer(t *testing.T, role string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/refresh" {
			t.Errorf("путь = %q, ожидается /api/v1/auth/refresh", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "refresh",
			"expires_at":    time.Now().Add(15 * time.Minute).Format(time.RFC3339),
			"email":         "user@rex360.ng",
			"role":          role,
		})
	}))
	t.Cleanup(server.Close)
	return server
}

// TestGuardAllow — таблица решений допуска к страницам back-office.
func TestGuardAllow(t *testing.T) {
	tests := []struct {
		name         string
		role         string // пустая роль — сессии нет
		requireAdmin bool
		want         Decision
	}{
		{"аноним на защищённую страницу", "", false, DecisionRedirect},
		{"аноним на админскую страницу", "", true, DecisionRedirect},
		{"client на защищённую страницу", "client", false, DecisionRender},
		{"client на админскую страницу", "client", true, DecisionRedirect},
		{"admin на защищённую страницу", "admin", false, DecisionRender},
		{"admin на админскую страницу", "admin", true, DecisionRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			opts = append(opts, WithLogger(testLogger()))
			var baseURL string
			if tt.role != "" {
				server := authServer(t, tt.role)
				baseURL = server.URL
				opts = append(opts, WithStoredRefreshToken("stored"))
			} else {
				baseURL = "http://localhost"
			}

			client := New(baseURL, opts...)
			guard := NewGuard(client)

			got := guard.Allow(context.Background(), tt.requireAdmin)
			if got != tt.want {
				t.Errorf("Allow(requireAdmin=%v) = %v, ожидается %v", tt.requireAdmin, got, tt.want)
			}
		})
	}
}

// TestGuardAllow_ResolvesBeforeDecision — до решения состояние сессии
// разрешается блокирующе, без мелькания страницы.
func TestGuardAllow_ResolvesBeforeDecision(t *testing.T) {
	server := authServer(t, "admin")
	client := New(server.URL,
		WithLogger(testLogger()),
		WithStoredRefreshToken("stored"),
	)
	guard := NewGuard(client)

	if client.Resolved() {
		t.Fatal("сессия разрешена до первого Allow")
	}
	if got := guard.Allow(context.Background(), true); got != DecisionRender {
		t.Errorf("Allow() = %v, ожидается DecisionRender", got)
	}
	if !client.Resolved() {
		t.Error("Allow() не разрешил состояние сессии")
	}
}
