package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestInitialize_Success — успешная инициализация транзакции.
func TestInitialize_Success(t *testing.T) {
	var gotAuth string
	var gotBody initializeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("декодирование тела запроса: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         "ref-001",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test_secret", nil, testLogger())

	result, err := client.Initialize(context.Background(), "buyer@test.com", 5500000, "ref-001",
		map[string]string{"service_id": "ltd-registration"})
	if err != nil {
		t.Fatalf("Initialize() вернул ошибку: %v", err)
	}

	if gotAuth != "Bearer sk_test_secret" {
		t.Errorf("Authorization = %q, ожидается Bearer sk_test_secret", gotAuth)
	}
	if gotBody.Email != "buyer@test.com" {
		t.Errorf("email = %q, ожидается buyer@test.com", gotBody.Email)
	}
	if gotBody.Amount != 5500000 {
		t.Errorf("amount = %d, ожидается 5500000", gotBody.Amount)
	}
	if gotBody.Currency != "NGN" {
		t.Errorf("currency = %q, ожидается NGN", gotBody.Currency)
	}
	if gotBody.Metadata["service_id"] != "ltd-registration" {
		t.Errorf("metadata = %v, ожидается service_id=ltd-registration", gotBody.Metadata)
	}
	if result.Reference != "ref-001" {
		t.Errorf("Reference = %q, ожидается ref-001", result.Reference)
	}
	if result.AccessCode != "abc123" {
		t.Errorf("AccessCode = %q, ожидается abc123", result.AccessCode)
	}
	if result.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Errorf("AuthorizationURL = %q", result.AuthorizationURL)
	}
}

// TestInitialize_APIFailure — status=false в конверте ответа.
func TestInitialize_APIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Invalid key",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_bad", nil, testLogger())

	_, err := client.Initialize(context.Background(), "buyer@test.com", 100, "", nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("ожидалась ErrUnavailable, получено %v", err)
	}
}

// TestInitialize_ServerError — 5xx от провайдера.
func TestInitialize_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test", nil, testLogger())

	_, err := client.Initialize(context.Background(), "buyer@test.com", 100, "", nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("ожидалась ErrUnavailable, получено %v", err)
	}
}

// TestVerify_Success — верификация успешного платежа.
func TestVerify_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/transaction/verify/ref-001" {
			t.Errorf("неожиданный запрос: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "success",
				"reference":        "ref-001",
				"amount":           5500000,
				"currency":         "NGN",
				"gateway_response": "Successful",
				"paid_at":          "2026-08-29T10:00:00.000Z",
				"channel":          "card",
				"customer": map[string]any{
					"email": "buyer@test.com",
				},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test", nil, testLogger())

	result, err := client.Verify(context.Background(), "ref-001")
	if err != nil {
		t.Fatalf("Verify() вернул ошибку: %v", err)
	}
	if !result.Succeeded() {
		t.Errorf("Succeeded() = false при status=%q", result.Status)
	}
	if result.Amount != 5500000 {
		t.Errorf("Amount = %d, ожидается 5500000", result.Amount)
	}
	if result.Customer.Email != "buyer@test.com" {
		t.Errorf("Customer.Email = %q, ожидается buyer@test.com", result.Customer.Email)
	}
}

// TestVerify_FailedPayment — неуспешный платёж возвращается без ошибки.
func TestVerify_FailedPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":           "failed",
				"reference":        "ref-002",
				"amount":           100,
				"currency":         "NGN",
				"gateway_response": "Declined",
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test", nil, testLogger())

	result, err := client.Verify(context.Background(), "ref-002")
	if err != nil {
		t.Fatalf("Verify() вернул ошибку: %v", err)
	}
	if result.Succeeded() {
		t.Error("Succeeded() = true при status=failed")
	}
}

// TestVerify_NotFound — неизвестный референс.
func TestVerify_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test", nil, testLogger())

	_, err := client.Verify(context.Background(), "ref-missing")
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("ожидалась ErrTransactionNotFound, получено %v", err)
	}
}

// TestVerify_EnvelopeFailure — status=false при верификации.
func TestVerify_EnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":  false,
			"message": "Transaction reference not found",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "sk_test", nil, testLogger())

	_, err := client.Verify(context.Background(), "ref-missing")
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("ожидалась ErrTransactionNotFound, получено %v", err)
	}
}

// TestNew_TrimsTrailingSlash — базовый URL нормализуется.
func TestNew_TrimsTrailingSlash(t *testing.T) {
	client := New("https://api.paystack.co/", "sk", nil, testLogger())
	if client.baseURL != "https://api.paystack.co" {
		t.Errorf("baseURL = %q, ожидается без trailing slash", client.baseURL)
	}
}
