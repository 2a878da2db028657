package portalclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// checkoutServer — сервер с эндпоинтами checkout-прохода.
// calls считает все обращения, release (если не nil) блокирует
// обработку stage до закрытия канала.
func checkoutServer(t *testing.T, calls *atomic.Int64, release chan struct{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/applications/stage":
			if release != nil {
				<-release
			}
			w.WriteHeader(http.StatusNoContent)
		case "/api/v1/payments/initialize":
			json.NewEncoder(w).Encode(PaymentInit{
				Session: CheckoutSession{
					Reference:    "ref-100",
					ServiceID:    "company",
					ServiceTitle: "Limited Liability Company",
					AmountNaira:  55000,
					Status:       "awaiting_payment",
					ExpiresAt:    time.Now().Add(15 * time.Minute),
				},
				PublicKey: "pk_test_public",
			})
		case "/api/v1/payments/confirm":
			json.NewEncoder(w).Encode(ConfirmResult{
				Session: &CheckoutSession{
					Reference:    "ref-100",
					ServiceTitle: "Limited Liability Company",
					AmountNaira:  55000,
					Status:       "confirmed",
				},
				Application:    &Application{ID: "app-1", PaymentRef: "ref-100"},
				RegistrySynced: true,
			})
		default:
			t.Errorf("неожиданный путь %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func checkoutDraft() *ApplicationDraft {
	return &ApplicationDraft{
		ServiceID:     "company",
		ProposedName1: "Acme Nigeria Ltd",
		DirectorName:  "Ada Obi",
		DirectorEmail: "ada@test.com",
	}
}

// TestCheckoutBegin — Selecting → AwaitingPayment.
func TestCheckoutBegin(t *testing.T) {
	var calls atomic.Int64
	server := checkoutServer(t, &calls, nil)
	client := New(server.URL, WithLogger(testLogger()))
	co := NewCheckout(client, "2348000000000")

	if co.State() != StateSelecting {
		t.Fatalf("начальное состояние = %v, ожидается StateSelecting", co.State())
	}

	init, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000")
	if err != nil {
		t.Fatalf("Begin() вернул ошибку: %v", err)
	}

	if co.State() != StateAwaitingPayment {
		t.Errorf("состояние = %v, ожидается StateAwaitingPayment", co.State())
	}
	if init.Session.Reference != "ref-100" {
		t.Errorf("Reference = %q, ожидается ref-100", init.Session.Reference)
	}
	if !co.Deadline().Equal(init.Session.ExpiresAt) {
		t.Errorf("Deadline = %v, ожидается %v", co.Deadline(), init.Session.ExpiresAt)
	}
	if sess := co.Session(); sess == nil || sess.Reference != "ref-100" {
		t.Error("Session() не возвращает сессию инициализации")
	}
}

// TestCheckoutBegin_InvalidSelection — некорректный выбор отклоняется
// до любого сетевого вызова.
func TestCheckoutBegin_InvalidSelection(t *testing.T) {
	tests := []struct {
		name  string
		draft *ApplicationDraft
		price string
	}{
		{"nil черновик", nil, "₦55,000"},
		{"пустая услуга", &ApplicationDraft{DirectorEmail: "ada@test.com"}, "₦55,000"},
		{"цена без цифр", checkoutDraft(), "по запросу"},
		{"нулевая цена", checkoutDraft(), "₦0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int64
			server := checkoutServer(t, &calls, nil)
			client := New(server.URL, WithLogger(testLogger()))
			co := NewCheckout(client, "2348000000000")

			_, err := co.Begin(context.Background(), tt.draft, tt.price)
			if !errors.Is(err, ErrInvalidSelection) {
				t.Errorf("ожидалась ErrInvalidSelection, получено %v", err)
			}
			if calls.Load() != 0 {
				t.Errorf("сетевых вызовов: %d, ожидается 0", calls.Load())
			}
			if co.State() != StateSelecting {
				t.Errorf("состояние = %v, ожидается StateSelecting", co.State())
			}
		})
	}
}

// TestCheckoutBegin_Busy — параллельный Begin отклоняется, пока
// предыдущий переход выполняется.
func TestCheckoutBegin_Busy(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	server := checkoutServer(t, &calls, release)
	client := New(server.URL, WithLogger(testLogger()))
	co := NewCheckout(client, "2348000000000")

	done := make(chan error, 1)
	go func() {
		_, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000")
		done <- err
	}()

	// Дожидаемся входа первого Begin в сетевой вызов
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000")
	if !errors.Is(err, ErrCheckoutBusy) {
		t.Errorf("ожидалась ErrCheckoutBusy, получено %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("первый Begin() вернул ошибку: %v", err)
	}
	if co.State() != StateAwaitingPayment {
		t.Errorf("состояние = %v, ожидается StateAwaitingPayment", co.State())
	}
}

// TestCheckoutConfirm — AwaitingPayment → Confirmed со ссылкой-чеком.
func TestCheckoutConfirm(t *testing.T) {
	var calls atomic.Int64
	server := checkoutServer(t, &calls, nil)
	client := New(server.URL, WithLogger(testLogger()))
	co := NewCheckout(client, "2348000000000")

	if _, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000"); err != nil {
		t.Fatalf("Begin() вернул ошибку: %v", err)
	}

	outcome, err := co.Confirm(context.Background(), "ref-100")
	if err != nil {
		t.Fatalf("Confirm() вернул ошибку: %v", err)
	}

	if co.State() != StateConfirmed {
		t.Errorf("состояние = %v, ожидается StateConfirmed", co.State())
	}
	if !outcome.Result.RegistrySynced {
		t.Error("RegistrySynced = false")
	}
	if !strings.HasPrefix(outcome.ReceiptLink, "https://wa.me/2348000000000?text=") {
		t.Errorf("ReceiptLink = %q, ожидается ссылка wa.me", outcome.ReceiptLink)
	}
	if !strings.Contains(outcome.ReceiptLink, "ref-100") {
		t.Errorf("ReceiptLink = %q, ожидается референс платежа в тексте", outcome.ReceiptLink)
	}
}

// TestCheckoutConfirm_WrongState — подтверждение вне AwaitingPayment.
func TestCheckoutConfirm_WrongState(t *testing.T) {
	client := New("http://localhost", WithLogger(testLogger()))
	co := NewCheckout(client, "2348000000000")

	_, err := co.Confirm(context.Background(), "ref-100")
	if !errors.Is(err, ErrWrongState) {
		t.Errorf("ожидалась ErrWrongState, получено %v", err)
	}
}

// TestCheckoutConfirm_NoReceiptWithoutPhone — без контактного номера
// ссылка-чек не строится.
func TestCheckoutConfirm_NoReceiptWithoutPhone(t *testing.T) {
	var calls atomic.Int64
	server := checkoutServer(t, &calls, nil)
	client := New(server.URL, WithLogger(testLogger()))
	co := NewCheckout(client, "")

	if _, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000"); err != nil {
		t.Fatalf("Begin() вернул ошибку: %v", err)
	}
	outcome, err := co.Confirm(context.Background(), "ref-100")
	if err != nil {
		t.Fatalf("Confirm() вернул ошибку: %v", err)
	}
	if outcome.ReceiptLink != "" {
		t.Errorf("ReceiptLink = %q, ожидается пустая строка", outcome.ReceiptLink)
	}
}

// TestCheckoutCancel — Cancel возвращает проход в Selecting.
func TestCheckoutCancel(t *testing.T) {
	var calls atomic.Int64
	server := checkoutServer(t, &calls, nil)
	client := New(server.URL, WithLogger(testLogger()))
	co := NewCheckout(client, "2348000000000")

	if _, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000"); err != nil {
		t.Fatalf("Begin() вернул ошибку: %v", err)
	}

	co.Cancel()

	if co.State() != StateSelecting {
		t.Errorf("состояние = %v, ожидается StateSelecting", co.State())
	}
	if co.Session() != nil {
		t.Error("Session() != nil после Cancel")
	}
	if !co.Deadline().IsZero() {
		t.Error("Deadline не сброшен после Cancel")
	}

	// Новый проход начинается заново
	if _, err := co.Begin(context.Background(), checkoutDraft(), "₦55,000"); err != nil {
		t.Fatalf("повторный Begin() вернул ошибку: %v", err)
	}
	if co.State() != StateAwaitingPayment {
		t.Errorf("состояние = %v, ожидается StateAwaitingPayment", co.State())
	}
}
