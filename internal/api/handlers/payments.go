// payments.go — обработчики /api/v1/payments endpoints.
// Инициализация платежа у провайдера, подтверждение по референсу,
// чтение checkout-сессии.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// InitializePayment — POST /api/v1/payments/initialize.
// Создаёт транзакцию у провайдера и checkout-сессию в Redis.
// Вместе с сессией клиент получает публичный ключ провайдера.
// Доступ: публичный.
func (h *APIHandler) InitializePayment(w http.ResponseWriter, r *http.Request) {
	var req generated.InitializePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.ServiceId == "" || req.Email == "" {
		apierrors.ValidationError(w, "service_id и email обязательны")
		return
	}

	sess, err := h.checkout.Initialize(r.Context(), req.ServiceId, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Услуга не найдена")
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, service.ErrPaymentUnavailable):
			apierrors.PaymentUnavailable(w, "Платёжный провайдер недоступен")
		default:
			h.logger.Error("Ошибка инициализации платежа", "service_id", req.ServiceId, "error", err)
			apierrors.InternalError(w, "Ошибка инициализации платежа")
		}
		return
	}

	writeJSON(w, http.StatusCreated, generated.InitializePaymentResponse{
		Session:   mapCheckoutSession(sess),
		PublicKey: h.paystackPublicKey,
	})
}

// ConfirmPayment — POST /api/v1/payments/confirm.
// Верифицирует платёж у провайдера и переносит черновик из
// pending-слота в реестр заявок. Идемпотентен по референсу.
// Доступ: публичный.
func (h *APIHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req generated.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.Reference == "" {
		apierrors.ValidationError(w, "reference обязателен")
		return
	}

	result, err := h.checkout.Confirm(r.Context(), req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Транзакция не найдена")
		case errors.Is(err, service.ErrPaymentNotConfirmed):
			apierrors.PaymentNotConfirmed(w, err.Error())
		case errors.Is(err, service.ErrPaymentUnavailable):
			apierrors.PaymentUnavailable(w, "Платёжный провайдер недоступен")
		default:
			h.logger.Error("Ошибка подтверждения платежа", "reference", req.Reference, "error", err)
			apierrors.InternalError(w, "Ошибка подтверждения платежа")
		}
		return
	}

	resp := generated.ConfirmPaymentResponse{
		RegistrySynced: result.RegistrySynced,
	}
	if result.Session != nil {
		sess := mapCheckoutSession(result.Session)
		resp.Session = &sess
	}
	if result.Application != nil {
		app := mapApplication(result.Application)
		resp.Application = &app
	}
	if result.Transaction != nil {
		txn := mapTransaction(result.Transaction)
		resp.Transaction = &txn
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCheckoutSession — GET /api/v1/payments/session/{reference}.
// Возвращает checkout-сессию по референсу (для восстановления
// состояния после возврата с платёжной страницы).
// Доступ: публичный.
func (h *APIHandler) GetCheckoutSession(w http.ResponseWriter, r *http.Request, reference string) {
	sess, err := h.checkout.Session(r.Context(), reference)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Checkout-сессия не найдена")
			return
		}
		h.logger.Error("Ошибка получения checkout-сессии", "reference", reference, "error", err)
		apierrors.InternalError(w, "Ошибка получения checkout-сессии")
		return
	}

	writeJSON(w, http.StatusOK, mapCheckoutSession(sess))
}

// mapCheckoutSession конвертирует domain model в generated API type.
func mapCheckoutSession(sess *model.CheckoutSession) generated.CheckoutSession {
	return generated.CheckoutSession{
		Reference:        sess.Reference,
		ServiceId:        sess.ServiceID,
		ServiceTitle:     sess.ServiceTitle,
		Email:            sess.Email,
		AmountNaira:      sess.AmountNaira,
		AmountKobo:       sess.AmountKobo,
		AccessCode:       sess.AccessCode,
		AuthorizationUrl: sess.AuthorizationURL,
		Status:           generated.CheckoutSessionStatus(sess.Status),
		CreatedAt:        sess.CreatedAt,
		ExpiresAt:        sess.ExpiresAt,
	}
}
