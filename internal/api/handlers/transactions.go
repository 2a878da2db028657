// transactions.go — обработчики /api/v1/transactions endpoints.
// Журнал платежей back-office: список и ручное добавление записи.
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

// ListTransactions — GET /api/v1/transactions.
// Возвращает страницу журнала в обратном хронологическом порядке.
// Доступ: admin.
func (h *APIHandler) ListTransactions(w http.ResponseWriter, r *http.Request, params generated.ListTransactionsParams) {
	if requireAdmin(w, r) == nil {
		return
	}

	limit, offset := paginationDefaults(params.Limit, params.Offset)

	txns, total, err := h.transactions.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Ошибка получения журнала платежей", "error", err)
		apierrors.InternalError(w, "Ошибка получения журнала платежей")
		return
	}

	items := make([]generated.Transaction, len(txns))
	for i, txn := range txns {
		items[i] = mapTransaction(txn)
	}

	writeJSON(w, http.StatusOK, generated.TransactionListResponse{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	})
}

// CreateTransaction — POST /api/v1/transactions.
// Ручное добавление записи о платеже, проведённом вне портала.
// Доступ: admin.
func (h *APIHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req generated.TransactionCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	txn, err := h.transactions.Record(r.Context(), req.Client, req.Service, req.Amount, deref(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка добавления записи в журнал платежей", "error", err)
		apierrors.InternalError(w, "Ошибка добавления записи в журнал платежей")
		return
	}

	writeJSON(w, http.StatusCreated, mapTransaction(txn))
}

// mapTransaction конвертирует domain model в generated API type.
func mapTransaction(txn *model.Transaction) generated.Transaction {
	return generated.Transaction{
		Id:        mustUUID(txn.ID),
		Client:    txn.Client,
		Service:   txn.Service,
		Amount:    txn.Amount,
		Status:    txn.Status,
		CreatedAt: txn.CreatedAt,
	}
}
