// applications.go — обработчики /api/v1/applications endpoints.
// Черновик заявки записывается в pending-слот публично; реестр заявок
// и смена статусов доступны только администратору.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// StageApplication — POST /api/v1/applications/stage.
// Валидирует черновик по анкете услуги и записывает его в pending-слот.
// Строка в БД не создаётся до подтверждения оплаты.
// Доступ: публичный.
func (h *APIHandler) StageApplication(w http.ResponseWriter, r *http.Request) {
	var req generated.ApplicationDraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.ServiceId == "" {
		apierrors.ValidationError(w, "service_id обязателен")
		return
	}

	draft := &model.ApplicationDraft{
		ServiceID:     req.ServiceId,
		ProposedName1: deref(req.ProposedName1),
		ProposedName2: deref(req.ProposedName2),
		DirectorName:  req.DirectorName,
		DirectorEmail: req.DirectorEmail,
		DirectorPhone: deref(req.DirectorPhone),
		Address:       deref(req.Address),
	}
	if req.Fields != nil {
		draft.Fields = *req.Fields
	}

	if err := h.applications.Stage(r.Context(), draft); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Услуга не найдена")
			return
		}
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка записи черновика заявки", "service_id", req.ServiceId, "error", err)
		apierrors.InternalError(w, "Ошибка сохранения черновика заявки")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// ListApplications — GET /api/v1/applications.
// Возвращает страницу реестра заявок; status — опциональный фильтр.
// Доступ: admin.
func (h *APIHandler) ListApplications(w http.ResponseWriter, r *http.Request, params generated.ListApplicationsParams) {
	if requireAdmin(w, r) == nil {
		return
	}

	limit, offset := paginationDefaults(params.Limit, params.Offset)

	apps, total, err := h.applications.List(r.Context(), params.Status, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка получения списка заявок", "error", err)
		apierrors.InternalError(w, "Ошибка получения списка заявок")
		return
	}

	items := make([]generated.Application, len(apps))
	for i, app := range apps {
		items[i] = mapApplication(app)
	}

	writeJSON(w, http.StatusOK, generated.ApplicationListResponse{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	})
}

// GetApplication — GET /api/v1/applications/{id}.
// Возвращает заявку по UUID.
// Доступ: admin.
func (h *APIHandler) GetApplication(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if requireAdmin(w, r) == nil {
		return
	}

	app, err := h.applications.Get(r.Context(), id.String())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Заявка не найдена")
			return
		}
		h.logger.Error("Ошибка получения заявки", "application_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка получения заявки")
		return
	}

	writeJSON(w, http.StatusOK, mapApplication(app))
}

// UpdateApplicationStatus — PUT /api/v1/applications/{id}/status.
// Продвигает статус заявки и уведомляет клиента по email.
// Доступ: admin.
func (h *APIHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req generated.ApplicationStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	app, err := h.applications.AdvanceStatus(r.Context(), id.String(), string(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Заявка не найдена")
			return
		}
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка смены статуса заявки", "application_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка смены статуса заявки")
		return
	}

	writeJSON(w, http.StatusOK, mapApplication(app))
}

// --- Маппинг domain → API ---

// mapApplication конвертирует domain model в generated API type.
func mapApplication(app *model.Application) generated.Application {
	result := generated.Application{
		Id:            mustUUID(app.ID),
		ServiceId:     app.ServiceID,
		ProposedName1: app.ProposedName1,
		DirectorName:  app.DirectorName,
		DirectorEmail: app.DirectorEmail,
		DirectorPhone: app.DirectorPhone,
		Address:       app.Address,
		Status:        generated.ApplicationStatus(app.Status),
		PaymentRef:    app.PaymentRef,
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}

	if app.ProposedName2 != "" {
		name := app.ProposedName2
		result.ProposedName2 = &name
	}
	if len(app.Fields) > 0 {
		fields := app.Fields
		result.Fields = &fields
	}

	return result
}

// deref возвращает значение указателя или пустую строку.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
