// services.go — обработчики /api/v1/services endpoints.
// Каталог услуг публичный; ценовые поля меняет только admin.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/domain/money"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// ListServices — GET /api/v1/services.
// Возвращает каталог услуг в порядке position.
// Доступ: публичный.
func (h *APIHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.offerings.List(r.Context())
	if err != nil {
		h.logger.Error("Ошибка получения каталога услуг", "error", err)
		apierrors.InternalError(w, "Ошибка получения каталога услуг")
		return
	}

	items := make([]generated.ServiceOffering, len(offerings))
	for i, o := range offerings {
		items[i] = mapOffering(o)
	}

	writeJSON(w, http.StatusOK, items)
}

// GetService — GET /api/v1/services/{id}.
// Возвращает услугу по слагу.
// Доступ: публичный.
func (h *APIHandler) GetService(w http.ResponseWriter, r *http.Request, id string) {
	offering, err := h.offerings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Услуга не найдена")
			return
		}
		h.logger.Error("Ошибка получения услуги", "service_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка получения услуги")
		return
	}

	writeJSON(w, http.StatusOK, mapOffering(offering))
}

// UpdateServicePricing — PUT /api/v1/services/{id}.
// Обновляет ценовые поля услуги; состав и анкеты фиксированы.
// Доступ: admin.
func (h *APIHandler) UpdateServicePricing(w http.ResponseWriter, r *http.Request, id string) {
	if requireAdmin(w, r) == nil {
		return
	}

	var req generated.PricingUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if req.Price == "" {
		apierrors.ValidationError(w, "price обязателен")
		return
	}

	offering, err := h.offerings.UpdatePricing(r.Context(), id, req.Price, req.OriginalPrice)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Услуга не найдена")
			return
		}
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка обновления цены услуги", "service_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка обновления цены услуги")
		return
	}

	writeJSON(w, http.StatusOK, mapOffering(offering))
}

// --- Маппинг domain → API ---

// mapOffering конвертирует domain model в generated API type.
func mapOffering(o *model.ServiceOffering) generated.ServiceOffering {
	schema := make([]generated.FormField, len(o.FormSchema))
	for i, f := range o.FormSchema {
		schema[i] = generated.FormField{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     f.Kind,
			Required: f.Required,
		}
		if len(f.Options) > 0 {
			opts := f.Options
			schema[i].Options = &opts
		}
	}

	out := generated.ServiceOffering{
		Id:            o.ID,
		Title:         o.Title,
		Description:   o.Description,
		Price:         o.Price,
		DisplayPrice:  money.FormatPrice(o.Price),
		OriginalPrice: o.OriginalPrice,
		FormSchema:    schema,
		Position:      o.Position,
	}
	if o.OriginalPrice != nil {
		display := money.FormatPrice(*o.OriginalPrice)
		out.DisplayOriginalPrice = &display
	}
	return out
}
