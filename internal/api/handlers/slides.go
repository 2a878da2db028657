// slides.go — обработчики /api/v1/slides endpoints.
// Слайды создаются multipart-загрузкой, удаляются по id;
// update-in-place отсутствует.
package handlers

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// ListSlides — GET /api/v1/slides.
// Возвращает слайды; section — опциональный фильтр.
// Доступ: публичный.
func (h *APIHandler) ListSlides(w http.ResponseWriter, r *http.Request, params generated.ListSlidesParams) {
	slides, err := h.content.ListSlides(r.Context(), params.Section)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка получения слайдов", "error", err)
		apierrors.InternalError(w, "Ошибка получения слайдов")
		return
	}

	items := make([]generated.Slide, len(slides))
	for i, s := range slides {
		items[i] = mapSlide(s)
	}

	writeJSON(w, http.StatusOK, generated.SlideListResponse{
		Items: items,
		Total: len(items),
	})
}

// CreateSlide — POST /api/v1/slides.
// Multipart-загрузка: поле section + файл media.
// Доступ: admin.
func (h *APIHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.mediaMaxBytes)
	if err := r.ParseMultipartForm(h.mediaMaxBytes); err != nil {
		apierrors.ValidationError(w, "Некорректная multipart-форма: "+err.Error())
		return
	}

	section := r.FormValue("section")
	if section == "" {
		apierrors.ValidationError(w, "Поле section обязательно")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		apierrors.ValidationError(w, "Файл media обязателен")
		return
	}
	defer file.Close()

	slide, err := h.content.CreateSlide(r.Context(), section, header.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка создания слайда", "section", section, "error", err)
		apierrors.InternalError(w, "Ошибка создания слайда")
		return
	}

	writeJSON(w, http.StatusCreated, mapSlide(slide))
}

// DeleteSlide — DELETE /api/v1/slides/{id}.
// Удаляет слайд и его медиафайл.
// Доступ: admin.
func (h *APIHandler) DeleteSlide(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if requireAdmin(w, r) == nil {
		return
	}

	if err := h.content.DeleteSlide(r.Context(), id.String()); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Слайд не найден")
			return
		}
		h.logger.Error("Ошибка удаления слайда", "slide_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка удаления слайда")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mapSlide конвертирует domain model в generated API type.
func mapSlide(s *model.Slide) generated.Slide {
	return generated.Slide{
		Id:        mustUUID(s.ID),
		Section:   s.Section,
		MediaUrl:  s.MediaURL,
		MediaType: s.MediaType,
		CreatedAt: s.CreatedAt,
	}
}
