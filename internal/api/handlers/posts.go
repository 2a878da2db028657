// posts.go — обработчики /api/v1/posts endpoints.
// Публикации новостного раздела: список с фильтром и поиском,
// создание с опциональной иллюстрацией, удаление.
package handlers

import (
	"errors"
	"io"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// ListPosts — GET /api/v1/posts.
// category — фильтр по категории, q — поиск по заголовку и анонсу.
// Доступ: публичный.
func (h *APIHandler) ListPosts(w http.ResponseWriter, r *http.Request, params generated.ListPostsParams) {
	limit, offset := paginationDefaults(params.Limit, params.Offset)

	page, err := h.content.ListPosts(r.Context(), params.Category, params.Q, limit, offset)
	if err != nil {
		h.logger.Error("Ошибка получения публикаций", "error", err)
		apierrors.InternalError(w, "Ошибка получения публикаций")
		return
	}

	items := make([]generated.Post, len(page.Posts))
	for i, p := range page.Posts {
		items[i] = mapPost(p)
	}

	writeJSON(w, http.StatusOK, generated.PostListResponse{
		Items:   items,
		Total:   page.Total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < page.Total,
	})
}

// GetPost — GET /api/v1/posts/{id}.
// Возвращает публикацию по UUID.
// Доступ: публичный.
func (h *APIHandler) GetPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	post, err := h.content.GetPost(r.Context(), id.String())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Публикация не найдена")
			return
		}
		h.logger.Error("Ошибка получения публикации", "post_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка получения публикации")
		return
	}

	writeJSON(w, http.StatusOK, mapPost(post))
}

// CreatePost — POST /api/v1/posts.
// Multipart-форма: title, excerpt, category + опциональный файл media.
// Доступ: admin.
func (h *APIHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if requireAdmin(w, r) == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.mediaMaxBytes)
	if err := r.ParseMultipartForm(h.mediaMaxBytes); err != nil {
		apierrors.ValidationError(w, "Некорректная multipart-форма: "+err.Error())
		return
	}

	title := r.FormValue("title")
	excerpt := r.FormValue("excerpt")
	category := r.FormValue("category")

	// Иллюстрация опциональна
	var media io.Reader
	var filename string
	if file, header, err := r.FormFile("media"); err == nil {
		defer file.Close()
		media = file
		filename = header.Filename
	}

	post, err := h.content.CreatePost(r.Context(), title, excerpt, category, filename, media)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			apierrors.ValidationError(w, err.Error())
			return
		}
		h.logger.Error("Ошибка создания публикации", "error", err)
		apierrors.InternalError(w, "Ошибка создания публикации")
		return
	}

	writeJSON(w, http.StatusCreated, mapPost(post))
}

// DeletePost — DELETE /api/v1/posts/{id}.
// Удаляет публикацию и её медиафайл, если он был.
// Доступ: admin.
func (h *APIHandler) DeletePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if requireAdmin(w, r) == nil {
		return
	}

	if err := h.content.DeletePost(r.Context(), id.String()); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Публикация не найдена")
			return
		}
		h.logger.Error("Ошибка удаления публикации", "post_id", id, "error", err)
		apierrors.InternalError(w, "Ошибка удаления публикации")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mapPost конвертирует domain model в generated API type.
func mapPost(p *model.Post) generated.Post {
	return generated.Post{
		Id:        mustUUID(p.ID),
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Category:  p.Category,
		MediaUrl:  p.MediaURL,
		MediaType: p.MediaType,
		CreatedAt: p.CreatedAt,
	}
}
