// track.go — обработчик /api/v1/track.
// Публичное отслеживание заявок по email директора или платёжному
// референсу. Ровно один из параметров обязателен.
package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/generated"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// TrackApplications — GET /api/v1/track?email=... | ?reference=...
// Доступ: публичный.
func (h *APIHandler) TrackApplications(w http.ResponseWriter, r *http.Request, params generated.TrackApplicationsParams) {
	hasEmail := params.Email != nil && *params.Email != ""
	hasRef := params.Reference != nil && *params.Reference != ""

	var apps []*model.Application
	var err error
	switch {
	case hasEmail && hasRef:
		apierrors.ValidationError(w, "Укажите ровно один параметр: email или reference")
		return
	case hasEmail:
		apps, err = h.track.ByEmail(r.Context(), *params.Email)
	case hasRef:
		apps, err = h.track.ByReference(r.Context(), *params.Reference)
	default:
		apierrors.ValidationError(w, "Требуется параметр email или reference")
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			apierrors.NotFound(w, "Заявка не найдена")
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		default:
			h.logger.Error("Ошибка трекинга заявок", "error", err)
			apierrors.InternalError(w, "Ошибка трекинга заявок")
		}
		return
	}

	items := make([]generated.Application, len(apps))
	for i, app := range apps {
		items[i] = mapApplication(app)
	}

	writeJSON(w, http.StatusOK, generated.TrackResponse{
		Items: items,
		Total: len(items),
	})
}
