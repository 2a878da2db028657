// handler.go — основной обработчик API, реализующий generated.ServerInterface.
// Объединяет все доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	apierrors "github.com/mstechy/gorex360/portal-module/internal/api/errors"
	"github.com/mstechy/gorex360/portal-module/internal/api/middleware"
	"github.com/mstechy/gorex360/portal-module/internal/auth"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

// APIHandler — основной обработчик API Portal Module.
// Реализует generated.ServerInterface, делегируя запросы в сервисный слой.
type APIHandler struct {
	health       *HealthHandler
	auth         *auth.Service
	issuer       *auth.Issuer
	offerings    *service.OfferingService
	content      *service.ContentService
	applications *service.ApplicationService
	checkout     *service.CheckoutService
	track        *service.TrackService
	transactions *service.TransactionService

	// paystackPublicKey отдаётся клиенту при инициализации платежа.
	paystackPublicKey string
	// mediaMaxBytes ограничивает размер multipart-загрузок.
	mediaMaxBytes int64

	logger *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	authSvc *auth.Service,
	issuer *auth.Issuer,
	offerings *service.OfferingService,
	content *service.ContentService,
	applications *service.ApplicationService,
	checkout *service.CheckoutService,
	track *service.TrackService,
	transactions *service.TransactionService,
	paystackPublicKey string,
	mediaMaxBytes int64,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:            health,
		auth:              authSvc,
		issuer:            issuer,
		offerings:         offerings,
		content:           content,
		applications:      applications,
		checkout:          checkout,
		track:             track,
		transactions:      transactions,
		paystackPublicKey: paystackPublicKey,
		mediaMaxBytes:     mediaMaxBytes,
		logger:            logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// requireAdmin проверяет доступ к административному endpoint'у:
// анонимный запрос — 401, аутентифицированный без роли admin — 403.
// При отказе ответ уже записан, вызывающий обязан выйти.
func requireAdmin(w http.ResponseWriter, r *http.Request) *middleware.AuthClaims {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return nil
	}
	if !claims.IsAdmin() {
		apierrors.Forbidden(w, "Недостаточно прав: требуется роль admin")
		return nil
	}
	return claims
}

// mustUUID парсит UUID из строки, пришедшей из БД.
func mustUUID(id string) openapi_types.UUID {
	return uuid.MustParse(id)
}

// paginationDefaults нормализует параметры пагинации.
// Возвращает корректные limit и offset.
func paginationDefaults(limit *int, offset *int) (int, int) {
	l := 100
	o := 0

	if limit != nil {
		l = *limit
		if l < 1 {
			l = 1
		}
		if l > 1000 {
			l = 1000
		}
	}

	if offset != nil {
		o = *offset
		if o < 0 {
			o = 0
		}
	}

	return l, o
}
