// metrics.go — Prometheus HTTP метрики Portal Module.
// Регистрирует метрики: pm_http_requests_total, pm_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pm_http_requests_total",
			Help: "Общее количество HTTP-запросов к Portal Module",
		},
		[]string{"method", "path", "status"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pm_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к Portal Module в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Записывает количество запросов и длительность для каждого endpoint.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (заменяем идентификаторы на {id} для предотвращения кардинальности)
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newMetricsResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// metricsResponseWriter — обёртка для перехвата статус-кода.
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newMetricsResponseWriter(w http.ResponseWriter) *metricsResponseWriter {
	return &metricsResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *metricsResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Unwrap позволяет http.ResponseController получить доступ к оригинальному ResponseWriter.
func (rw *metricsResponseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// uuidLen — длина текстового UUID в сегменте пути.
const uuidLen = 36

// normalizePath заменяет динамические сегменты пути на плейсхолдеры
// для предотвращения взрывного роста кардинальности метрик.
// /api/v1/posts/a1b2c3d4-... → /api/v1/posts/{id}
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/health/live", "/health/ready", "/metrics",
		"/.well-known/jwks.json",
		"/api/v1/auth/sign-in",
		"/api/v1/auth/session",
		"/api/v1/auth/refresh",
		"/api/v1/auth/sign-out",
		"/api/v1/auth/password-reset",
		"/api/v1/auth/password",
		"/api/v1/services",
		"/api/v1/slides",
		"/api/v1/posts",
		"/api/v1/applications",
		"/api/v1/applications/stage",
		"/api/v1/transactions",
		"/api/v1/track",
		"/api/v1/payments/initialize",
		"/api/v1/payments/confirm":
		return path
	}

	// Динамические пути с UUID
	prefixes := []struct {
		prefix string
		result string
	}{
		{"/api/v1/slides/", "/api/v1/slides/{id}"},
		{"/api/v1/posts/", "/api/v1/posts/{id}"},
		{"/api/v1/applications/", "/api/v1/applications/{id}"},
	}

	for _, p := range prefixes {
		if len(path) > len(p.prefix) && path[:len(p.prefix)] == p.prefix {
			suffix := ""
			if len(path) > len(p.prefix)+uuidLen {
				suffix = path[len(p.prefix)+uuidLen:]
			}
			switch suffix {
			case "/status":
				return p.result + "/status"
			default:
				return p.result
			}
		}
	}

	// Слаги услуг
	if len(path) > len("/api/v1/services/") && path[:len("/api/v1/services/")] == "/api/v1/services/" {
		return "/api/v1/services/{id}"
	}

	// Медиафайлы раздаются по произвольным именам
	if len(path) > len("/media/") && path[:len("/media/")] == "/media/" {
		return "/media/{file}"
	}

	return path
}
