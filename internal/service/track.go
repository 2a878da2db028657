// track.go — публичное отслеживание заявок по email или платёжному
// референсу. Результаты кэшируются в per-instance LRU с TTL:
// endpoint публичный и не требует строгой свежести.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// Prometheus-метрики кэша трекинга.
var (
	trackCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_track_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш трекинга заявок.",
	})
	trackCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pm_track_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша трекинга заявок.",
	})
)

// TrackService — отслеживание заявок с LRU-кэшем.
type TrackService struct {
	apps   repository.ApplicationRepository
	cache  *expirable.LRU[string, []*model.Application]
	logger *slog.Logger
}

// NewTrackService создаёт сервис трекинга.
// maxSize — максимальное количество записей в кэше, ttl — время жизни записи.
func NewTrackService(apps repository.ApplicationRepository, maxSize int, ttl time.Duration, logger *slog.Logger) *TrackService {
	return &TrackService{
		apps:   apps,
		cache:  expirable.NewLRU[string, []*model.Application](maxSize, nil, ttl),
		logger: logger.With(slog.String("component", "track_service")),
	}
}

// ByEmail возвращает заявки по email директора.
func (s *TrackService) ByEmail(ctx context.Context, email string) ([]*model.Application, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email обязателен", ErrValidation)
	}

	key := "email:" + email
	if apps, ok := s.cache.Get(key); ok {
		trackCacheHitsTotal.Inc()
		return apps, nil
	}
	trackCacheMissesTotal.Inc()

	apps, err := s.apps.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, apps)
	return apps, nil
}

// ByReference возвращает заявку по платёжному референсу.
func (s *TrackService) ByReference(ctx context.Context, reference string) ([]*model.Application, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: reference обязателен", ErrValidation)
	}

	key := "ref:" + reference
	if apps, ok := s.cache.Get(key); ok {
		trackCacheHitsTotal.Inc()
		return apps, nil
	}
	trackCacheMissesTotal.Inc()

	app, err := s.apps.GetByPaymentRef(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: заявка с референсом %s", ErrNotFound, reference)
		}
		return nil, err
	}

	apps := []*model.Application{app}
	s.cache.Add(key, apps)
	return apps, nil
}
