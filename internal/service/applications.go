// applications.go — заявки на регистрацию.
// Черновик заявки до оплаты живёт в pending-слоте Redis;
// строка в PostgreSQL создаётся только при подтверждении платежа
// (см. checkout.go). Статусы продвигает администратор.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// StatusNotifier — уведомление клиента о смене статуса заявки.
// Реализуется notify.Mailer.
type StatusNotifier interface {
	SendStatusUpdate(ctx context.Context, email, serviceTitle, status string) error
}

// PendingStager — запись черновика в pending-слот.
// Реализуется kv.PendingStore.
type PendingStager interface {
	Stage(ctx context.Context, draft *model.ApplicationDraft) error
}

// ApplicationService — операции с заявками.
type ApplicationService struct {
	apps      repository.ApplicationRepository
	offerings repository.OfferingRepository
	pending   PendingStager
	notifier  StatusNotifier
	logger    *slog.Logger
}

// NewApplicationService создаёт сервис заявок.
func NewApplicationService(
	apps repository.ApplicationRepository,
	offerings repository.OfferingRepository,
	pending PendingStager,
	notifier StatusNotifier,
	logger *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		offerings: offerings,
		pending:   pending,
		notifier:  notifier,
		logger:    logger.With(slog.String("component", "application_service")),
	}
}

// Stage валидирует черновик заявки по анкете услуги и записывает его
// в pending-слот. Повторный вызов для того же email перезаписывает слот.
func (s *ApplicationService) Stage(ctx context.Context, draft *model.ApplicationDraft) error {
	offering, err := s.offerings.GetByID(ctx, draft.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: услуга %s", ErrNotFound, draft.ServiceID)
		}
		return err
	}

	if err := validateDraft(draft, offering); err != nil {
		return err
	}

	draft.DirectorEmail = strings.ToLower(strings.TrimSpace(draft.DirectorEmail))
	draft.StagedAt = time.Now()

	if err := s.pending.Stage(ctx, draft); err != nil {
		return err
	}

	s.logger.Info("Черновик заявки записан в pending-слот",
		slog.String("service_id", draft.ServiceID),
	)
	return nil
}

// List возвращает страницу заявок; status — опциональный фильтр.
func (s *ApplicationService) List(ctx context.Context, status *string, limit, offset int) ([]*model.Application, int, error) {
	if status != nil && !model.ValidApplicationStatus(*status) {
		return nil, 0, fmt.Errorf("%w: неизвестный статус %q", ErrValidation, *status)
	}

	apps, err := s.apps.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.apps.Count(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

// Get возвращает заявку по UUID.
func (s *ApplicationService) Get(ctx context.Context, id string) (*model.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: заявка %s", ErrNotFound, id)
		}
		return nil, err
	}
	return app, nil
}

// AdvanceStatus устанавливает новый статус заявки и уведомляет клиента.
// Ошибка отправки уведомления не откатывает смену статуса.
func (s *ApplicationService) AdvanceStatus(ctx context.Context, id, status string) (*model.Application, error) {
	if !model.ValidApplicationStatus(status) {
		return nil, fmt.Errorf("%w: неизвестный статус %q", ErrValidation, status)
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: заявка %s", ErrNotFound, id)
		}
		return nil, err
	}

	app, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	serviceTitle := app.ServiceID
	if offering, err := s.offerings.GetByID(ctx, app.ServiceID); err == nil {
		serviceTitle = offering.Title
	}

	if err := s.notifier.SendStatusUpdate(ctx, app.DirectorEmail, serviceTitle, status); err != nil {
		s.logger.Warn("Не удалось отправить уведомление о смене статуса",
			slog.String("application_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("Статус заявки обновлён",
		slog.String("application_id", id),
		slog.String("status", status),
	)
	return app, nil
}

// validateDraft проверяет черновик по анкете услуги.
func validateDraft(draft *model.ApplicationDraft, offering *model.ServiceOffering) error {
	if strings.TrimSpace(draft.DirectorName) == "" {
		return fmt.Errorf("%w: director_name обязателен", ErrValidation)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(draft.DirectorEmail)); err != nil {
		return fmt.Errorf("%w: некорректный director_email", ErrValidation)
	}

	for _, field := range offering.FormSchema {
		if !field.Required {
			continue
		}
		if strings.TrimSpace(draftFieldValue(draft, field.Name)) == "" {
			return fmt.Errorf("%w: поле %q обязательно для услуги %s", ErrValidation, field.Name, offering.ID)
		}
	}
	return nil
}

// draftFieldValue возвращает значение поля анкеты: именованные поля
// черновика имеют приоритет над произвольной картой Fields.
func draftFieldValue(draft *model.ApplicationDraft, name string) string {
	switch name {
	case "proposed_name_1":
		return draft.ProposedName1
	case "proposed_name_2":
		return draft.ProposedName2
	case "director_name":
		return draft.DirectorName
	case "director_email":
		return draft.DirectorEmail
	case "director_phone":
		return draft.DirectorPhone
	case "address":
		return draft.Address
	}
	return draft.Fields[name]
}
