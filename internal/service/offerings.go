// offerings.go — каталог услуг.
// Каталог засеивается миграцией; через API изменяются только
// ценовые поля, состав и анкеты услуг фиксированы.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/domain/money"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// OfferingService — операции с каталогом услуг.
type OfferingService struct {
	offerings repository.OfferingRepository
	logger    *slog.Logger
}

// NewOfferingService создаёт сервис каталога услуг.
func NewOfferingService(offerings repository.OfferingRepository, logger *slog.Logger) *OfferingService {
	return &OfferingService{
		offerings: offerings,
		logger:    logger.With(slog.String("component", "offering_service")),
	}
}

// List возвращает каталог услуг в порядке position.
func (s *OfferingService) List(ctx context.Context) ([]*model.ServiceOffering, error) {
	return s.offerings.List(ctx)
}

// Get возвращает услугу по слагу.
func (s *OfferingService) Get(ctx context.Context, id string) (*model.ServiceOffering, error) {
	o, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: услуга %s", ErrNotFound, id)
		}
		return nil, err
	}
	return o, nil
}

// UpdatePricing обновляет цену услуги и возвращает перечитанную запись.
// Цены нормализуются до строки из цифр; нулевые и нецифровые
// значения отклоняются до записи в БД.
func (s *OfferingService) UpdatePricing(ctx context.Context, id, price string, originalPrice *string) (*model.ServiceOffering, error) {
	amount, err := money.ParseAmount(price)
	if err != nil {
		return nil, fmt.Errorf("%w: price: %v", ErrValidation, err)
	}
	normalized := strconv.FormatInt(amount, 10)

	var normalizedOriginal *string
	if originalPrice != nil && *originalPrice != "" {
		origAmount, err := money.ParseAmount(*originalPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: original_price: %v", ErrValidation, err)
		}
		v := strconv.FormatInt(origAmount, 10)
		normalizedOriginal = &v
	}

	if err := s.offerings.UpdatePricing(ctx, id, normalized, normalizedOriginal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: услуга %s", ErrNotFound, id)
		}
		return nil, err
	}

	s.logger.Info("Цена услуги обновлена",
		slog.String("service_id", id),
		slog.String("price", normalized),
	)

	// Перечитываем строку: ответ всегда отражает состояние БД
	return s.Get(ctx, id)
}
