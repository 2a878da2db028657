// checkout.go — инициализация и подтверждение оплаты.
//
// Инициализация: цена услуги разбирается и конвертируется в кобо,
// у провайдера создаётся транзакция, checkout-сессия сохраняется
// в Redis со статусом awaiting_payment.
//
// Подтверждение: платёж верифицируется у провайдера по референсу,
// черновик читается из pending-слота и вставляется в PostgreSQL
// заявкой с payment_ref; слот очищается только после успешной
// вставки. Пустой слот — не ошибка: осиротевшая строка заявки
// не создаётся. Сбой вставки тоже не ошибка ответа: платёж уже
// прошёл, ответ остаётся успешным с registry_synced=false, а слот
// сохраняется для повторного подтверждения.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/domain/money"
	"github.com/mstechy/gorex360/portal-module/internal/kv"
	"github.com/mstechy/gorex360/portal-module/internal/paystack"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// Prometheus-метрики checkout-прохода.
var (
	checkoutOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_checkout_outcomes_total",
		Help: "Общее количество исходов подтверждения платежа.",
	}, []string{"outcome"})
	pendingFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pm_pending_flush_total",
		Help: "Общее количество переносов pending-слота в реестр заявок.",
	}, []string{"result"})
)

// PaymentProvider — операции платёжного провайдера.
// Реализуется paystack.Client; в тестах подменяется моком.
type PaymentProvider interface {
	Initialize(ctx context.Context, email string, amountKobo int64, reference string, metadata map[string]string) (*paystack.InitializeResult, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error)
}

// PendingSlots — операции pending-слотов, нужные подтверждению оплаты.
// Реализуется kv.PendingStore.
type PendingSlots interface {
	Get(ctx context.Context, email string) (*model.ApplicationDraft, error)
	Clear(ctx context.Context, email string) error
}

// CheckoutSessions — хранилище checkout-сессий.
// Реализуется kv.CheckoutStore.
type CheckoutSessions interface {
	Put(ctx context.Context, sess *model.CheckoutSession) error
	Get(ctx context.Context, reference string) (*model.CheckoutSession, error)
}

// ConfirmResult — результат подтверждения платежа.
type ConfirmResult struct {
	// Session — итоговое состояние checkout-сессии (nil, если сессия истекла).
	Session *model.CheckoutSession
	// Application — созданная заявка (nil, если pending-слот был пуст).
	Application *model.Application
	// Transaction — аудиторская запись платежа.
	Transaction *model.Transaction
	// RegistrySynced — заявка записана в реестр (слот был непуст
	// и вставка удалась).
	RegistrySynced bool
}

// CheckoutService — состояние checkout-прохода и работа с провайдером.
type CheckoutService struct {
	provider  PaymentProvider
	offerings repository.OfferingRepository
	apps      repository.ApplicationRepository
	txns      repository.TransactionRepository
	pending   PendingSlots
	sessions  CheckoutSessions
	countdown time.Duration
	logger    *slog.Logger
}

// NewCheckoutService создаёт сервис checkout.
// countdown — длительность отсчёта, отдаваемого клиенту (expires_at);
// истечение отсчёта не отменяет транзакцию у провайдера.
func NewCheckoutService(
	provider PaymentProvider,
	offerings repository.OfferingRepository,
	apps repository.ApplicationRepository,
	txns repository.TransactionRepository,
	pending PendingSlots,
	sessions CheckoutSessions,
	countdown time.Duration,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		provider:  provider,
		offerings: offerings,
		apps:      apps,
		txns:      txns,
		pending:   pending,
		sessions:  sessions,
		countdown: countdown,
		logger:    logger.With(slog.String("component", "checkout_service")),
	}
}

// Initialize создаёт транзакцию у провайдера и checkout-сессию.
// Сумма берётся из текущей цены услуги; нулевая или нечисловая цена
// отклоняется до любого сетевого вызова.
func (s *CheckoutService) Initialize(ctx context.Context, serviceID, email string) (*model.CheckoutSession, error) {
	offering, err := s.offerings.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: услуга %s", ErrNotFound, serviceID)
		}
		return nil, err
	}

	amountNaira, err := money.ParseAmount(offering.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: цена услуги %s: %v", ErrValidation, serviceID, err)
	}
	amountKobo := money.ToKobo(amountNaira)

	reference := uuid.New().String()
	result, err := s.provider.Initialize(ctx, email, amountKobo, reference, map[string]string{
		"service_id": serviceID,
	})
	if err != nil {
		if errors.Is(err, paystack.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
		}
		return nil, err
	}

	now := time.Now()
	sess := &model.CheckoutSession{
		Reference:        result.Reference,
		ServiceID:        offering.ID,
		ServiceTitle:     offering.Title,
		Email:            email,
		AmountNaira:      amountNaira,
		AmountKobo:       amountKobo,
		AccessCode:       result.AccessCode,
		AuthorizationURL: result.AuthorizationURL,
		Status:           model.CheckoutAwaitingPayment,
		CreatedAt:        now,
		ExpiresAt:        now.Add(s.countdown),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Checkout инициализирован",
		slog.String("reference", sess.Reference),
		slog.String("service_id", serviceID),
		slog.Int64("amount_naira", amountNaira),
	)
	return sess, nil
}

// Confirm верифицирует платёж у провайдера и переносит черновик
// из pending-слота в реестр заявок. Идемпотентен: повторное
// подтверждение того же референса возвращает существующую заявку.
func (s *CheckoutService) Confirm(ctx context.Context, reference string) (*ConfirmResult, error) {
	// Повторный вызов после успешного подтверждения
	if existing, err := s.apps.GetByPaymentRef(ctx, reference); err == nil {
		sess, _ := s.sessions.Get(ctx, reference)
		return &ConfirmResult{
			Session:        sess,
			Application:    existing,
			RegistrySynced: true,
		}, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	verify, err := s.provider.Verify(ctx, reference)
	if err != nil {
		switch {
		case errors.Is(err, paystack.ErrTransactionNotFound):
			return nil, fmt.Errorf("%w: транзакция %s", ErrNotFound, reference)
		case errors.Is(err, paystack.ErrUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
		}
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, reference)
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return nil, err
	}

	if !verify.Succeeded() {
		if sess != nil {
			sess.Status = model.CheckoutCancelled
			if err := s.sessions.Put(ctx, sess); err != nil {
				s.logger.Warn("Не удалось сохранить статус отменённой сессии",
					slog.String("reference", reference),
					slog.String("error", err.Error()),
				)
			}
		}
		checkoutOutcomesTotal.WithLabelValues("payment_failed").Inc()
		return nil, fmt.Errorf("%w: статус %s (%s)", ErrPaymentNotConfirmed, verify.Status, verify.GatewayResponse)
	}

	// Email плательщика: сессия надёжнее, но могла истечь
	email := verify.Customer.Email
	serviceTitle := ""
	if sess != nil {
		email = sess.Email
		serviceTitle = sess.ServiceTitle
		if verify.Amount != sess.AmountKobo {
			s.logger.Warn("Сумма подтверждённого платежа отличается от сессии",
				slog.String("reference", reference),
				slog.Int64("expected_kobo", sess.AmountKobo),
				slog.Int64("actual_kobo", verify.Amount),
			)
		}
	}

	result := &ConfirmResult{Session: sess}

	// Переносим черновик из pending-слота в реестр заявок
	draft, err := s.pending.Get(ctx, email)
	switch {
	case err == nil:
		app := &model.Application{
			ID:            uuid.New().String(),
			ServiceID:     draft.ServiceID,
			ProposedName1: draft.ProposedName1,
			ProposedName2: draft.ProposedName2,
			DirectorName:  draft.DirectorName,
			DirectorEmail: draft.DirectorEmail,
			DirectorPhone: draft.DirectorPhone,
			Address:       draft.Address,
			Fields:        draft.Fields,
			Status:        model.ApplicationProcessing,
			PaymentRef:    reference,
		}
		if err := s.apps.Create(ctx, app); err != nil {
			// Платёж уже прошёл — сбой реестра не превращаем в отказ.
			// Слот не очищается, повторное подтверждение доведёт перенос.
			pendingFlushTotal.WithLabelValues("insert_failed").Inc()
			s.logger.Error("Платёж подтверждён, но вставка заявки не удалась",
				slog.String("reference", reference),
				slog.String("error", err.Error()),
			)
		} else {
			// Слот очищается ТОЛЬКО после успешной вставки
			if err := s.pending.Clear(ctx, email); err != nil {
				s.logger.Warn("Заявка создана, но pending-слот не очищен",
					slog.String("reference", reference),
					slog.String("error", err.Error()),
				)
			}
			pendingFlushTotal.WithLabelValues("flushed").Inc()
			result.Application = app
			result.RegistrySynced = true
		}

		if serviceTitle == "" {
			if offering, oerr := s.offerings.GetByID(ctx, draft.ServiceID); oerr == nil {
				serviceTitle = offering.Title
			} else {
				serviceTitle = draft.ServiceID
			}
		}

	case errors.Is(err, kv.ErrNotFound):
		// Слот пуст или истёк: платёж фиксируем, заявку не создаём
		pendingFlushTotal.WithLabelValues("empty").Inc()
		s.logger.Warn("Платёж подтверждён, но pending-слот пуст",
			slog.String("reference", reference),
		)

	default:
		// Состояние слота неизвестно: платёж фиксируем, перенос отложен
		pendingFlushTotal.WithLabelValues("slot_unavailable").Inc()
		s.logger.Error("Платёж подтверждён, но pending-слот недоступен",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
	}

	// Аудиторская запись платежа
	txn := &model.Transaction{
		ID:      uuid.New().String(),
		Client:  email,
		Service: serviceTitle,
		Amount:  verify.Amount / money.KoboPerNaira,
		Status:  verify.Status,
	}
	if err := s.txns.Create(ctx, txn); err != nil {
		s.logger.Error("Не удалось записать платёж в журнал транзакций",
			slog.String("reference", reference),
			slog.String("error", err.Error()),
		)
	} else {
		result.Transaction = txn
	}

	if sess != nil {
		sess.Status = model.CheckoutConfirmed
		if err := s.sessions.Put(ctx, sess); err != nil {
			s.logger.Warn("Не удалось сохранить статус подтверждённой сессии",
				slog.String("reference", reference),
				slog.String("error", err.Error()),
			)
		}
	}

	checkoutOutcomesTotal.WithLabelValues("confirmed").Inc()
	s.logger.Info("Платёж подтверждён",
		slog.String("reference", reference),
		slog.Bool("registry_synced", result.RegistrySynced),
	)
	return result, nil
}

// Session возвращает checkout-сессию по референсу.
func (s *CheckoutService) Session(ctx context.Context, reference string) (*model.CheckoutSession, error) {
	sess, err := s.sessions.Get(ctx, reference)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, fmt.Errorf("%w: checkout-сессия %s", ErrNotFound, reference)
		}
		return nil, err
	}
	return sess, nil
}
