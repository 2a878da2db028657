// transactions.go — журнал платежей back-office.
// Основной источник записей — подтверждение checkout; ручное
// добавление оставлено для платежей, проведённых вне портала.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// TransactionService — операции с журналом платежей.
type TransactionService struct {
	txns   repository.TransactionRepository
	logger *slog.Logger
}

// NewTransactionService создаёт сервис журнала платежей.
func NewTransactionService(txns repository.TransactionRepository, logger *slog.Logger) *TransactionService {
	return &TransactionService{
		txns:   txns,
		logger: logger.With(slog.String("component", "transaction_service")),
	}
}

// List возвращает страницу журнала в обратном хронологическом порядке.
func (s *TransactionService) List(ctx context.Context, limit, offset int) ([]*model.Transaction, int, error) {
	txns, err := s.txns.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.txns.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// Record добавляет запись о платеже, проведённом вне портала.
func (s *TransactionService) Record(ctx context.Context, client, serviceTitle string, amount int64, status string) (*model.Transaction, error) {
	client = strings.TrimSpace(client)
	serviceTitle = strings.TrimSpace(serviceTitle)
	if client == "" {
		return nil, fmt.Errorf("%w: client обязателен", ErrValidation)
	}
	if serviceTitle == "" {
		return nil, fmt.Errorf("%w: service обязателен", ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount должен быть положительным", ErrValidation)
	}
	if status == "" {
		status = "success"
	}

	txn := &model.Transaction{
		ID:      uuid.New().String(),
		Client:  client,
		Service: serviceTitle,
		Amount:  amount,
		Status:  status,
	}
	if err := s.txns.Create(ctx, txn); err != nil {
		return nil, err
	}

	s.logger.Info("Платёж добавлен в журнал вручную",
		slog.String("transaction_id", txn.ID),
		slog.Int64("amount", amount),
	)
	return txn, nil
}
