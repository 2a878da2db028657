package repository

import (
	"context"
	"fmt"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// TransactionRepository — аудиторские записи платежей (таблица transactions).
// Записи создаются один раз и не изменяются.
type TransactionRepository interface {
	// Create добавляет запись о платеже.
	Create(ctx context.Context, txn *model.Transaction) error
	// List возвращает записи в обратном хронологическом порядке.
	List(ctx context.Context, limit, offset int) ([]*model.Transaction, error)
	// Count возвращает общее количество записей.
	Count(ctx context.Context) (int, error)
}

// transactionRepo — реализация TransactionRepository.
type transactionRepo struct {
	db DBTX
}

// NewTransactionRepository создаёт репозиторий платёжных записей.
func NewTransactionRepository(db DBTX) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, txn *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, client, service, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		txn.ID, txn.Client, txn.Service, txn.Amount, txn.Status,
	).Scan(&txn.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: запись с таким id уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания платёжной записи: %w", err)
	}
	return nil
}

func (r *transactionRepo) List(ctx context.Context, limit, offset int) ([]*model.Transaction, error) {
	query := `
		SELECT id, client, service, amount, status, created_at
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения платёжных записей: %w", err)
	}
	defer rows.Close()

	var txns []*model.Transaction
	for rows.Next() {
		t := &model.Transaction{}
		if err := rows.Scan(&t.ID, &t.Client, &t.Service, &t.Amount, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения платёжной записи: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения платёжных записей: %w", err)
	}
	return txns, nil
}

func (r *transactionRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта платёжных записей: %w", err)
	}
	return count, nil
}
