package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// OfferingRepository — доступ к каталогу услуг (таблица service_offerings).
type OfferingRepository interface {
	// List возвращает весь каталог в порядке position.
	List(ctx context.Context) ([]*model.ServiceOffering, error)
	// GetByID возвращает услугу по слагу.
	GetByID(ctx context.Context, id string) (*model.ServiceOffering, error)
	// UpdatePricing обновляет цену и старую цену услуги.
	UpdatePricing(ctx context.Context, id, price string, originalPrice *string) error
}

// offeringRepo — реализация OfferingRepository.
type offeringRepo struct {
	db DBTX
}

// NewOfferingRepository создаёт репозиторий каталога услуг.
func NewOfferingRepository(db DBTX) OfferingRepository {
	return &offeringRepo{db: db}
}

func (r *offeringRepo) List(ctx context.Context) ([]*model.ServiceOffering, error) {
	query := `
		SELECT id, title, price, original_price, description, form_schema, position,
			created_at, updated_at
		FROM service_offerings
		ORDER BY position, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения каталога услуг: %w", err)
	}
	defer rows.Close()

	var offerings []*model.ServiceOffering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога услуг: %w", err)
	}
	return offerings, nil
}

func (r *offeringRepo) GetByID(ctx context.Context, id string) (*model.ServiceOffering, error) {
	query := `
		SELECT id, title, price, original_price, description, form_schema, position,
			created_at, updated_at
		FROM service_offerings
		WHERE id = $1`

	o, err := scanOffering(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения услуги: %w", err)
	}
	return o, nil
}

func (r *offeringRepo) UpdatePricing(ctx context.Context, id, price string, originalPrice *string) error {
	query := `
		UPDATE service_offerings
		SET price = $2, original_price = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, price, originalPrice)
	if err != nil {
		return fmt.Errorf("ошибка обновления цены услуги: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner — общий интерфейс pgx.Row и pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOffering читает строку услуги, разбирая form_schema из JSONB.
func scanOffering(row rowScanner) (*model.ServiceOffering, error) {
	o := &model.ServiceOffering{}
	var schema []byte
	err := row.Scan(
		&o.ID, &o.Title, &o.Price, &o.OriginalPrice, &o.Description, &schema,
		&o.Position, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(schema, &o.FormSchema); err != nil {
		return nil, fmt.Errorf("ошибка разбора form_schema услуги %s: %w", o.ID, err)
	}
	return o, nil
}
