package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// ApplicationRepository — доступ к заявкам на регистрацию (таблица applications).
// Вставка возможна только с непустым payment_ref: строка заявки
// появляется в БД исключительно после подтверждения оплаты.
type ApplicationRepository interface {
	// Create вставляет подтверждённую заявку.
	Create(ctx context.Context, app *model.Application) error
	// List возвращает заявки; status — опциональный фильтр.
	List(ctx context.Context, status *string, limit, offset int) ([]*model.Application, error)
	// Count возвращает количество заявок под тем же фильтром.
	Count(ctx context.Context, status *string) (int, error)
	// GetByID возвращает заявку по UUID.
	GetByID(ctx context.Context, id string) (*model.Application, error)
	// GetByPaymentRef возвращает заявку по платёжному референсу.
	GetByPaymentRef(ctx context.Context, paymentRef string) (*model.Application, error)
	// ListByEmail возвращает заявки по email директора.
	ListByEmail(ctx context.Context, email string) ([]*model.Application, error)
	// UpdateStatus обновляет статус заявки.
	UpdateStatus(ctx context.Context, id, status string) error
}

// applicationRepo — реализация ApplicationRepository.
type applicationRepo struct {
	db DBTX
}

// NewApplicationRepository создаёт репозиторий заявок.
func NewApplicationRepository(db DBTX) ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `
	id, service_id, proposed_name_1, proposed_name_2,
	director_name, director_email, director_phone, address,
	fields, status, payment_ref, created_at, updated_at`

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	fields, err := json.Marshal(app.Fields)
	if err != nil {
		return fmt.Errorf("ошибка сериализации полей анкеты: %w", err)
	}

	query := `
		INSERT INTO applications (id, service_id, proposed_name_1, proposed_name_2,
			director_name, director_email, director_phone, address,
			fields, status, payment_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		app.ID, app.ServiceID, app.ProposedName1, app.ProposedName2,
		app.DirectorName, app.DirectorEmail, app.DirectorPhone, app.Address,
		fields, app.Status, app.PaymentRef,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: заявка с таким id уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания заявки: %w", err)
	}
	return nil
}

func (r *applicationRepo) List(ctx context.Context, status *string, limit, offset int) ([]*model.Application, error) {
	where := ""
	var args []any
	argNum := 1
	if status != nil {
		where = "WHERE status = $1"
		args = append(args, *status)
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM applications
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, applicationColumns, where, argNum, argNum+1)

	args = append(args, limit, offset)

	return r.queryApplications(ctx, query, args...)
}

func (r *applicationRepo) Count(ctx context.Context, status *string) (int, error) {
	query := `SELECT count(*) FROM applications`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта заявок: %w", err)
	}
	return count, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE id = $1`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}
	return app, nil
}

func (r *applicationRepo) GetByPaymentRef(ctx context.Context, paymentRef string) (*model.Application, error) {
	query := fmt.Sprintf(`SELECT %s FROM applications WHERE payment_ref = $1`, applicationColumns)

	app, err := scanApplication(r.db.QueryRow(ctx, query, paymentRef))
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения заявки по референсу: %w", err)
	}
	return app, nil
}

func (r *applicationRepo) ListByEmail(ctx context.Context, email string) ([]*model.Application, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM applications
		WHERE lower(director_email) = lower($1)
		ORDER BY created_at DESC`, applicationColumns)

	return r.queryApplications(ctx, query, email)
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE applications
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса заявки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// queryApplications выполняет запрос и читает все строки заявок.
func (r *applicationRepo) queryApplications(ctx context.Context, query string, args ...any) ([]*model.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	defer rows.Close()

	var apps []*model.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения заявки: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения заявок: %w", err)
	}
	return apps, nil
}

// scanApplication читает строку заявки, разбирая fields из JSONB.
func scanApplication(row rowScanner) (*model.Application, error) {
	app := &model.Application{}
	var fields []byte
	err := row.Scan(
		&app.ID, &app.ServiceID, &app.ProposedName1, &app.ProposedName2,
		&app.DirectorName, &app.DirectorEmail, &app.DirectorPhone, &app.Address,
		&fields, &app.Status, &app.PaymentRef, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &app.Fields); err != nil {
			return nil, fmt.Errorf("ошибка разбора полей анкеты: %w", err)
		}
	}
	return app, nil
}
