package repository

import (
	"context"
	"fmt"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// SlideRepository — доступ к слайдам маркетинговых каруселей (таблица slides).
type SlideRepository interface {
	// Create добавляет слайд в секцию.
	Create(ctx context.Context, slide *model.Slide) error
	// List возвращает слайды; section — опциональный фильтр по секции.
	List(ctx context.Context, section *string) ([]*model.Slide, error)
	// GetByID возвращает слайд по UUID.
	GetByID(ctx context.Context, id string) (*model.Slide, error)
	// Delete удаляет слайд.
	Delete(ctx context.Context, id string) error
}

// slideRepo — реализация SlideRepository.
type slideRepo struct {
	db DBTX
}

// NewSlideRepository создаёт репозиторий слайдов.
func NewSlideRepository(db DBTX) SlideRepository {
	return &slideRepo{db: db}
}

func (r *slideRepo) Create(ctx context.Context, slide *model.Slide) error {
	query := `
		INSERT INTO slides (id, section, media_url, media_type)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		slide.ID, slide.Section, slide.MediaURL, slide.MediaType,
	).Scan(&slide.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: слайд с таким id уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания слайда: %w", err)
	}
	return nil
}

func (r *slideRepo) List(ctx context.Context, section *string) ([]*model.Slide, error) {
	query := `
		SELECT id, section, media_url, media_type, created_at
		FROM slides`
	var args []any
	if section != nil {
		query += ` WHERE section = $1`
		args = append(args, *section)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения слайдов: %w", err)
	}
	defer rows.Close()

	var slides []*model.Slide
	for rows.Next() {
		s := &model.Slide{}
		if err := rows.Scan(&s.ID, &s.Section, &s.MediaURL, &s.MediaType, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения слайда: %w", err)
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения слайдов: %w", err)
	}
	return slides, nil
}

func (r *slideRepo) GetByID(ctx context.Context, id string) (*model.Slide, error) {
	query := `
		SELECT id, section, media_url, media_type, created_at
		FROM slides
		WHERE id = $1`

	s := &model.Slide{}
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Section, &s.MediaURL, &s.MediaType, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения слайда: %w", err)
	}
	return s, nil
}

func (r *slideRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления слайда: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
