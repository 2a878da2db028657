package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// PostRepository — доступ к публикациям блога/новостей (таблица posts).
type PostRepository interface {
	// Create добавляет публикацию.
	Create(ctx context.Context, post *model.Post) error
	// List возвращает публикации: category — фильтр по категории,
	// q — подстрочный поиск по заголовку и анонсу (без учёта регистра).
	List(ctx context.Context, category, q *string, limit, offset int) ([]*model.Post, error)
	// Count возвращает количество публикаций под теми же фильтрами.
	Count(ctx context.Context, category, q *string) (int, error)
	// GetByID возвращает публикацию по UUID.
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// Delete удаляет публикацию.
	Delete(ctx context.Context, id string) error
}

// postRepo — реализация PostRepository.
type postRepo struct {
	db DBTX
}

// NewPostRepository создаёт репозиторий публикаций.
func NewPostRepository(db DBTX) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, title, excerpt, category, media_url, media_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Excerpt, post.Category, post.MediaURL, post.MediaType,
	).Scan(&post.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: публикация с таким id уже существует", ErrConflict)
		}
		return fmt.Errorf("ошибка создания публикации: %w", err)
	}
	return nil
}

// postFilters строит WHERE-условия для фильтров публикаций.
func postFilters(category, q *string) (where string, args []any) {
	var conditions []string
	argNum := 1

	if category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argNum))
		args = append(args, *category)
		argNum++
	}
	if q != nil {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", argNum, argNum))
		args = append(args, "%"+*q+"%")
	}

	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func (r *postRepo) List(ctx context.Context, category, q *string, limit, offset int) ([]*model.Post, error) {
	where, args := postFilters(category, q)
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT id, title, excerpt, category, media_url, media_type, created_at
		FROM posts
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения публикаций: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p := &model.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Excerpt, &p.Category, &p.MediaURL, &p.MediaType, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения публикации: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения публикаций: %w", err)
	}
	return posts, nil
}

func (r *postRepo) Count(ctx context.Context, category, q *string) (int, error) {
	where, args := postFilters(category, q)

	query := fmt.Sprintf(`SELECT count(*) FROM posts %s`, where)

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта публикаций: %w", err)
	}
	return count, nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
		SELECT id, title, excerpt, category, media_url, media_type, created_at
		FROM posts
		WHERE id = $1`

	p := &model.Post{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Excerpt, &p.Category, &p.MediaURL, &p.MediaType, &p.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения публикации: %w", err)
	}
	return p, nil
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления публикации: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
