// content.go — маркетинговый контент: слайды каруселей и публикации.
// Медиафайлы сохраняются в mediastore, метаданные — в PostgreSQL.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/mediastore"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// Секции слайдов на клиентском сайте.
var validSections = map[string]bool{
	"hero":         true,
	"services":     true,
	"testimonials": true,
}

// ContentService — операции со слайдами и публикациями.
type ContentService struct {
	slides repository.SlideRepository
	posts  repository.PostRepository
	media  *mediastore.Store
	logger *slog.Logger
}

// NewContentService создаёт сервис контента.
func NewContentService(
	slides repository.SlideRepository,
	posts repository.PostRepository,
	media *mediastore.Store,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		slides: slides,
		posts:  posts,
		media:  media,
		logger: logger.With(slog.String("component", "content_service")),
	}
}

// --- Слайды ---

// ListSlides возвращает слайды; section — опциональный фильтр.
func (s *ContentService) ListSlides(ctx context.Context, section *string) ([]*model.Slide, error) {
	if section != nil && !validSections[*section] {
		return nil, fmt.Errorf("%w: неизвестная секция %q", ErrValidation, *section)
	}
	return s.slides.List(ctx, section)
}

// CreateSlide сохраняет медиафайл и создаёт слайд в секции.
func (s *ContentService) CreateSlide(ctx context.Context, section, filename string, media io.Reader) (*model.Slide, error) {
	if !validSections[section] {
		return nil, fmt.Errorf("%w: неизвестная секция %q", ErrValidation, section)
	}

	saved, err := s.media.Save(media, filename)
	if err != nil {
		if errors.Is(err, mediastore.ErrUnsupportedMedia) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("сохранение медиафайла: %w", err)
	}

	slide := &model.Slide{
		ID:        uuid.New().String(),
		Section:   section,
		MediaURL:  saved.URL,
		MediaType: saved.MediaType,
	}
	if err := s.slides.Create(ctx, slide); err != nil {
		// Осиротевший файл убираем сразу
		_ = s.media.Delete(saved.FileName)
		return nil, err
	}

	s.logger.Info("Слайд создан",
		slog.String("slide_id", slide.ID),
		slog.String("section", section),
		slog.Int64("size", saved.Size),
	)
	return slide, nil
}

// DeleteSlide удаляет слайд и его медиафайл.
func (s *ContentService) DeleteSlide(ctx context.Context, id string) error {
	slide, err := s.slides.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: слайд %s", ErrNotFound, id)
		}
		return err
	}

	if err := s.slides.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: слайд %s", ErrNotFound, id)
		}
		return err
	}

	// Файл удаляем после строки: потерянный файл безвреднее битой ссылки
	if err := s.media.Delete(slide.MediaURL); err != nil {
		s.logger.Warn("Не удалось удалить медиафайл слайда",
			slog.String("slide_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("Слайд удалён", slog.String("slide_id", id))
	return nil
}

// --- Публикации ---

// PostPage — страница публикаций с общим количеством.
type PostPage struct {
	Posts []*model.Post
	Total int
}

// ListPosts возвращает страницу публикаций.
// category — фильтр по категории, q — поиск по заголовку и анонсу.
func (s *ContentService) ListPosts(ctx context.Context, category, q *string, limit, offset int) (*PostPage, error) {
	if q != nil {
		trimmed := strings.TrimSpace(*q)
		if trimmed == "" {
			q = nil
		} else {
			q = &trimmed
		}
	}

	posts, err := s.posts.List(ctx, category, q, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.posts.Count(ctx, category, q)
	if err != nil {
		return nil, err
	}
	return &PostPage{Posts: posts, Total: total}, nil
}

// GetPost возвращает публикацию по UUID.
func (s *ContentService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: публикация %s", ErrNotFound, id)
		}
		return nil, err
	}
	return post, nil
}

// CreatePost создаёт публикацию. media может быть nil — публикация без иллюстрации.
func (s *ContentService) CreatePost(ctx context.Context, title, excerpt, category, filename string, media io.Reader) (*model.Post, error) {
	title = strings.TrimSpace(title)
	category = strings.TrimSpace(category)
	if title == "" {
		return nil, fmt.Errorf("%w: title обязателен", ErrValidation)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category обязательна", ErrValidation)
	}

	post := &model.Post{
		ID:       uuid.New().String(),
		Title:    title,
		Excerpt:  strings.TrimSpace(excerpt),
		Category: category,
	}

	var savedName string
	if media != nil {
		saved, err := s.media.Save(media, filename)
		if err != nil {
			if errors.Is(err, mediastore.ErrUnsupportedMedia) {
				return nil, fmt.Errorf("%w: %v", ErrValidation, err)
			}
			return nil, fmt.Errorf("сохранение медиафайла: %w", err)
		}
		savedName = saved.FileName
		post.MediaURL = &saved.URL
		post.MediaType = &saved.MediaType
	}

	if err := s.posts.Create(ctx, post); err != nil {
		if savedName != "" {
			_ = s.media.Delete(savedName)
		}
		return nil, err
	}

	s.logger.Info("Публикация создана",
		slog.String("post_id", post.ID),
		slog.String("category", category),
	)
	return post, nil
}

// DeletePost удаляет публикацию и её медиафайл, если он был.
func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: публикация %s", ErrNotFound, id)
		}
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: публикация %s", ErrNotFound, id)
		}
		return err
	}

	if post.MediaURL != nil {
		if err := s.media.Delete(*post.MediaURL); err != nil {
			s.logger.Warn("Не удалось удалить медиафайл публикации",
				slog.String("post_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("Публикация удалена", slog.String("post_id", id))
	return nil
}
