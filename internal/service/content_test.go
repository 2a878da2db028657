package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/mediastore"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// mockSlides — мок хранилища слайдов.
type mockSlides struct {
	byID      map[string]*model.Slide
	createErr error
}

func (m *mockSlides) Create(_ context.Context, slide *model.Slide) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byID == nil {
		m.byID = map[string]*model.Slide{}
	}
	m.byID[slide.ID] = slide
	return nil
}

func (m *mockSlides) List(_ context.Context, section *string) ([]*model.Slide, error) {
	var out []*model.Slide
	for _, s := range m.byID {
		if section != nil && s.Section != *section {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSlides) GetByID(_ context.Context, id string) (*model.Slide, error) {
	s, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (m *mockSlides) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// mockPosts — мок хранилища публикаций.
type mockPosts struct {
	byID      map[string]*model.Post
	createErr error
	listHits  int
	lastQ     *string
}

func (m *mockPosts) Create(_ context.Context, post *model.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.byID == nil {
		m.byID = map[string]*model.Post{}
	}
	m.byID[post.ID] = post
	return nil
}

func (m *mockPosts) List(_ context.Context, _, q *string, _, _ int) ([]*model.Post, error) {
	m.listHits++
	m.lastQ = q
	var out []*model.Post
	for _, p := range m.byID {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockPosts) Count(_ context.Context, _, _ *string) (int, error) {
	return len(m.byID), nil
}

func (m *mockPosts) GetByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockPosts) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func newContentFixture(t *testing.T) (*ContentService, *mockSlides, *mockPosts, string) {
	t.Helper()
	dir := t.TempDir()
	media, err := mediastore.New(dir, "https://rex360.ng/media/")
	if err != nil {
		t.Fatalf("mediastore.New() вернул ошибку: %v", err)
	}
	slides := &mockSlides{}
	posts := &mockPosts{}
	svc := NewContentService(slides, posts, media, testLogger())
	return svc, slides, posts, dir
}

// mediaFiles возвращает имена файлов в каталоге медиахранилища.
func mediaFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("не удалось прочитать каталог медиа: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// TestCreateSlide_Success — файл сохраняется, слайд создаётся.
func TestCreateSlide_Success(t *testing.T) {
	svc, slides, _, dir := newContentFixture(t)

	slide, err := svc.CreateSlide(context.Background(), "hero", "banner.png", strings.NewReader("png-данные"))
	if err != nil {
		t.Fatalf("CreateSlide() вернул ошибку: %v", err)
	}

	if slide.Section != "hero" {
		t.Errorf("Section = %q, ожидается hero", slide.Section)
	}
	if slide.MediaType != "image/png" {
		t.Errorf("MediaType = %q, ожидается image/png", slide.MediaType)
	}
	if !strings.HasPrefix(slide.MediaURL, "https://rex360.ng/media/") {
		t.Errorf("MediaURL = %q, ожидается префикс базового URL", slide.MediaURL)
	}
	if _, ok := slides.byID[slide.ID]; !ok {
		t.Error("слайд не сохранён в хранилище")
	}
	if len(mediaFiles(t, dir)) != 1 {
		t.Error("медиафайл не сохранён на диске")
	}
}

// TestCreateSlide_UnknownSection — неизвестная секция отклоняется до записи файла.
func TestCreateSlide_UnknownSection(t *testing.T) {
	svc, _, _, dir := newContentFixture(t)

	_, err := svc.CreateSlide(context.Background(), "footer", "banner.png", strings.NewReader("данные"))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ожидалась ErrValidation, получено %v", err)
	}
	if len(mediaFiles(t, dir)) != 0 {
		t.Error("файл сохранён для невалидной секции")
	}
}

// TestCreateSlide_UnsupportedMedia — неподдерживаемое расширение.
func TestCreateSlide_UnsupportedMedia(t *testing.T) {
	svc, _, _, _ := newContentFixture(t)

	_, err := svc.CreateSlide(context.Background(), "hero", "script.exe", strings.NewReader("данные"))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ожидалась ErrValidation, получено %v", err)
	}
}

// TestCreateSlide_DBFailureRemovesFile — при сбое вставки осиротевший файл удаляется.
func TestCreateSlide_DBFailureRemovesFile(t *testing.T) {
	svc, slides, _, dir := newContentFixture(t)
	slides.createErr = errors.New("обрыв соединения")

	_, err := svc.CreateSlide(context.Background(), "hero", "banner.png", strings.NewReader("данные"))
	if err == nil {
		t.Fatal("ожидалась ошибка, получен nil")
	}
	if len(mediaFiles(t, dir)) != 0 {
		t.Error("осиротевший файл не удалён после сбоя вставки")
	}
}

// TestListSlides_UnknownSection — неизвестная секция в фильтре.
func TestListSlides_UnknownSection(t *testing.T) {
	svc, _, _, _ := newContentFixture(t)

	bad := "sidebar"
	_, err := svc.ListSlides(context.Background(), &bad)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ожидалась ErrValidation, получено %v", err)
	}
}

// TestDeleteSlide — слайд и его файл удаляются.
func TestDeleteSlide(t *testing.T) {
	svc, slides, _, dir := newContentFixture(t)

	slide, err := svc.CreateSlide(context.Background(), "hero", "banner.png", strings.NewReader("данные"))
	if err != nil {
		t.Fatalf("CreateSlide() вернул ошибку: %v", err)
	}

	if err := svc.DeleteSlide(context.Background(), slide.ID); err != nil {
		t.Fatalf("DeleteSlide() вернул ошибку: %v", err)
	}
	if _, ok := slides.byID[slide.ID]; ok {
		t.Error("слайд не удалён из хранилища")
	}
	if len(mediaFiles(t, dir)) != 0 {
		t.Error("медиафайл не удалён с диска")
	}
}

// TestDeleteSlide_NotFound — удаление неизвестного слайда.
func TestDeleteSlide_NotFound(t *testing.T) {
	svc, _, _, _ := newContentFixture(t)

	err := svc.DeleteSlide(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestCreatePost_WithoutMedia — публикация без иллюстрации.
func TestCreatePost_WithoutMedia(t *testing.T) {
	svc, _, posts, _ := newContentFixture(t)

	post, err := svc.CreatePost(context.Background(), "  Новые тарифы CAC  ", "Анонс", "CAC News", "", nil)
	if err != nil {
		t.Fatalf("CreatePost() вернул ошибку: %v", err)
	}

	if post.Title != "Новые тарифы CAC" {
		t.Errorf("Title = %q, ожидается обрезанный заголовок", post.Title)
	}
	if post.MediaURL != nil {
		t.Error("MediaURL должен быть nil для публикации без иллюстрации")
	}
	if _, ok := posts.byID[post.ID]; !ok {
		t.Error("публикация не сохранена")
	}
}

// TestCreatePost_WithMedia — публикация с иллюстрацией.
func TestCreatePost_WithMedia(t *testing.T) {
	svc, _, _, dir := newContentFixture(t)

	post, err := svc.CreatePost(context.Background(), "Заголовок", "", "Business Tips", "cover.jpg", strings.NewReader("jpg-данные"))
	if err != nil {
		t.Fatalf("CreatePost() вернул ошибку: %v", err)
	}
	if post.MediaURL == nil || post.MediaType == nil {
		t.Fatal("MediaURL/MediaType не заполнены")
	}
	if *post.MediaType != "image/jpeg" {
		t.Errorf("MediaType = %q, ожидается image/jpeg", *post.MediaType)
	}
	if len(mediaFiles(t, dir)) != 1 {
		t.Error("медиафайл не сохранён на диске")
	}
}

// TestCreatePost_Validation — обязательные поля публикации.
func TestCreatePost_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		category string
	}{
		{"пустой заголовок", "  ", "CAC News"},
		{"пустая категория", "Заголовок", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newContentFixture(t)

			_, err := svc.CreatePost(context.Background(), tt.title, "", tt.category, "", nil)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ожидалась ErrValidation, получено %v", err)
			}
		})
	}
}

// TestCreatePost_DBFailureRemovesFile — сбой вставки убирает сохранённый файл.
func TestCreatePost_DBFailureRemovesFile(t *testing.T) {
	svc, _, posts, dir := newContentFixture(t)
	posts.createErr = errors.New("обрыв соединения")

	_, err := svc.CreatePost(context.Background(), "Заголовок", "", "CAC News", "cover.jpg", strings.NewReader("данные"))
	if err == nil {
		t.Fatal("ожидалась ошибка, получен nil")
	}
	if len(mediaFiles(t, dir)) != 0 {
		t.Error("осиротевший файл не удалён после сбоя вставки")
	}
}

// TestListPosts_BlankQueryDropped — пробельный поисковый запрос не передаётся в БД.
func TestListPosts_BlankQueryDropped(t *testing.T) {
	svc, _, posts, _ := newContentFixture(t)

	blank := "   "
	if _, err := svc.ListPosts(context.Background(), nil, &blank, 10, 0); err != nil {
		t.Fatalf("ListPosts() вернул ошибку: %v", err)
	}
	if posts.lastQ != nil {
		t.Errorf("q = %q, ожидается nil для пробельного запроса", *posts.lastQ)
	}
}

// TestDeletePost — публикация и её файл удаляются.
func TestDeletePost(t *testing.T) {
	svc, _, posts, dir := newContentFixture(t)

	post, err := svc.CreatePost(context.Background(), "Заголовок", "", "CAC News", "cover.jpg", strings.NewReader("данные"))
	if err != nil {
		t.Fatalf("CreatePost() вернул ошибку: %v", err)
	}

	if err := svc.DeletePost(context.Background(), post.ID); err != nil {
		t.Fatalf("DeletePost() вернул ошибку: %v", err)
	}
	if _, ok := posts.byID[post.ID]; ok {
		t.Error("публикация не удалена")
	}
	if len(mediaFiles(t, dir)) != 0 {
		t.Error("медиафайл публикации не удалён")
	}
}

// TestDeletePost_NotFound — удаление неизвестной публикации.
func TestDeletePost_NotFound(t *testing.T) {
	svc, _, _, _ := newContentFixture(t)

	err := svc.DeletePost(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}
