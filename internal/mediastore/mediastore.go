// Пакет mediastore — хранение загружаемых медиафайлов (слайды,
// иллюстрации публикаций) на диске. Streaming-запись с подсчётом
// SHA-256 на лету и атомарным переименованием; раздача — статикой
// по публичному URL /media/{file}.
package mediastore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupportedMedia — расширение файла не входит в список допустимых.
var ErrUnsupportedMedia = errors.New("неподдерживаемый тип медиафайла")

// mediaTypes — допустимые расширения и соответствующий тип медиа.
var mediaTypes = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".webp": "image",
	".gif":  "image",
	".mp4":  "video",
	".webm": "video",
}

// Store — хранилище медиафайлов на диске.
type Store struct {
	// dataDir — корневая директория хранения (PM_MEDIA_DIR)
	dataDir string
	// baseURL — публичный базовый URL медиафайлов (без trailing slash)
	baseURL string
}

// SaveResult — результат сохранения медиафайла.
type SaveResult struct {
	// FileName — имя файла в dataDir
	FileName string
	// URL — публичный URL файла
	URL string
	// MediaType — тип медиа (image, video)
	MediaType string
	// Size — размер записанных данных в байтах
	Size int64
	// Checksum — SHA-256 хэш содержимого
	Checksum string
}

// New создаёт хранилище медиафайлов. Создаёт директорию, если её нет.
func New(dataDir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию медиа %s: %w", dataDir, err)
	}

	return &Store{
		dataDir: dataDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// MediaTypeFor возвращает тип медиа для имени файла или ErrUnsupportedMedia.
func MediaTypeFor(filename string) (string, error) {
	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, filepath.Ext(filename))
	}
	return mediaType, nil
}

// Save записывает данные из reader на диск.
// Паттерн: temp файл → запись + SHA-256 → fsync → atomic rename.
// При ошибке temp файл удаляется.
func (s *Store) Save(reader io.Reader, originalFilename string) (*SaveResult, error) {
	mediaType, err := MediaTypeFor(originalFilename)
	if err != nil {
		return nil, err
	}

	storageName := generateStorageName(originalFilename)
	fullPath := filepath.Join(s.dataDir, storageName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	// Streaming запись с одновременным подсчётом SHA-256
	hasher := sha256.New()
	tee := io.TeeReader(reader, hasher)

	size, err := io.Copy(f, tee)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка записи данных: %w", err)
	}

	// fsync для гарантии записи на диск
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	// Атомарный rename
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return &SaveResult{
		FileName:  storageName,
		URL:       s.baseURL + "/" + storageName,
		MediaType: mediaType,
		Size:      size,
		Checksum:  hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Delete удаляет медиафайл по публичному URL или имени файла.
// Возвращает nil, если файл уже не существует.
func (s *Store) Delete(urlOrName string) error {
	name := filepath.Base(urlOrName)

	err := os.Remove(filepath.Join(s.dataDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления медиафайла %s: %w", name, err)
	}
	return nil
}

// DataDir возвращает путь к директории медиафайлов.
func (s *Store) DataDir() string {
	return s.dataDir
}

// generateStorageName генерирует имя файла для хранения на диске.
// Формат: {name}_{timestamp}_{uuid}.{ext}
// Пример: hero_20260829150405_a1b2c3d4.jpg
func generateStorageName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	name := sanitize(strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename)))

	// Ограничиваем длину имени для предотвращения проблем с FS
	if len(name) > 50 {
		name = name[:50]
	}

	ts := time.Now().UTC().Format("20060102150405")
	uid := uuid.New().String()[:8] // Короткий UUID для уникальности

	return fmt.Sprintf("%s_%s_%s%s", name, ts, uid, ext)
}

// sanitize убирает небезопасные символы из строки для использования в имени файла.
// Оставляет только буквы, цифры, дефис и подчёркивание.
func sanitize(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "media"
	}
	return result.String()
}
