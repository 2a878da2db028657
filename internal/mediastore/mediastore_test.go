package mediastore

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestStore создаёт хранилище во временной директории.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir(), "https://rex360.ng/media/")
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}
	return store
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "media")

	store, err := New(dir, "https://rex360.ng/media")
	if err != nil {
		t.Fatalf("New() вернул ошибку: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("директория не создана: %v", err)
	}
	if !info.IsDir() {
		t.Error("путь существует, но не является директорией")
	}
	if store.DataDir() != dir {
		t.Errorf("DataDir() = %q, ожидается %q", store.DataDir(), dir)
	}
}

func TestSave_Image(t *testing.T) {
	store := newTestStore(t)
	content := []byte("fake image bytes")

	result, err := store.Save(strings.NewReader(string(content)), "hero.jpg")
	if err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}

	if result.MediaType != "image" {
		t.Errorf("MediaType = %q, ожидается image", result.MediaType)
	}
	if result.Size != int64(len(content)) {
		t.Errorf("Size = %d, ожидается %d", result.Size, len(content))
	}
	if !strings.HasPrefix(result.FileName, "hero_") || !strings.HasSuffix(result.FileName, ".jpg") {
		t.Errorf("FileName = %q, ожидается формат hero_{ts}_{uid}.jpg", result.FileName)
	}
	if result.URL != "https://rex360.ng/media/"+result.FileName {
		t.Errorf("URL = %q, не соответствует FileName", result.URL)
	}

	// Проверяем содержимое и контрольную сумму
	saved, err := os.ReadFile(filepath.Join(store.DataDir(), result.FileName))
	if err != nil {
		t.Fatalf("файл не записан: %v", err)
	}
	if string(saved) != string(content) {
		t.Error("содержимое файла не совпадает с записанным")
	}
	sum := sha256.Sum256(content)
	if result.Checksum != hex.EncodeToString(sum[:]) {
		t.Errorf("Checksum = %q, не совпадает с SHA-256 содержимого", result.Checksum)
	}

	// Временный файл не должен остаться
	entries, _ := os.ReadDir(store.DataDir())
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("остался временный файл %s", e.Name())
		}
	}
}

func TestSave_Video(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Save(strings.NewReader("video data"), "promo.mp4")
	if err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}
	if result.MediaType != "video" {
		t.Errorf("MediaType = %q, ожидается video", result.MediaType)
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	store := newTestStore(t)

	tests := []string{"report.pdf", "script.sh", "noextension", "archive.zip"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := store.Save(strings.NewReader("data"), name)
			if !errors.Is(err, ErrUnsupportedMedia) {
				t.Errorf("Save(%q): ожидалась ErrUnsupportedMedia, получено %v", name, err)
			}
		})
	}
}

func TestSave_SanitizesName(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Save(strings.NewReader("data"), "../../etc/passwd один два.png")
	if err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}
	if strings.ContainsAny(result.FileName, "/\\ ") {
		t.Errorf("FileName %q содержит небезопасные символы", result.FileName)
	}
	// Файл лежит строго внутри dataDir
	if _, err := os.Stat(filepath.Join(store.DataDir(), result.FileName)); err != nil {
		t.Errorf("файл не найден в dataDir: %v", err)
	}
}

func TestSave_UniqueNames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(strings.NewReader("a"), "slide.png")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save(strings.NewReader("b"), "slide.png")
	if err != nil {
		t.Fatal(err)
	}
	if first.FileName == second.FileName {
		t.Errorf("повторная загрузка перезаписала файл: %q", first.FileName)
	}
}

func TestMediaTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"a.jpg", "image", false},
		{"a.JPEG", "image", false},
		{"a.png", "image", false},
		{"a.webp", "image", false},
		{"a.gif", "image", false},
		{"a.mp4", "video", false},
		{"a.webm", "video", false},
		{"a.txt", "", true},
		{"a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := MediaTypeFor(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Errorf("MediaTypeFor(%q) не вернул ошибку", tt.filename)
				}
				return
			}
			if err != nil {
				t.Fatalf("MediaTypeFor(%q) вернул ошибку: %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("MediaTypeFor(%q) = %q, хотели %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	result, err := store.Save(strings.NewReader("data"), "slide.png")
	if err != nil {
		t.Fatal(err)
	}

	// Удаление по публичному URL
	if err := store.Delete(result.URL); err != nil {
		t.Fatalf("Delete() вернул ошибку: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.DataDir(), result.FileName)); !os.IsNotExist(err) {
		t.Error("файл не удалён")
	}

	// Повторное удаление — no-op
	if err := store.Delete(result.URL); err != nil {
		t.Errorf("повторный Delete() вернул ошибку: %v", err)
	}
}
