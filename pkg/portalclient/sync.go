// sync.go — контроллер синхронизации именованных коллекций.
// Все коллекции загружаются параллельно, состояние публикуется
// только после завершения всех загрузок. Неудачная загрузка не
// затирает предыдущее значение коллекции (stale-over-empty).
package portalclient

import (
	"context"
	"log/slog"
	"sync"
)

// Fetcher — загрузчик одной коллекции.
type Fetcher func(ctx context.Context) (any, error)

// Notice — нефатальное замечание одной синхронизации.
type Notice struct {
	// Collection — имя коллекции
	Collection string
	// Err — ошибка загрузки
	Err error
}

// SyncResult — итог одной синхронизации.
type SyncResult struct {
	// Notices — замечания по неудачным коллекциям (пусто при полном успехе)
	Notices []Notice
}

// fetcherEntry — зарегистрированный загрузчик.
type fetcherEntry struct {
	fetch  Fetcher
	authed bool
}

// SyncController — синхронизация набора именованных коллекций.
type SyncController struct {
	client *Client
	logger *slog.Logger

	mu       sync.RWMutex
	fetchers map[string]fetcherEntry
	state    map[string]any
}

// NewSyncController создаёт контроллер синхронизации.
func NewSyncController(client *Client, logger *slog.Logger) *SyncController {
	return &SyncController{
		client:   client,
		logger:   logger.With(slog.String("component", "sync_controller")),
		fetchers: make(map[string]fetcherEntry),
		state:    make(map[string]any),
	}
}

// Register регистрирует загрузчик коллекции. authed помечает
// коллекции, требующие сессии: их наличие заставляет Sync дождаться
// разрешения сессии до начала загрузки.
func (sc *SyncController) Register(name string, authed bool, fetch Fetcher) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.fetchers[name] = fetcherEntry{fetch: fetch, authed: authed}
}

// State возвращает последнее опубликованное значение коллекции.
func (sc *SyncController) State(name string) (any, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	v, ok := sc.state[name]
	return v, ok
}

// Sync загружает все коллекции параллельно и публикует состояние
// после завершения всех загрузок. Повторный вызов идемпотентен:
// успешные коллекции перезаписываются свежими данными, неудачные
// сохраняют предыдущее значение и попадают в Notices.
func (sc *SyncController) Sync(ctx context.Context) (*SyncResult, error) {
	sc.mu.RLock()
	entries := make(map[string]fetcherEntry, len(sc.fetchers))
	needAuth := false
	for name, entry := range sc.fetchers {
		entries[name] = entry
		if entry.authed {
			needAuth = true
		}
	}
	sc.mu.RUnlock()

	// Авторизованные коллекции загружаются только после разрешения
	// сессии: данные никогда не приходят раньше идентичности
	if needAuth {
		if err := sc.client.Resolve(ctx); err != nil {
			return nil, err
		}
	}

	type outcome struct {
		name  string
		value any
		err   error
	}

	results := make(chan outcome, len(entries))
	var wg sync.WaitGroup
	for name, entry := range entries {
		wg.Add(1)
		go func(name string, entry fetcherEntry) {
			defer wg.Done()
			value, err := entry.fetch(ctx)
			results <- outcome{name: name, value: value, err: err}
		}(name, entry)
	}
	wg.Wait()
	close(results)

	// Публикация состояния строго после join всех загрузок
	result := &SyncResult{}
	sc.mu.Lock()
	for out := range results {
		if out.err != nil {
			sc.logger.Warn("Коллекция не синхронизирована, оставлено предыдущее значение",
				slog.String("collection", out.name),
				slog.String("error", out.err.Error()),
			)
			result.Notices = append(result.Notices, Notice{Collection: out.name, Err: out.err})
			continue
		}
		sc.state[out.name] = out.value
	}
	sc.mu.Unlock()

	return result, nil
}
