package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// PendingStore — pending-слоты заявок.
// На каждый email существует не более одного слота: повторная запись
// перезаписывает предыдущий draft. Слот очищается только после
// успешной вставки заявки в БД; до подтверждения оплаты строка
// заявки не создаётся.
type PendingStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewPendingStore создаёт хранилище pending-слотов.
func NewPendingStore(rdb *redis.Client, ttl time.Duration) *PendingStore {
	return &PendingStore{rdb: rdb, ttl: ttl}
}

// pendingKey возвращает ключ слота для email.
func pendingKey(email string) string {
	return "pending_submission:" + strings.ToLower(strings.TrimSpace(email))
}

// Stage записывает draft в слот, перезаписывая предыдущий.
// TTL отсчитывается заново от момента записи.
func (s *PendingStore) Stage(ctx context.Context, draft *model.ApplicationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("ошибка сериализации draft: %w", err)
	}

	if err := s.rdb.Set(ctx, pendingKey(draft.DirectorEmail), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи pending-слота: %w", err)
	}
	return nil
}

// Get возвращает draft из слота или ErrNotFound, если слот пуст.
// Слот при чтении НЕ очищается: очистка выполняется отдельным
// вызовом Clear после успешной вставки заявки в БД.
func (s *PendingStore) Get(ctx context.Context, email string) (*model.ApplicationDraft, error) {
	data, err := s.rdb.Get(ctx, pendingKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения pending-слота: %w", err)
	}

	var draft model.ApplicationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("ошибка десериализации draft: %w", err)
	}
	return &draft, nil
}

// Clear удаляет слот. Отсутствие слота не считается ошибкой.
func (s *PendingStore) Clear(ctx context.Context, email string) error {
	if err := s.rdb.Del(ctx, pendingKey(email)).Err(); err != nil {
		return fmt.Errorf("ошибка очистки pending-слота: %w", err)
	}
	return nil
}
