package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResetStore — одноразовые токены восстановления пароля.
type ResetStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResetStore создаёт хранилище токенов восстановления пароля.
func NewResetStore(rdb *redis.Client, ttl time.Duration) *ResetStore {
	return &ResetStore{rdb: rdb, ttl: ttl}
}

func resetKey(token string) string {
	return "pwreset:" + token
}

// Create записывает токен восстановления, связанный с email.
func (s *ResetStore) Create(ctx context.Context, token, email string) error {
	if err := s.rdb.Set(ctx, resetKey(token), email, s.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи токена восстановления: %w", err)
	}
	return nil
}

// Consume атомарно читает и удаляет токен, возвращая связанный email.
// Повторное использование токена возвращает ErrNotFound.
func (s *ResetStore) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.rdb.GetDel(ctx, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения токена восстановления: %w", err)
	}
	return email, nil
}
