package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
)

// SessionStore — refresh-сессии.
// Ключ — сам refresh-токен; дополнительно ведётся индекс токенов
// по учётной записи для массового отзыва при смене пароля.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionStore создаёт хранилище refresh-сессий.
func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func sessionIndexKey(accountID string) string {
	return "session_index:" + accountID
}

// Create записывает новую refresh-сессию и добавляет токен в индекс учётной записи.
func (s *SessionStore) Create(ctx context.Context, token string, sess *model.RefreshSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("ошибка сериализации refresh-сессии: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(token), data, s.ttl)
	pipe.SAdd(ctx, sessionIndexKey(sess.AccountID), token)
	// Индекс живёт не дольше самой длинной сессии
	pipe.Expire(ctx, sessionIndexKey(sess.AccountID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ошибка записи refresh-сессии: %w", err)
	}
	return nil
}

// Get возвращает refresh-сессию по токену или ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (*model.RefreshSession, error) {
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения refresh-сессии: %w", err)
	}

	var sess model.RefreshSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("ошибка десериализации refresh-сессии: %w", err)
	}
	return &sess, nil
}

// Delete отзывает одну refresh-сессию.
// Отсутствие токена не считается ошибкой: sign-out идемпотентен.
func (s *SessionStore) Delete(ctx context.Context, accountID, token string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, sessionIndexKey(accountID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ошибка удаления refresh-сессии: %w", err)
	}
	return nil
}

// RevokeAll отзывает все refresh-сессии учётной записи.
// Используется при смене пароля.
func (s *SessionStore) RevokeAll(ctx context.Context, accountID string) error {
	tokens, err := s.rdb.SMembers(ctx, sessionIndexKey(accountID)).Result()
	if err != nil {
		return fmt.Errorf("ошибка чтения индекса сессий: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(t))
	}
	keys = append(keys, sessionIndexKey(accountID))

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("ошибка отзыва сессий: %w", err)
	}
	return nil
}
