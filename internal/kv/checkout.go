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

// CheckoutStore — checkout-сессии, ключ — референс платёжного провайдера.
type CheckoutStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCheckoutStore создаёт хранилище checkout-сессий.
func NewCheckoutStore(rdb *redis.Client, ttl time.Duration) *CheckoutStore {
	return &CheckoutStore{rdb: rdb, ttl: ttl}
}

func checkoutKey(reference string) string {
	return "checkout:" + reference
}

// Put записывает сессию. Повторная запись той же сессии (смена статуса)
// продлевает TTL — сессия живёт, пока по ней идёт работа.
func (s *CheckoutStore) Put(ctx context.Context, sess *model.CheckoutSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("ошибка сериализации checkout-сессии: %w", err)
	}

	if err := s.rdb.Set(ctx, checkoutKey(sess.Reference), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи checkout-сессии: %w", err)
	}
	return nil
}

// Get возвращает сессию по референсу или ErrNotFound.
func (s *CheckoutStore) Get(ctx context.Context, reference string) (*model.CheckoutSession, error) {
	data, err := s.rdb.Get(ctx, checkoutKey(reference)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения checkout-сессии: %w", err)
	}

	var sess model.CheckoutSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("ошибка десериализации checkout-сессии: %w", err)
	}
	return &sess, nil
}
