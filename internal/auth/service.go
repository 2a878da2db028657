package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/domain/role"
	"github.com/mstechy/gorex360/portal-module/internal/kv"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

// Ошибки аутентификации.
var (
	// ErrInvalidCredentials — неверная пара email/пароль.
	// Намеренно не различает "нет учётной записи" и "неверный пароль".
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	// ErrInvalidSession — refresh-токен не найден, истёк или отозван.
	ErrInvalidSession = errors.New("недействительная сессия")
	// ErrInvalidResetToken — токен восстановления не найден, истёк или уже использован.
	ErrInvalidResetToken = errors.New("недействительный токен восстановления")
	// ErrWeakPassword — пароль не проходит минимальные требования.
	ErrWeakPassword = errors.New("пароль должен содержать не менее 8 символов")
)

// minPasswordLen — минимальная длина пароля.
const minPasswordLen = 8

// AccountRepository — доступ к учётным записям.
// Реализуется repository.AccountRepository.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// ResetNotifier — отправка письма восстановления пароля.
// Реализуется notify.Mailer.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// SessionStore — refresh-сессии. Реализуется kv.SessionStore.
type SessionStore interface {
	Create(ctx context.Context, token string, sess *model.RefreshSession) error
	Get(ctx context.Context, token string) (*model.RefreshSession, error)
	Delete(ctx context.Context, accountID, token string) error
	RevokeAll(ctx context.Context, accountID string) error
}

// ResetStore — одноразовые токены восстановления пароля.
// Реализуется kv.ResetStore.
type ResetStore interface {
	Create(ctx context.Context, token, email string) error
	Consume(ctx context.Context, token string) (string, error)
}

// TokenPair — результат успешного входа или обновления сессии.
type TokenPair struct {
	// AccessToken — подписанный JWT
	AccessToken string
	// ExpiresAt — момент истечения access-токена
	ExpiresAt time.Time
	// RefreshToken — opaque-токен refresh-сессии
	RefreshToken string
	// Email — email учётной записи
	Email string
	// Role — роль, зашитая в access-токен
	Role string
}

// Service — аутентификация и управление сессиями.
type Service struct {
	accounts AccountRepository
	sessions SessionStore
	resets   ResetStore
	issuer   *Issuer
	notifier ResetNotifier
	logger   *slog.Logger
}

// NewService создаёт сервис аутентификации.
func NewService(
	accounts AccountRepository,
	sessions SessionStore,
	resets ResetStore,
	issuer *Issuer,
	notifier ResetNotifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		resets:   resets,
		issuer:   issuer,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "auth_service")),
	}
}

// SignIn проверяет пару email/пароль и выпускает пару токенов.
func (s *Service) SignIn(ctx context.Context, email, password string) (*TokenPair, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("поиск учётной записи: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Вход выполнен",
		slog.String("account_id", account.ID),
		slog.String("role", pair.Role),
	)
	return pair, nil
}

// Refresh ротирует refresh-сессию: старый токен отзывается,
// выпускается новая пара. Повторное использование старого токена
// возвращает ErrInvalidSession.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	sess, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("чтение refresh-сессии: %w", err)
	}

	account, err := s.accounts.GetByID(ctx, sess.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Учётная запись удалена — сессия больше не действительна
			_ = s.sessions.Delete(ctx, sess.AccountID, refreshToken)
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("поиск учётной записи: %w", err)
	}

	if err := s.sessions.Delete(ctx, sess.AccountID, refreshToken); err != nil {
		return nil, fmt.Errorf("отзыв старой сессии: %w", err)
	}

	return s.issueTokens(ctx, account)
}

// SignOut отзывает refresh-сессию. Идемпотентен.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	sess, err := s.sessions.Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("чтение refresh-сессии: %w", err)
	}
	return s.sessions.Delete(ctx, sess.AccountID, refreshToken)
}

// RequestPasswordReset создаёт одноразовый токен восстановления и
// отправляет его на email. Для несуществующего адреса возвращает nil
// без отправки — ответ не раскрывает наличие учётной записи.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("Запрос восстановления для неизвестного email")
			return nil
		}
		return fmt.Errorf("поиск учётной записи: %w", err)
	}

	token, err := NewOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.resets.Create(ctx, token, account.Email); err != nil {
		return err
	}

	if err := s.notifier.SendPasswordReset(ctx, account.Email, token); err != nil {
		return fmt.Errorf("отправка письма восстановления: %w", err)
	}

	s.logger.Info("Токен восстановления выпущен", slog.String("account_id", account.ID))
	return nil
}

// ResetPassword устанавливает новый пароль по токену восстановления.
// Все refresh-сессии учётной записи отзываются.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	email, err := s.resets.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("чтение токена восстановления: %w", err)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("поиск учётной записи: %w", err)
	}

	return s.setPassword(ctx, account, newPassword)
}

// ChangePassword меняет пароль аутентифицированной учётной записи.
// Текущий пароль обязателен. Все refresh-сессии отзываются.
func (s *Service) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("поиск учётной записи: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	return s.setPassword(ctx, account, newPassword)
}

// issueTokens выпускает access-токен и регистрирует новую refresh-сессию.
func (s *Service) issueTokens(ctx context.Context, account *model.Account) (*TokenPair, error) {
	access, expiresAt, err := s.issuer.IssueAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	refresh, err := NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, refresh, &model.RefreshSession{
		AccountID: account.ID,
		Email:     account.Email,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		ExpiresAt:    expiresAt,
		RefreshToken: refresh,
		Email:        account.Email,
		Role:         role.ForEmail(account.Email, s.issuer.adminEmail),
	}, nil
}

// setPassword сохраняет новый bcrypt-хэш и отзывает все сессии.
func (s *Service) setPassword(ctx context.Context, account *model.Account, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("хэширование пароля: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, account.ID, string(hash)); err != nil {
		return fmt.Errorf("обновление пароля: %w", err)
	}

	if err := s.sessions.RevokeAll(ctx, account.ID); err != nil {
		s.logger.Warn("Не удалось отозвать сессии после смены пароля",
			slog.String("account_id", account.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("Пароль обновлён", slog.String("account_id", account.ID))
	return nil
}
