package auth

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mstechy/gorex360/portal-module/internal/config"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/kv"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

const (
	testAdminEmail = "admin@rex360.ng"
	testPassword   = "correct-horse-battery"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

var (
	issuerOnce sync.Once
	testIssuer *Issuer
)

// newTestIssuer создаёт issuer с эфемерным ключом один раз на пакет:
// генерация RSA-ключа заметно дороже самих тестов.
func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	issuerOnce.Do(func() {
		cfg := &config.Config{
			JWTIssuer:      "rex360-portal-test",
			AccessTokenTTL: 15 * time.Minute,
			AdminEmail:     testAdminEmail,
		}
		iss, err := NewIssuer(context.Background(), cfg, testLogger())
		if err != nil {
			t.Fatalf("NewIssuer() вернул ошибку: %v", err)
		}
		testIssuer = iss
	})
	return testIssuer
}

// mockAccounts — мок учётных записей.
type mockAccounts struct {
	byEmail   map[string]*model.Account
	byID      map[string]*model.Account
	passwords map[string]string // id -> новый хэш
}

func (m *mockAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *mockAccounts) GetByID(_ context.Context, id string) (*model.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (m *mockAccounts) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if _, ok := m.byID[id]; !ok {
		return repository.ErrNotFound
	}
	if m.passwords == nil {
		m.passwords = map[string]string{}
	}
	m.passwords[id] = passwordHash
	return nil
}

// memSessions — in-memory refresh-сессии.
type memSessions struct {
	byToken map[string]*model.RefreshSession
	revoked []string
}

func (m *memSessions) Create(_ context.Context, token string, sess *model.RefreshSession) error {
	if m.byToken == nil {
		m.byToken = map[string]*model.RefreshSession{}
	}
	m.byToken[token] = sess
	return nil
}

func (m *memSessions) Get(_ context.Context, token string) (*model.RefreshSession, error) {
	sess, ok := m.byToken[token]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return sess, nil
}

func (m *memSessions) Delete(_ context.Context, _, token string) error {
	delete(m.byToken, token)
	return nil
}

func (m *memSessions) RevokeAll(_ context.Context, accountID string) error {
	m.revoked = append(m.revoked, accountID)
	for token, sess := range m.byToken {
		if sess.AccountID == accountID {
			delete(m.byToken, token)
		}
	}
	return nil
}

// memResets — in-memory токены восстановления.
type memResets struct {
	byToken map[string]string
}

func (m *memResets) Create(_ context.Context, token, email string) error {
	if m.byToken == nil {
		m.byToken = map[string]string{}
	}
	m.byToken[token] = email
	return nil
}

func (m *memResets) Consume(_ context.Context, token string) (string, error) {
	email, ok := m.byToken[token]
	if !ok {
		return "", kv.ErrNotFound
	}
	delete(m.byToken, token)
	return email, nil
}

// mockResetNotifier — мок отправки писем восстановления.
type mockResetNotifier struct {
	tokens []string
}

func (m *mockResetNotifier) SendPasswordReset(_ context.Context, _, token string) error {
	m.tokens = append(m.tokens, token)
	return nil
}

func newAuthFixture(t *testing.T) (*Service, *mockAccounts, *memSessions, *memResets, *mockResetNotifier) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("хэширование тестового пароля: %v", err)
	}
	admin := &model.Account{
		ID:           "acc-1",
		Email:        testAdminEmail,
		PasswordHash: string(hash),
	}

	accounts := &mockAccounts{
		byEmail: map[string]*model.Account{admin.Email: admin},
		byID:    map[string]*model.Account{admin.ID: admin},
	}
	sessions := &memSessions{}
	resets := &memResets{}
	notifier := &mockResetNotifier{}

	svc := NewService(accounts, sessions, resets, newTestIssuer(t), notifier, testLogger())
	return svc, accounts, sessions, resets, notifier
}

// TestSignIn_Success — вход выпускает пару токенов с ролью из email.
func TestSignIn_Success(t *testing.T) {
	svc, _, sessions, _, _ := newAuthFixture(t)

	pair, err := svc.SignIn(context.Background(), testAdminEmail, testPassword)
	if err != nil {
		t.Fatalf("SignIn() вернул ошибку: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("пара токенов не выпущена")
	}
	if pair.Role != "admin" {
		t.Errorf("Role = %q, ожидается admin для email администратора", pair.Role)
	}
	if pair.ExpiresAt.Before(time.Now()) {
		t.Error("ExpiresAt в прошлом")
	}
	if _, ok := sessions.byToken[pair.RefreshToken]; !ok {
		t.Error("refresh-сессия не зарегистрирована")
	}
}

// TestSignIn_InvalidCredentials — неизвестный email и неверный пароль
// неразличимы для вызывающего.
func TestSignIn_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"неизвестный email", "nobody@rex360.ng", testPassword},
		{"неверный пароль", testAdminEmail, "wrong-password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _ := newAuthFixture(t)

			_, err := svc.SignIn(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("ожидалась ErrInvalidCredentials, получено %v", err)
			}
		})
	}
}

// TestRefresh_RotatesSession — ротация отзывает старый токен.
func TestRefresh_RotatesSession(t *testing.T) {
	svc, _, sessions, _, _ := newAuthFixture(t)

	pair, err := svc.SignIn(context.Background(), testAdminEmail, testPassword)
	if err != nil {
		t.Fatalf("SignIn() вернул ошибку: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() вернул ошибку: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh-токен не заменён при ротации")
	}
	if _, ok := sessions.byToken[pair.RefreshToken]; ok {
		t.Error("старый refresh-токен не отозван")
	}

	// Повторное использование отозванного токена
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("повторная ротация: ожидалась ErrInvalidSession, получено %v", err)
	}
}

// TestRefresh_UnknownToken — неизвестный refresh-токен.
func TestRefresh_UnknownToken(t *testing.T) {
	svc, _, _, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "unknown-token")
	if !errors.Is(err, ErrInvalidSession) {
		t.Errorf("ожидалась ErrInvalidSession, получено %v", err)
	}
}

// TestSignOut_Idempotent — повторный sign-out не возвращает ошибку.
func TestSignOut_Idempotent(t *testing.T) {
	svc, _, sessions, _, _ := newAuthFixture(t)

	pair, err := svc.SignIn(context.Background(), testAdminEmail, testPassword)
	if err != nil {
		t.Fatalf("SignIn() вернул ошибку: %v", err)
	}

	if err := svc.SignOut(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("SignOut() вернул ошибку: %v", err)
	}
	if _, ok := sessions.byToken[pair.RefreshToken]; ok {
		t.Error("refresh-сессия не отозвана")
	}
	if err := svc.SignOut(context.Background(), pair.RefreshToken); err != nil {
		t.Errorf("повторный SignOut() вернул ошибку: %v", err)
	}
}

// TestRequestPasswordReset — токен создаётся и отправляется письмом.
func TestRequestPasswordReset(t *testing.T) {
	svc, _, _, resets, notifier := newAuthFixture(t)

	if err := svc.RequestPasswordReset(context.Background(), testAdminEmail); err != nil {
		t.Fatalf("RequestPasswordReset() вернул ошибку: %v", err)
	}
	if len(notifier.tokens) != 1 {
		t.Fatalf("писем отправлено: %d, ожидается 1", len(notifier.tokens))
	}
	if email, ok := resets.byToken[notifier.tokens[0]]; !ok || email != testAdminEmail {
		t.Error("отправленный токен не связан с email в хранилище")
	}
}

// TestRequestPasswordReset_UnknownEmail — ответ не раскрывает
// наличие учётной записи.
func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	svc, _, _, _, notifier := newAuthFixture(t)

	if err := svc.RequestPasswordReset(context.Background(), "nobody@rex360.ng"); err != nil {
		t.Errorf("RequestPasswordReset() вернул ошибку для неизвестного email: %v", err)
	}
	if len(notifier.tokens) != 0 {
		t.Error("письмо отправлено для неизвестного email")
	}
}

// TestResetPassword — пароль меняется по токену, сессии отзываются,
// токен одноразовый.
func TestResetPassword(t *testing.T) {
	svc, accounts, sessions, resets, notifier := newAuthFixture(t)

	if _, err := svc.SignIn(context.Background(), testAdminEmail, testPassword); err != nil {
		t.Fatalf("SignIn() вернул ошибку: %v", err)
	}
	if err := svc.RequestPasswordReset(context.Background(), testAdminEmail); err != nil {
		t.Fatalf("RequestPasswordReset() вернул ошибку: %v", err)
	}
	token := notifier.tokens[0]

	if err := svc.ResetPassword(context.Background(), token, "new-password-123"); err != nil {
		t.Fatalf("ResetPassword() вернул ошибку: %v", err)
	}

	if _, ok := accounts.passwords["acc-1"]; !ok {
		t.Error("хэш пароля не обновлён")
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "acc-1" {
		t.Errorf("отозваны сессии: %v, ожидается [acc-1]", sessions.revoked)
	}
	if len(resets.byToken) != 0 {
		t.Error("токен восстановления не удалён")
	}

	// Повторное использование токена
	err := svc.ResetPassword(context.Background(), token, "another-password")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("ожидалась ErrInvalidResetToken, получено %v", err)
	}
}

// TestResetPassword_WeakPassword — короткий пароль отклоняется
// до обращения к токену.
func TestResetPassword_WeakPassword(t *testing.T) {
	svc, _, _, resets, _ := newAuthFixture(t)
	resets.byToken = map[string]string{"reset-1": testAdminEmail}

	err := svc.ResetPassword(context.Background(), "reset-1", "short")
	if !errors.Is(err, ErrWeakPassword) {
		t.Errorf("ожидалась ErrWeakPassword, получено %v", err)
	}
	if _, ok := resets.byToken["reset-1"]; !ok {
		t.Error("токен потрачен на невалидный пароль")
	}
}

// TestChangePassword — смена пароля с проверкой текущего.
func TestChangePassword(t *testing.T) {
	svc, accounts, sessions, _, _ := newAuthFixture(t)

	if err := svc.ChangePassword(context.Background(), "acc-1", testPassword, "new-password-123"); err != nil {
		t.Fatalf("ChangePassword() вернул ошибку: %v", err)
	}
	if _, ok := accounts.passwords["acc-1"]; !ok {
		t.Error("хэш пароля не обновлён")
	}
	if len(sessions.revoked) != 1 {
		t.Error("сессии не отозваны после смены пароля")
	}
}

// TestChangePassword_WrongCurrent — неверный текущий пароль.
func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, accounts, _, _, _ := newAuthFixture(t)

	err := svc.ChangePassword(context.Background(), "acc-1", "wrong-password", "new-password-123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ожидалась ErrInvalidCredentials, получено %v", err)
	}
	if len(accounts.passwords) != 0 {
		t.Error("пароль обновлён при неверном текущем пароле")
	}
}
