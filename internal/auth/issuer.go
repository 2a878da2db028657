// Пакет auth — выпуск и проверка собственных JWT портала,
// управление учётными записями и refresh-сессиями.
//
// Портал сам выступает identity provider: подписывает access-токены
// RS256 и публикует публичный ключ через JWKS endpoint. Роль субъекта
// вычисляется из email в момент выпуска и попадает в токен
// подписанным claim — в БД роль не хранится.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mstechy/gorex360/portal-module/internal/config"
	"github.com/mstechy/gorex360/portal-module/internal/domain/role"
)

// rsaKeyBits — размер генерируемого эфемерного ключа.
const rsaKeyBits = 2048

// PortalClaims — claims выпускаемых access-токенов.
type PortalClaims struct {
	jwt.RegisteredClaims
	// Email — email учётной записи.
	Email string `json:"email"`
	// Role — роль, вычисленная при выпуске (admin, client).
	Role string `json:"role"`
}

// Issuer выпускает access-токены и публикует JWKS.
type Issuer struct {
	key        *rsa.PrivateKey
	kid        string
	issuer     string
	accessTTL  time.Duration
	adminEmail string
	storage    jwkset.Storage
	keyfunc    keyfunc.Keyfunc
	logger     *slog.Logger
}

// NewIssuer создаёт issuer. Ключ подписи загружается из PEM-файла
// (PM_SIGNING_KEY_PATH); если путь не задан, генерируется эфемерный
// ключ — выпущенные токены перестанут проходить проверку после
// рестарта, поэтому режим пригоден только для разработки.
func NewIssuer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Issuer, error) {
	var key *rsa.PrivateKey
	var err error

	if cfg.SigningKeyPath != "" {
		key, err = loadPrivateKey(cfg.SigningKeyPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка ключа подписи %s: %w", cfg.SigningKeyPath, err)
		}
	} else {
		logger.Warn("PM_SIGNING_KEY_PATH не задан: генерируется эфемерный ключ подписи (dev-режим)")
		key, err = rsa.GenerateKey(rand.Reader, rsaKeyBits)
		if err != nil {
			return nil, fmt.Errorf("генерация ключа подписи: %w", err)
		}
	}

	kid, err := keyID(key)
	if err != nil {
		return nil, fmt.Errorf("вычисление kid: %w", err)
	}

	// Публикуем публичную часть ключа в in-memory JWKS
	storage := jwkset.NewMemoryStorage()
	jwk, err := jwkset.NewJWKFromKey(key, jwkset.JWKOptions{
		Metadata: jwkset.JWKMetadataOptions{
			KID: kid,
			USE: jwkset.UseSig,
			ALG: jwkset.AlgRS256,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWK: %w", err)
	}
	if err := storage.KeyWrite(ctx, jwk); err != nil {
		return nil, fmt.Errorf("запись JWK в storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{
		Storage: storage,
	})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	logger.Info("Issuer JWT инициализирован",
		slog.String("issuer", cfg.JWTIssuer),
		slog.String("kid", kid),
	)

	return &Issuer{
		key:        key,
		kid:        kid,
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenTTL,
		adminEmail: cfg.AdminEmail,
		storage:    storage,
		keyfunc:    k,
		logger:     logger.With(slog.String("component", "jwt_issuer")),
	}, nil
}

// IssueAccessToken выпускает access-токен для учётной записи.
// Роль вычисляется из email на каждом выпуске.
func (i *Issuer) IssueAccessToken(accountID, email string) (token string, expiresAt time.Time, err error) {
	now := time.Now()
	expiresAt = now.Add(i.accessTTL)

	claims := &PortalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
		Role:  role.ForEmail(email, i.adminEmail),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = i.kid

	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("подпись токена: %w", err)
	}
	return signed, expiresAt, nil
}

// Keyfunc возвращает keyfunc для проверки выпущенных токенов.
// Передаётся в JWT middleware.
func (i *Issuer) Keyfunc() keyfunc.Keyfunc {
	return i.keyfunc
}

// Issuer возвращает ожидаемый issuer токенов.
func (i *Issuer) Issuer() string {
	return i.issuer
}

// JWKS возвращает публичный JWKS в JSON для endpoint /.well-known/jwks.json.
func (i *Issuer) JWKS(ctx context.Context) (json.RawMessage, error) {
	raw, err := i.storage.JSONPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("сериализация JWKS: %w", err)
	}
	return raw, nil
}

// NewOpaqueToken генерирует криптослучайный токен (refresh, восстановление пароля).
func NewOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("генерация токена: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// keyID вычисляет стабильный kid из отпечатка публичного ключа.
func keyID(key *rsa.PrivateKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8]), nil
}

// loadPrivateKey читает RSA-ключ из PEM-файла (PKCS#1 или PKCS#8).
func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("файл %s не содержит PEM-блока", path)
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("разбор ключа: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("ожидается RSA-ключ, получен %T", parsed)
	}
	return key, nil
}
