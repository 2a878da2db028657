// Пакет config — загрузка и валидация конфигурации Portal Module
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Portal Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Публичный базовый URL портала (для ссылок на медиафайлы)
	PublicBaseURL string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string
	// Максимальный размер пула подключений pgx
	DBMaxConns int
	// Число подключений, которое пул держит открытыми простаивающими
	DBMinConns int

	// --- Redis ---

	// Адрес Redis (host:port)
	RedisAddr string
	// Пароль Redis (опционально)
	RedisPassword string
	// Номер базы Redis
	RedisDB int

	// --- Аутентификация ---

	// Email единственной административной учётной записи.
	// Роль admin вычисляется сравнением с этим адресом и никогда не хранится в БД.
	AdminEmail string
	// Issuer выпускаемых JWT
	JWTIssuer string
	// Время жизни access-токена
	AccessTokenTTL time.Duration
	// Время жизни refresh-сессии
	RefreshTokenTTL time.Duration
	// Путь к PEM-файлу RSA-ключа подписи JWT.
	// Если не задан — при старте генерируется эфемерный ключ (dev-режим).
	SigningKeyPath string
	// Время жизни токена восстановления пароля
	ResetTokenTTL time.Duration
	// Допуск расхождения часов при валидации JWT
	JWTLeeway time.Duration

	// --- Платёжный провайдер (Paystack) ---

	// Базовый URL API Paystack
	PaystackBaseURL string
	// Секретный ключ Paystack (server-side)
	PaystackSecretKey string
	// Публичный ключ Paystack (отдаётся клиенту для инициализации виджета)
	PaystackPublicKey string

	// --- Заявки и checkout ---

	// Время жизни слота отложенной заявки (draft до оплаты)
	PendingTTL time.Duration
	// Время жизни checkout-сессии в Redis
	CheckoutTTL time.Duration
	// Длительность checkout-отсчёта, отдаваемая клиенту.
	// Истечение не отменяет транзакцию — чистая UI-аффордация.
	CheckoutCountdown time.Duration

	// --- Медиахранилище ---

	// Директория хранения загруженных медиафайлов
	MediaDir string
	// Максимальный размер загружаемого файла в байтах
	MediaMaxBytes int64

	// --- Кэш трекинга ---

	// Размер LRU-кэша запросов /track
	TrackCacheSize int
	// TTL записей кэша /track
	TrackCacheTTL time.Duration

	// --- SMTP-уведомления ---

	// Хост SMTP-сервера (пустая строка — уведомления только в лог)
	SMTPHost string
	// Порт SMTP-сервера
	SMTPPort int
	// Имя пользователя SMTP
	SMTPUser string
	// Пароль SMTP
	SMTPPassword string
	// Адрес отправителя
	SMTPFrom string

	// --- Мониторинг зависимостей ---

	// Имя группы topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Отсутствие обязательной переменной — фатальная ошибка конфигурации:
// сервис не должен молча стартовать с endpoint-заглушками.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// PM_PORT — порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("PM_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("PM_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// PM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("PM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("PM_LOG_LEVEL: %w", err)
	}

	// PM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("PM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("PM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// PM_PUBLIC_BASE_URL — обязательный (публичные ссылки на медиа)
	cfg.PublicBaseURL, err = getEnvRequired("PM_PUBLIC_BASE_URL")
	if err != nil {
		return nil, err
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	// --- PostgreSQL ---

	// PM_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("PM_DB_HOST")
	if err != nil {
		return nil, err
	}

	// PM_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("PM_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_PORT: %w", err)
	}

	// PM_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("PM_DB_NAME")
	if err != nil {
		return nil, err
	}

	// PM_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("PM_DB_USER")
	if err != nil {
		return nil, err
	}

	// PM_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("PM_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// PM_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("PM_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("PM_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// PM_DB_MAX_CONNS — размер пула pgx (по умолчанию 8)
	cfg.DBMaxConns, err = getEnvInt("PM_DB_MAX_CONNS", 8)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_MAX_CONNS: %w", err)
	}
	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("PM_DB_MAX_CONNS: значение %d должно быть положительным", cfg.DBMaxConns)
	}

	// PM_DB_MIN_CONNS — тёплые подключения пула (по умолчанию 2)
	cfg.DBMinConns, err = getEnvInt("PM_DB_MIN_CONNS", 2)
	if err != nil {
		return nil, fmt.Errorf("PM_DB_MIN_CONNS: %w", err)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("PM_DB_MIN_CONNS: значение %d вне диапазона 0-%d", cfg.DBMinConns, cfg.DBMaxConns)
	}

	// --- Redis ---

	// PM_REDIS_ADDR — обязательный (pending-слоты и сессии живут в Redis)
	cfg.RedisAddr, err = getEnvRequired("PM_REDIS_ADDR")
	if err != nil {
		return nil, err
	}

	// PM_REDIS_PASSWORD — опциональный
	cfg.RedisPassword = getEnvDefault("PM_REDIS_PASSWORD", "")

	// PM_REDIS_DB — номер базы (по умолчанию 0)
	cfg.RedisDB, err = getEnvInt("PM_REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("PM_REDIS_DB: %w", err)
	}

	// --- Аутентификация ---

	// PM_ADMIN_EMAIL — обязательный, ровно одна привилегированная учётная запись
	cfg.AdminEmail, err = getEnvRequired("PM_ADMIN_EMAIL")
	if err != nil {
		return nil, err
	}
	cfg.AdminEmail = strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	// PM_JWT_ISSUER — issuer выпускаемых токенов (по умолчанию rex360-portal)
	cfg.JWTIssuer = getEnvDefault("PM_JWT_ISSUER", "rex360-portal")

	// PM_ACCESS_TOKEN_TTL — время жизни access-токена (по умолчанию 15m)
	cfg.AccessTokenTTL, err = getEnvDuration("PM_ACCESS_TOKEN_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_ACCESS_TOKEN_TTL: %w", err)
	}

	// PM_REFRESH_TOKEN_TTL — время жизни refresh-сессии (по умолчанию 720h)
	cfg.RefreshTokenTTL, err = getEnvDuration("PM_REFRESH_TOKEN_TTL", 720*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("PM_REFRESH_TOKEN_TTL: %w", err)
	}

	// PM_SIGNING_KEY_PATH — путь к RSA-ключу подписи (опционально)
	cfg.SigningKeyPath = getEnvDefault("PM_SIGNING_KEY_PATH", "")

	// PM_RESET_TOKEN_TTL — время жизни токена восстановления пароля (по умолчанию 30m)
	cfg.ResetTokenTTL, err = getEnvDuration("PM_RESET_TOKEN_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_RESET_TOKEN_TTL: %w", err)
	}

	// PM_JWT_LEEWAY — допуск расхождения часов при валидации JWT (по умолчанию 30s)
	cfg.JWTLeeway, err = getEnvDuration("PM_JWT_LEEWAY", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_JWT_LEEWAY: %w", err)
	}

	// --- Платёжный провайдер ---

	// PM_PAYSTACK_BASE_URL — базовый URL API (по умолчанию https://api.paystack.co)
	cfg.PaystackBaseURL = strings.TrimRight(getEnvDefault("PM_PAYSTACK_BASE_URL", "https://api.paystack.co"), "/")

	// PM_PAYSTACK_SECRET_KEY — обязательный
	cfg.PaystackSecretKey, err = getEnvRequired("PM_PAYSTACK_SECRET_KEY")
	if err != nil {
		return nil, err
	}

	// PM_PAYSTACK_PUBLIC_KEY — обязательный
	cfg.PaystackPublicKey, err = getEnvRequired("PM_PAYSTACK_PUBLIC_KEY")
	if err != nil {
		return nil, err
	}

	// --- Заявки и checkout ---

	// PM_PENDING_TTL — время жизни pending-слота (по умолчанию 24h).
	// Draft, не дошедший до оплаты, истекает вместе со слотом —
	// осиротевших строк заявок в БД не появляется.
	cfg.PendingTTL, err = getEnvDuration("PM_PENDING_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("PM_PENDING_TTL: %w", err)
	}

	// PM_CHECKOUT_TTL — время жизни checkout-сессии (по умолчанию 24h)
	cfg.CheckoutTTL, err = getEnvDuration("PM_CHECKOUT_TTL", 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("PM_CHECKOUT_TTL: %w", err)
	}

	// PM_CHECKOUT_COUNTDOWN — длительность отсчёта (по умолчанию 15m)
	cfg.CheckoutCountdown, err = getEnvDuration("PM_CHECKOUT_COUNTDOWN", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("PM_CHECKOUT_COUNTDOWN: %w", err)
	}

	// --- Медиахранилище ---

	// PM_MEDIA_DIR — директория медиафайлов (по умолчанию ./data/media)
	cfg.MediaDir = getEnvDefault("PM_MEDIA_DIR", "./data/media")

	// PM_MEDIA_MAX_BYTES — максимальный размер файла (по умолчанию 16 MiB)
	maxBytes, err := getEnvInt("PM_MEDIA_MAX_BYTES", 16<<20)
	if err != nil {
		return nil, fmt.Errorf("PM_MEDIA_MAX_BYTES: %w", err)
	}
	if maxBytes < 1 {
		return nil, fmt.Errorf("PM_MEDIA_MAX_BYTES: значение %d должно быть положительным", maxBytes)
	}
	cfg.MediaMaxBytes = int64(maxBytes)

	// --- Кэш трекинга ---

	// PM_TRACK_CACHE_SIZE — размер кэша (по умолчанию 512)
	cfg.TrackCacheSize, err = getEnvInt("PM_TRACK_CACHE_SIZE", 512)
	if err != nil {
		return nil, fmt.Errorf("PM_TRACK_CACHE_SIZE: %w", err)
	}
	if cfg.TrackCacheSize < 1 {
		return nil, fmt.Errorf("PM_TRACK_CACHE_SIZE: значение %d должно быть положительным", cfg.TrackCacheSize)
	}

	// PM_TRACK_CACHE_TTL — TTL кэша (по умолчанию 30s)
	cfg.TrackCacheTTL, err = getEnvDuration("PM_TRACK_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_TRACK_CACHE_TTL: %w", err)
	}

	// --- SMTP ---

	// PM_SMTP_HOST — опциональный (без него уведомления пишутся только в лог)
	cfg.SMTPHost = getEnvDefault("PM_SMTP_HOST", "")

	// PM_SMTP_PORT — порт SMTP (по умолчанию 587)
	cfg.SMTPPort, err = getEnvInt("PM_SMTP_PORT", 587)
	if err != nil {
		return nil, fmt.Errorf("PM_SMTP_PORT: %w", err)
	}

	cfg.SMTPUser = getEnvDefault("PM_SMTP_USER", "")
	cfg.SMTPPassword = getEnvDefault("PM_SMTP_PASSWORD", "")
	cfg.SMTPFrom = getEnvDefault("PM_SMTP_FROM", "noreply@rex360.ng")

	// --- Мониторинг зависимостей ---

	// PM_DEPHEALTH_GROUP — группа topologymetrics (по умолчанию rex360)
	cfg.DephealthGroup = getEnvDefault("PM_DEPHEALTH_GROUP", "rex360")

	// PM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("PM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// PM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("PM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("PM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL (для метрик и миграций).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// MediaBaseURL возвращает публичный базовый URL медиафайлов.
func (c *Config) MediaBaseURL() string {
	return c.PublicBaseURL + "/media"
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
