// Команда devseed — создание учётной записи back-office для
// разработки и первого запуска. Читает .env (godotenv), применяет
// миграции и создаёт учётную запись PM_ADMIN_EMAIL с паролем
// PM_SEED_PASSWORD. Повторный запуск безопасен.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/mstechy/gorex360/portal-module/internal/config"
	"github.com/mstechy/gorex360/portal-module/internal/database"
	"github.com/mstechy/gorex360/portal-module/internal/domain/model"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
)

func main() {
	// .env опционален: при его отсутствии работаем с окружением процесса
	if err := godotenv.Load(); err != nil {
		slog.Debug("Файл .env не найден, используется окружение процесса")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	password := os.Getenv("PM_SEED_PASSWORD")
	if len(password) < 8 {
		logger.Error("PM_SEED_PASSWORD обязателен и должен содержать не менее 8 символов")
		os.Exit(1)
	}

	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Ошибка хэширования пароля", slog.String("error", err.Error()))
		os.Exit(1)
	}

	accounts := repository.NewAccountRepository(pool)
	account := &model.Account{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(cfg.AdminEmail),
		PasswordHash: string(hash),
	}

	if err := accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			logger.Info("Учётная запись уже существует, ничего не изменено",
				slog.String("email", account.Email),
			)
			return
		}
		logger.Error("Ошибка создания учётной записи", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Учётная запись back-office создана",
		slog.String("email", account.Email),
		slog.String("account_id", account.ID),
	)
}
