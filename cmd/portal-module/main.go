// Точка входа Portal Module — backend портала rex360.
// Загружает конфигурацию, подключается к PostgreSQL и Redis, применяет
// миграции, инициализирует JWT issuer, платёжный клиент и сервисный слой,
// запускает topologymetrics и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/mstechy/gorex360/portal-module/internal/api/handlers"
	"github.com/mstechy/gorex360/portal-module/internal/api/middleware"
	"github.com/mstechy/gorex360/portal-module/internal/auth"
	"github.com/mstechy/gorex360/portal-module/internal/config"
	"github.com/mstechy/gorex360/portal-module/internal/database"
	"github.com/mstechy/gorex360/portal-module/internal/kv"
	"github.com/mstechy/gorex360/portal-module/internal/mediastore"
	"github.com/mstechy/gorex360/portal-module/internal/notify"
	"github.com/mstechy/gorex360/portal-module/internal/paystack"
	"github.com/mstechy/gorex360/portal-module/internal/repository"
	"github.com/mstechy/gorex360/portal-module/internal/server"
	"github.com/mstechy/gorex360/portal-module/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Portal Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL идёт через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Подключение к Redis (pending-слоты, checkout- и refresh-сессии)
	rdb, err := kv.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer rdb.Close()

	pendingStore := kv.NewPendingStore(rdb, cfg.PendingTTL)
	checkoutStore := kv.NewCheckoutStore(rdb, cfg.CheckoutTTL)
	sessionStore := kv.NewSessionStore(rdb, cfg.RefreshTokenTTL)
	resetStore := kv.NewResetStore(rdb, cfg.ResetTokenTTL)

	// 6. JWT issuer (самоподписанные RS256-токены + JWKS)
	issuer, err := auth.NewIssuer(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка инициализации JWT issuer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 7. Paystack клиент
	paystackClient := paystack.New(cfg.PaystackBaseURL, cfg.PaystackSecretKey, nil, logger)
	logger.Info("Paystack клиент создан", slog.String("base_url", cfg.PaystackBaseURL))

	// 8. Медиахранилище и SMTP-уведомления
	mediaStore, err := mediastore.New(cfg.MediaDir, cfg.MediaBaseURL())
	if err != nil {
		logger.Error("Ошибка инициализации медиахранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}
	mailer := notify.NewMailer(cfg, logger)

	// 9. Repositories
	offeringRepo := repository.NewOfferingRepository(pool)
	slideRepo := repository.NewSlideRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	appRepo := repository.NewApplicationRepository(pool)
	txnRepo := repository.NewTransactionRepository(pool)
	accountRepo := repository.NewAccountRepository(pool)

	// 10. Services
	authSvc := auth.NewService(accountRepo, sessionStore, resetStore, issuer, mailer, logger)
	offeringSvc := service.NewOfferingService(offeringRepo, logger)
	contentSvc := service.NewContentService(slideRepo, postRepo, mediaStore, logger)
	applicationSvc := service.NewApplicationService(appRepo, offeringRepo, pendingStore, mailer, logger)
	checkoutSvc := service.NewCheckoutService(
		paystackClient, offeringRepo, appRepo, txnRepo,
		pendingStore, checkoutStore,
		cfg.CheckoutCountdown,
		logger,
	)
	trackSvc := service.NewTrackService(appRepo, cfg.TrackCacheSize, cfg.TrackCacheTTL, logger)
	transactionSvc := service.NewTransactionService(txnRepo, logger)

	// 11. Readiness checkers (PostgreSQL + Redis)
	pgChecker := database.NewReadinessChecker(pool)
	redisChecker := kv.NewReadinessChecker(rdb)
	healthHandler := handlers.NewHealthHandler(pgChecker, redisChecker)

	// 12. API handler (реализует generated.ServerInterface)
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		authSvc,
		issuer,
		offeringSvc,
		contentSvc,
		applicationSvc,
		checkoutSvc,
		trackSvc,
		transactionSvc,
		cfg.PaystackPublicKey,
		cfg.MediaMaxBytes,
		logger,
	)

	// 13. JWT middleware (валидация собственных токенов через JWKS issuer'а)
	jwtAuth := middleware.NewJWTAuth(issuer.Keyfunc(), issuer.Issuer(), cfg.JWTLeeway, logger)
	logger.Info("JWT middleware инициализирован", slog.String("issuer", issuer.Issuer()))

	// 14. topologymetrics — мониторинг зависимостей (PostgreSQL + Paystack)
	var dephealthSvc *service.DephealthService
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"portal-module",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.PaystackBaseURL,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 15. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, jwtAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 16. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Portal Module остановлен")
}
