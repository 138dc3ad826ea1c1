package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/72tommy72/HRMate/internal/audit"
	"github.com/72tommy72/HRMate/internal/config"
	"github.com/72tommy72/HRMate/internal/database"
	"github.com/72tommy72/HRMate/internal/handler"
	"github.com/72tommy72/HRMate/internal/jobs"
	"github.com/72tommy72/HRMate/internal/middleware"
	"github.com/72tommy72/HRMate/internal/model"
	"github.com/72tommy72/HRMate/internal/redis"
	"github.com/72tommy72/HRMate/internal/repository"
	"github.com/72tommy72/HRMate/internal/service"
	"github.com/72tommy72/HRMate/internal/whatsapp"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("APP_ENV") == "production"
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	userRepo := repository.NewUserRepository(db.DB)
	tokenRepo := repository.NewRefreshTokenRepository(db.DB)
	qrSessionRepo := repository.NewQRSessionRepository(db.DB)
	employeeRepo := repository.NewEmployeeRepository(db.DB)
	clientRepo := repository.NewClientRepository(db.DB)
	transactionRepo := repository.NewTransactionRepository(db.DB)
	categoryRepo := repository.NewCategoryRepository(db.DB)
	attendanceRepo := repository.NewAttendanceRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	auditLogRepo := repository.NewAuditLogRepository(db.DB)

	transport, err := whatsapp.NewMeowTransport(context.Background(), cfg.WhatsappDSN(), log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open whatsapp device store")
	}
	registry := whatsapp.NewRegistry(transport, cfg.HandshakeTTL(), log.Logger)
	defer registry.Shutdown()

	auditLogger := audit.NewLogger(auditLogRepo, log.Logger)

	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(), log.Logger)
	userService := service.NewUserService(userRepo, tokenRepo, log.Logger)
	qrSessionService := service.NewQRSessionService(qrSessionRepo, registry, cfg.SessionTTL(), log.Logger)
	employeeService := service.NewEmployeeService(employeeRepo, log.Logger)
	clientService := service.NewClientService(clientRepo, log.Logger)
	transactionService := service.NewTransactionService(transactionRepo, auditLogger, log.Logger)
	categoryService := service.NewCategoryService(categoryRepo, log.Logger)
	attendanceService := service.NewAttendanceService(attendanceRepo, employeeRepo, log.Logger)
	settingsService := service.NewSettingsService(settingsRepo, log.Logger)
	notificationService := service.NewNotificationService(
		notificationRepo, employeeRepo, clientRepo, userRepo,
		registry, service.NewLogMailer(log.Logger), log.Logger,
	)
	auditLogService := service.NewAuditLogService(auditLogRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService, userRepo)
	rateLimitMiddleware := middleware.NewRedisRateLimitMiddleware(redisClient.Client)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	qrSessionHandler := handler.NewQRSessionHandler(qrSessionService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	clientHandler := handler.NewClientHandler(clientService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	attendanceHandler := handler.NewAttendanceHandler(attendanceService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	auditLogHandler := handler.NewAuditLogHandler(auditLogService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(securityHeadersMiddleware.Handler)
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Mount("/auth", authHandler.Routes(authMiddleware.Handler))

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Handler)
		r.Use(rateLimitMiddleware.Handler)

		r.Mount("/employees", employeeHandler.Routes())
		r.Mount("/clients", clientHandler.Routes())
		r.Mount("/transactions", transactionHandler.Routes())
		r.Mount("/categories", categoryHandler.Routes())
		r.Mount("/attendance", attendanceHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Mount("/", userHandler.Routes())
		})
		r.Route("/settings", func(r chi.Router) {
			r.Mount("/", settingsHandler.Routes())
		})
		r.Route("/logs", func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Mount("/", auditLogHandler.Routes())
		})
		r.Route("/qr-session", func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Mount("/", qrSessionHandler.Routes())
		})
	})

	cleanupJob := jobs.NewCleanupJob(qrSessionRepo, tokenRepo, config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
