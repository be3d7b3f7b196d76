package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/taskhive/internal/adapter/events"
	httpadapter "github.com/taskhive/taskhive/internal/adapter/http"
	"github.com/taskhive/taskhive/internal/adapter/persistence"
	"github.com/taskhive/taskhive/internal/config"
	"github.com/taskhive/taskhive/internal/rbac"
	"github.com/taskhive/taskhive/internal/service/logger"
	"github.com/taskhive/taskhive/internal/service/password"
	"github.com/taskhive/taskhive/internal/service/ratelimit"
	"github.com/taskhive/taskhive/internal/service/token"
	"github.com/taskhive/taskhive/internal/usecase"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "taskhive",
	})
	appLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	appLogger.Info(ctx, "Database connection established", nil)

	// Repositories
	taskRepo := persistence.NewPostgresTaskRepository(db)
	auditRepo := persistence.NewPostgresAuditRepository(db)
	orgRepo := persistence.NewPostgresOrganizationRepository(db)
	userRepo := persistence.NewPostgresUserRepository(db)

	// Services
	tokenService, err := token.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(0)

	limiter, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
		Limit:    cfg.RateLimitCount,
		Window:   cfg.RateLimitWindow,
	}, logrus.New())
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	// Audit pipeline: bounded bus plus a recorder goroutine.
	bus := events.NewBus(cfg.AuditBufferSize, appLogger)
	recorder := events.NewAuditRecorder(auditRepo, appLogger)
	recorderCtx, stopRecorder := context.WithCancel(ctx)
	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		recorder.Run(recorderCtx, bus.Events())
	}()

	// Authorization core
	scope := rbac.NewOrgScopeResolver(orgRepo, appLogger)
	engine := rbac.NewPermissionEngine(scope)

	// Use cases
	taskUseCase := usecase.NewTaskUseCase(taskRepo, auditRepo, scope, engine, bus, appLogger)
	auditUseCase := usecase.NewAuditUseCase(auditRepo, bus)
	authUseCase := usecase.NewAuthUseCase(userRepo, passwordService, tokenService)

	// HTTP
	authMiddleware := httpadapter.NewAuthMiddleware(tokenService)
	server := httpadapter.NewServer(
		httpadapter.ServerConfig{
			Host:         cfg.ServerHost,
			Port:         cfg.ServerPort,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		appLogger,
		limiter,
		httpadapter.NewTaskHandler(taskUseCase, authMiddleware),
		httpadapter.NewAuditHandler(auditUseCase, authMiddleware),
		httpadapter.NewAuthHandler(authUseCase, authMiddleware),
	)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "HTTP server failed", err, nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(ctx, "Server shutdown failed", err, nil)
	}

	// Stop accepting audit events, then let the recorder drain.
	bus.Close()
	stopRecorder()
	select {
	case <-recorderDone:
	case <-time.After(10 * time.Second):
		appLogger.Warn(ctx, "audit recorder did not drain in time", nil)
	}

	appLogger.Info(ctx, "Application stopped", nil)
}
