package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/pookie/pookie/application/port/inbound"
	"github.com/pookie/pookie/application/usecase"
	"github.com/pookie/pookie/domain/entity"
	"github.com/pookie/pookie/infrastructure/config"
	"github.com/pookie/pookie/infrastructure/http/handler"
	"github.com/pookie/pookie/infrastructure/http/middleware"
	"github.com/pookie/pookie/infrastructure/persistence/logstore"
	"github.com/pookie/pookie/infrastructure/persistence/postgres"
	"github.com/pookie/pookie/infrastructure/service/assistant"
	"github.com/pookie/pookie/infrastructure/service/jwt"
	"github.com/pookie/pookie/infrastructure/service/logger"
	"github.com/pookie/pookie/infrastructure/service/password"
	"github.com/pookie/pookie/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	structuredLogger := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "pookie",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env":       cfg.Environment,
		"ephemeral": config.IsEphemeralEnvironment(),
	})

	// Connect to database
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, map[string]interface{}{})
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", map[string]interface{}{})

	// Initialize rate limiting service (Redis-backed or noop based on config)
	var rateLimitService inbound.RateLimitService
	{
		rs, err := ratelimit.NewRateLimitService(ratelimit.RateLimitConfig{
			Enabled:  cfg.RateLimitEnabled,
			RedisURL: cfg.RedisURL,
		}, logrus.New())
		if err != nil {
			structuredLogger.Error(ctx, "Failed to initialize rate limit service", err, map[string]interface{}{
				"redis_url": cfg.RedisURL,
			})
		} else {
			rateLimitService = rs
			structuredLogger.Info(ctx, "Rate limiting service initialized", map[string]interface{}{
				"enabled": cfg.RateLimitEnabled,
			})
		}
	}

	// Initialize repositories and log stores
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	durability := logstore.DurabilityMode(cfg.DurabilityMode)
	activityStore := logstore.New[entity.ActivityEntry](cfg.ActivityLogDir, cfg.ActivityLogFile, durability)
	notificationStore := logstore.New[entity.AdminNotification](cfg.NotificationsDir, cfg.NotificationsFile, durability)
	structuredLogger.Info(ctx, "Log stores initialized", map[string]interface{}{
		"activity_log":  activityStore.Path(),
		"notifications": notificationStore.Path(),
		"durability":    cfg.DurabilityMode,
	})

	// Initialize services
	tokenService, err := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(10)

	// Initialize use cases
	activityUseCase := usecase.NewActivityUseCase(activityStore, structuredLogger)
	notificationUseCase := usecase.NewNotificationUseCase(notificationStore, structuredLogger)
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		tokenService,
		passwordService,
		rateLimitService,
		activityUseCase,
		notificationUseCase,
		structuredLogger,
		cfg.AccessTokenTTL,
		usecase.RateLimitPolicy{
			Attempts:      cfg.RateLimitIPAttempts,
			Window:        cfg.RateLimitIPWindow,
			BlockDuration: cfg.RateLimitBlockDuration,
		},
	)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, structuredLogger)
	adminUseCase := usecase.NewAdminUseCase(cfg.AdminEmail, userRepo, activityUseCase, notificationUseCase)
	chatUseCase := usecase.NewChatUseCase(userRepo, taskUseCase, assistant.NewRuleAssistant(), structuredLogger)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	router := mux.NewRouter()
	handler.NewAuthHandler(authUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewTaskHandler(taskUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewAdminHandler(adminUseCase, authMiddleware).RegisterRoutes(router)
	handler.NewChatHandler(chatUseCase, authMiddleware).RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"healthy"}`)
	}).Methods("GET")

	// Compose middleware: CorrelationID then CORS (if enabled)
	var root http.Handler = middleware.CorrelationIDMiddleware(router)
	if cfg.CORSEnabled && len(cfg.CORSAllowedOrigins) > 0 {
		root = middleware.CORSMiddleware(root, cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, map[string]interface{}{
				"port": cfg.ServerPort,
			})
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", map[string]interface{}{})

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, map[string]interface{}{})
	}
	structuredLogger.Info(ctx, "Server exited", map[string]interface{}{})
}
