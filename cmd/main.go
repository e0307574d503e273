package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/credfile-backend/internal/data/db"
	"github.com/yungbote/credfile-backend/internal/data/repos"
	"github.com/yungbote/credfile-backend/internal/handlers"
	"github.com/yungbote/credfile-backend/internal/middleware"
	"github.com/yungbote/credfile-backend/internal/observability"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
	"github.com/yungbote/credfile-backend/internal/server"
	"github.com/yungbote/credfile-backend/internal/services"
	"github.com/yungbote/credfile-backend/internal/settings"
	"github.com/yungbote/credfile-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "credfile-backend",
		Environment: environment,
		Version:     os.Getenv("SERVICE_VERSION"),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTel(ctx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()
	if err := db.NewDevSchemaLifecycle(gdb, log).Reconcile(); err != nil {
		log.Error("Schema reconcile failed", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up repos from main...")
	repoSet := repos.NewSet(gdb, log)

	// Settings
	store := buildSettingsStore(log)

	// Services
	log.Info("Setting up services from main...")
	ingestionService := services.NewIngestionService(gdb, repoSet, store, log)
	subjectService := services.NewSubjectService(repoSet, log)
	insightService := services.NewInsightService(repoSet, log)
	receiptService := services.NewReceiptService(repoSet, log)

	// Handlers
	ingestHandler := handlers.NewIngestHandler(log, ingestionService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	insightHandler := handlers.NewInsightHandler(insightService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.NewAuthMiddleware(log, jwtSecretKey),
		IngestHandler:  ingestHandler,
		SubjectHandler: subjectHandler,
		InsightHandler: insightHandler,
		ReceiptHandler: receiptHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

// buildSettingsStore prefers redis, then a local YAML file, then the
// compiled-in defaults.
func buildSettingsStore(log *logger.Logger) settings.Store {
	if os.Getenv("REDIS_ADDR") != "" {
		store, err := settings.NewRedisStore(log)
		if err == nil {
			return store
		}
		log.Warn("Redis settings store init failed, falling back", "error", err)
	}
	if path := os.Getenv("SETTINGS_FILE"); path != "" {
		store, err := settings.NewFileStore(path)
		if err == nil {
			return store
		}
		log.Warn("File settings store init failed, falling back", "path", path, "error", err)
	}
	return settings.StaticStore{}
}
