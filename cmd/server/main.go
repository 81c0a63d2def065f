package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mightytheif/sakany/api"
	dbfs "github.com/mightytheif/sakany/db"
	"github.com/mightytheif/sakany/internal/cache"
	"github.com/mightytheif/sakany/internal/chat"
	"github.com/mightytheif/sakany/internal/config"
	"github.com/mightytheif/sakany/internal/db"
	"github.com/mightytheif/sakany/internal/jobs"
	"github.com/mightytheif/sakany/internal/repository/sqlite"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// Best effort; a missing .env just means the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	logger.Info("starting sakany server", "version", version, "buildTime", buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations
	database, err := db.New(ctx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	// Optional search cache; disabled when no Redis address is configured.
	searchCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL)

	repo := sqlite.New(database, logger)
	hub := chat.NewHub(repo, logger)

	// Background jobs: moderation notifications and report triage.
	jobRepo := jobs.NewRepository(database)
	handlers := map[string]jobs.Handler{
		jobs.TypeNotifyDecision: jobs.NewDecisionNotifier(repo, logger),
		jobs.TypeReportTriage:   jobs.NewReportTriage(repo, repo, cfg.Jobs.ReportThreshold, logger),
	}
	pool := jobs.NewWorkerPool(jobRepo, handlers, logger, cfg.Jobs.Workers)
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	pool.Start(workerCtx)

	handler, err := api.SetupRoutes(cfg, version, buildTime, database, searchCache, hub, jobRepo)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	cancelWorkers()
	pool.Stop()

	if err := searchCache.Close(); err != nil {
		logger.Error("close cache", "err", err)
	}
	if err := database.Close(); err != nil {
		logger.Error("close db", "err", err)
	}

	logger.Info("server exited")
}
