package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/newslens/newslens/app/analysis"
	"github.com/newslens/newslens/app/api"
	"github.com/newslens/newslens/app/cfg"
	"github.com/newslens/newslens/app/database"
	"github.com/newslens/newslens/app/scraper"
	"github.com/newslens/newslens/app/sources"
	"github.com/newslens/newslens/app/summary"
	"github.com/newslens/newslens/app/tasks"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting NewsLens server", "version", appCfg.Version)

	db, err := database.NewDB(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schemaVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", schemaVersion, "dirty", dirty)

	// Seed the source table, then read it back so manual edits to the
	// database survive restarts alongside the shipped seed.
	seed, err := sources.LoadSeed(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load source seed", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}

	sourceRepo := database.NewSourceRepository(db)
	for _, rating := range seed {
		if err := sourceRepo.UpsertSource(rating.Domain, rating.Score, rating.Bias, rating.Category); err != nil {
			slog.Warn("Failed to register source", "domain", rating.Domain, "error", err)
		}
	}

	rows, err := sourceRepo.GetAllSources()
	if err != nil {
		slog.Error("Failed to read sources", "error", err)
		os.Exit(1)
	}
	ratings := make([]sources.Rating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, sources.Rating{
			Domain:   row.Domain,
			Score:    row.Score,
			Bias:     row.Bias,
			Category: row.Category,
		})
	}
	registry := sources.NewRegistry(ratings)
	slog.Info("Source registry loaded", "sources", registry.Count())

	// The service refuses to start without valid models: every analysis
	// depends on them and there is no degraded mode for a missing artifact.
	models, err := analysis.LoadModels()
	if err != nil {
		slog.Error("Failed to load analysis models", "error", err)
		os.Exit(1)
	}
	slog.Info("Analysis models loaded", "model_version", models.Version, "vocabulary_size", models.Vocabulary.Size())

	articleScraper := scraper.New(scraper.Options{
		Timeout:           time.Duration(appCfg.ScrapeTimeout) * time.Second,
		UserAgent:         appCfg.UserAgent,
		RequestsPerSecond: float64(appCfg.ScrapeRate),
	})
	summarizer := summary.NewSummarizer()
	pipeline := analysis.NewPipeline(models, registry, articleScraper, summarizer)

	slog.Info("Starting analysis workers", "count", appCfg.WorkerCount)
	runner := tasks.NewRunner(appCfg.WorkerCount)
	runner.Start()
	defer runner.Stop()

	handler := api.NewHandler(pipeline, registry, runner, models, appCfg.Version)
	server := api.NewServer(handler)

	// WriteTimeout leaves headroom over the 60s per-task budget so a slow
	// analysis still gets its response written.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Task runner is stopped via defer
	slog.Info("NewsLens server shutdown complete")
}
