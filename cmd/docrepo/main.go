package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docrepo/internal/config"
	logpkg "github.com/kailas-cloud/docrepo/internal/logger"
	"github.com/kailas-cloud/docrepo/internal/metrics"
	documentrepo "github.com/kailas-cloud/docrepo/internal/repository/document"
	chiTransport "github.com/kailas-cloud/docrepo/internal/transport/chi"
	documentuc "github.com/kailas-cloud/docrepo/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docrepo/internal/usecase/health"
	searchuc "github.com/kailas-cloud/docrepo/internal/usecase/search"
	"github.com/kailas-cloud/docrepo/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docrepo API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int64("max_body_bytes", cfg.Limits.MaxBodyBytes),
		zap.Bool("auth_enabled", len(cfg.Auth.APIKeys) > 0),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterStoreMetrics()
	recorder := metrics.StoreRecorder{}

	// One store per process, shared by every service
	docRepo := documentrepo.New()

	docSvc := documentuc.New(docRepo).WithRecorder(recorder)
	searchSvc := searchuc.New(docRepo).WithRecorder(recorder)
	healthSvc := healthuc.New(docSvc)

	handler := chiTransport.NewServer(docSvc, searchSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.Limits.MaxBodyBytes).
		Router(cfg.Auth.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	n, err := docSvc.Count(shutdownCtx)
	if err != nil {
		logger.Warn("Could not count documents at shutdown", zap.Error(err))
		logger.Info("Server stopped gracefully")
		return
	}
	logger.Info("Server stopped gracefully", zap.Int("documents_dropped", n))
}
