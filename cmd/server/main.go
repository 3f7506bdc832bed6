package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"invoicelens/internal/config"
	"invoicelens/internal/extractor"
	"invoicelens/internal/extractor/anthropic"
	"invoicelens/internal/extractor/ollama"
	"invoicelens/internal/extractor/openai"
	"invoicelens/internal/handler"
	"invoicelens/internal/logging"
	"invoicelens/internal/router"
	"invoicelens/internal/service"
	"invoicelens/internal/splitter"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register model providers
	openai.Register()
	anthropic.Register()
	ollama.Register()

	model, err := extractor.NewModel(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to initialize %s model: %w", cfg.Extractor.Provider, err)
	}
	client, err := extractor.NewClient(model, &cfg.Extractor, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction client: %w", err)
	}

	// Initialize services
	pageSplitter := splitter.New(cfg.Image, logger)
	documentSvc := service.NewDocumentService(pageSplitter, client, logger)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(documentSvc, cfg.Server.MaxUploadBytes(), logger)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(extractionH, healthH, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{
			"addr":     cfg.Server.Port,
			"provider": cfg.Extractor.Provider,
			"model":    cfg.Extractor.Model,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
