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

	"gpcaffidavit/internal/auth"
	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/docx"
	"gpcaffidavit/internal/handler"
	"gpcaffidavit/internal/middleware"
	"gpcaffidavit/internal/parser"
	_ "gpcaffidavit/internal/parser/claude"
	_ "gpcaffidavit/internal/parser/gemini"
	_ "gpcaffidavit/internal/parser/openai"
	"gpcaffidavit/internal/port"
	"gpcaffidavit/internal/router"
	"gpcaffidavit/internal/service"
	s3storage "gpcaffidavit/internal/storage/s3"
	"gpcaffidavit/internal/template"
	"gpcaffidavit/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Log.Debug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize extraction
	extractor, err := parser.NewFromConfig(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	extractionValidator, err := validator.NewExtractionValidator()
	if err != nil {
		return fmt.Errorf("failed to compile extraction schema: %w", err)
	}

	// Initialize storage, only when something reads from or writes to a bucket
	var storage port.ObjectStorage
	if cfg.Template.Source == "s3" || cfg.S3.OutputBucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize template and filler
	source, err := template.NewSource(&cfg.Template, storage)
	if err != nil {
		return fmt.Errorf("failed to initialize template source: %w", err)
	}
	filler, err := docx.NewFiller(cfg.Template.Strategy)
	if err != nil {
		return fmt.Errorf("failed to initialize template filler: %w", err)
	}
	log.Printf("Template: %s (strategy %s)", source.Describe(), cfg.Template.Strategy)

	// Initialize services
	extractionSvc := service.NewExtractionService(extractor, extractionValidator, cfg.Upload)
	affidavitSvc := service.NewAffidavitService(source, filler, cfg.Template)
	batchSvc := service.NewBatchService(extractionSvc, affidavitSvc, storage, cfg.S3, cfg.Upload)

	if err := affidavitSvc.Ready(ctx); err != nil {
		log.Printf("WARNING: template not loadable at startup: %v", err)
	}

	// Initialize handlers
	handlers := router.Handlers{
		Extract:   handler.NewExtractHandler(extractionSvc),
		Affidavit: handler.NewAffidavitHandler(affidavitSvc),
		Batch:     handler.NewBatchHandler(batchSvc),
		Health:    handler.NewHealthHandler(affidavitSvc),
	}

	var verifier middleware.TokenVerifier
	if cfg.Auth.Enabled() {
		verifier = auth.NewVerifier(cfg.Auth)
		log.Printf("Bearer token auth enabled (issuer %q)", cfg.Auth.Issuer)
	}

	// Setup router
	r := router.Setup(cfg, handlers, verifier)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
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

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
