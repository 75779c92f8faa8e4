package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"churn-insight-service/internal/adapters/primary/http/handlers"
	"churn-insight-service/internal/adapters/primary/http/middleware"
	"churn-insight-service/internal/adapters/secondary/artifact"
	"churn-insight-service/internal/config"
	"churn-insight-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Secondary Adapters
	loader := artifact.NewFileLoader(cfg.Model.Path)
	if _, err := loader.Load(context.Background()); err != nil {
		log.Warnf("model artifact not loadable yet (predictions will fail until it is added): %v", err)
	} else {
		log.Infof("model artifact found at %s", loader.Path())
	}

	// Core Services
	datasetSvc := services.NewDatasetService(cfg.Upload.PreviewRows)
	predictionSvc := services.NewPredictionService(loader, services.PredictionConfig{
		Policy:     cfg.Model.SchemaPolicy,
		Encoding:   cfg.Model.EncodingStrategy,
		TopFactors: cfg.Model.TopFactors,
	})
	analyticsSvc := services.NewAnalyticsService(cfg.Analytics.HistogramBins)
	viewSvc := services.NewViewService()

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(datasetSvc, predictionSvc, analyticsSvc, viewSvc, loader)

	// Setup router
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery(), middleware.BodyLimit(cfg.Upload.MaxBytes))

	api := router.Group("/api/v1/churn")
	h.RegisterRoutes(api)

	router.GET("/healthz", h.Health)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
