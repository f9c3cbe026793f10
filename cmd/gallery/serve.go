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

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-gallery/internal/application"
	galleryEvents "github.com/Kilat-Pet-Delivery/service-gallery/internal/events"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/metrics"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-gallery/internal/repository"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gallery HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Error reporting
	if cfg.SentryConfig.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryConfig.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Warn("failed to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Connect to database and migrate
	db, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open photo store: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	galleryMetrics, err := metrics.NewGalleryMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Event publisher
	var publisher kafka.Publisher = kafka.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		log.Info("kafka disabled, like events will not be published")
	}

	// Initialize repositories and services
	photoRepo := repository.NewGormPhotoRepository(db)
	photoService := application.NewPhotoService(photoRepo, log)
	likeService := application.NewLikeService(photoRepo, publisher, cfg.KafkaConfig.EventsTopic, galleryMetrics, log)

	if cfg.SeedOnStart {
		if _, err := application.NewSeeder(photoRepo, galleryMetrics, log).SeedIfEmpty(context.Background()); err != nil {
			return fmt.Errorf("failed to seed photos: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Like request consumer
	if cfg.KafkaConfig.Enabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + serviceName
		likeConsumer := galleryEvents.NewLikeRequestConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			cfg.KafkaConfig.LikeRequestsTopic,
			likeService,
			log,
		)
		defer func() { _ = likeConsumer.Close() }()

		go func() {
			log.Info("starting like request consumer")
			if err := likeConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("like request consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	if !logger.IsDevelopment(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	tmpl, err := handler.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.MetricsMiddleware(galleryMetrics))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	handler.NewPhotoHandler(photoService, likeService).RegisterRoutes(&router.RouterGroup)
	handler.NewPageHandler(photoService, likeService, log).RegisterRoutes(&router.RouterGroup)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("shutting down " + serviceName + "...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
	return nil
}
