package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-api/adapters/http"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/access"
	contentUC "github.com/khoahotran/portfolio-api/internal/application/usecase/content"
	feedUC "github.com/khoahotran/portfolio-api/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/pkg/auth"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/metrics"
	"github.com/khoahotran/portfolio-api/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Portfolio API Server...", zap.String("storage_backend", cfg.Storage.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		appLogger.Fatal("cannot init tracing", err)
	}
	defer tracing.Shutdown(tp, appLogger)

	appMetrics := metrics.New()

	// Initialize dependencies
	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	contentStorage, closeStorage, err := persistence.OpenContentStorage(ctx, cfg, appLogger, redisClient)
	if err != nil {
		appLogger.Fatal("cannot open content storage", err)
	}
	defer closeStorage()

	storeOpts := []contentUC.Option{contentUC.WithMetrics(appMetrics)}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		storeOpts = append(storeOpts, contentUC.WithEvents(kafkaClient))
	} else {
		appLogger.Warn("Kafka brokers not configured, content events are disabled")
	}

	var uploader service.Uploader
	uploader, err = media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if errors.Is(err, media_storage.ErrNotConfigured) {
		appLogger.Warn("Cloudinary not configured, snapshot uploads are disabled")
		uploader = nil
	} else if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Services
	jwtSvc, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		appLogger.Fatal("cannot init JWT service", err)
	}
	sessionStorage := persistence.NewRedisSessionStorage(redisClient, cfg.Storage.Namespace)
	gates := access.NewGatekeeper(cfg.Auth.AdminSecret, sessionStorage, cfg.Auth.SessionTTL, appLogger, appMetrics)

	// Use Cases
	store := contentUC.NewStore(contentStorage, appLogger, storeOpts...)
	defer store.Close()
	store.Init(ctx)

	loginUseCase := access.NewLoginUseCase(gates, jwtSvc, appLogger)
	snapshotUseCase := snapshot.NewSnapshotUseCase(store, uploader, cfg.Cloudinary.Folder, appLogger)
	feedUseCase := feedUC.NewFeedUseCase(store, feedUC.Site{
		Title:   cfg.Site.Title,
		BaseURL: cfg.Site.BaseURL,
		Author:  cfg.Site.Author,
	}, appLogger)

	// HTTP Handlers
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:   appLogger,
		Metrics:  appMetrics,
		JWT:      jwtSvc,
		Gates:    gates,
		Auth:     httpAdapter.NewAuthHandler(loginUseCase, jwtSvc, appLogger),
		Content:  httpAdapter.NewContentHandler(store, appLogger),
		Snapshot: httpAdapter.NewSnapshotHandler(snapshotUseCase, appLogger),
		Feed:     httpAdapter.NewFeedHandler(feedUseCase, appLogger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
