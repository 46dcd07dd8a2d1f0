package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/adapters/event"
	"github.com/khoahotran/portfolio-api/adapters/media_storage"
	"github.com/khoahotran/portfolio-api/adapters/persistence"
	contentUC "github.com/khoahotran/portfolio-api/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Portfolio Snapshot Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("config Kafka brokers not found", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content storage
	contentStorage, closeStorage, err := persistence.OpenContentStorage(ctx, cfg, appLogger, nil)
	if err != nil {
		appLogger.Fatal("cannot open content storage", err)
	}
	defer closeStorage()

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	// Worker Use Case
	loadStore := func(ctx context.Context) snapshot.DatasetSource {
		store := contentUC.NewStore(contentStorage, appLogger)
		store.Init(ctx)
		return store
	}
	processEventUC := snapshot.NewProcessEventUseCase(loadStore, uploader, cfg.Cloudinary.Folder, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicContentEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicContentEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload content.Event
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Warn("Failed to unmarshal event, skipping", zap.Error(err), zap.Int64("offset", msg.Offset))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if _, err := processEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process content event", err,
				zap.String("collection", payload.Collection),
				zap.String("event_type", string(payload.Type)),
			)
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
