package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/bunny-go/adapters/event"
	"github.com/khoahotran/bunny-go/adapters/media_storage"
	"github.com/khoahotran/bunny-go/internal/application/service"
	jobsUC "github.com/khoahotran/bunny-go/internal/application/usecase/jobs"
	"github.com/khoahotran/bunny-go/internal/config"
	"github.com/khoahotran/bunny-go/pkg/bunny"
	"github.com/khoahotran/bunny-go/pkg/bunny/storage"
	"github.com/khoahotran/bunny-go/pkg/logger"
	"github.com/khoahotran/bunny-go/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting BunnyCDN job worker...")

	if err := cfg.Validate("bunny.access_key", "kafka.brokers"); err != nil {
		appLogger.Fatal("Invalid configuration", err)
	}

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "bunny-worker")
	if err != nil {
		appLogger.Fatal("Failed to initialize tracer", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown tracer", err)
		}
	}()

	endpoint, err := storage.ParseEndpoint(cfg.Bunny.StorageEndpoint)
	if err != nil {
		appLogger.Fatal("Invalid storage endpoint", err)
	}

	// SDK
	client := bunny.New(cfg.Bunny.AccessKey,
		bunny.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		bunny.WithEndpoint(endpoint),
		bunny.WithAccountKey(cfg.Bunny.AccountKey),
		bunny.WithLogger(appLogger),
		bunny.WithTracerProvider(tp),
	)

	var uploader service.Uploader
	if cfg.Bunny.StorageZone != "" {
		uploader, err = media_storage.NewBunnyStorageAdapter(client.CreateClient(cfg.Bunny.StorageZone), cfg.Bunny.PullZoneHost, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize uploader", err)
		}
	}

	var fetcher service.VideoFetcher
	if cfg.Bunny.LibraryID != 0 {
		fetcher = client.GetLibrary(cfg.Bunny.LibraryID, cfg.Bunny.LibraryKey)
	}

	// Worker Use Case
	processJobUC := jobsUC.NewProcessJobUseCase(uploader, fetcher, appLogger)

	// Kafka Consumer
	jobConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicJobs,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer jobConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicJobs), zap.String("group_id", cfg.Kafka.GroupID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		msg, err := jobConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Shutting down worker")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))
		l.Info("Received message", zap.String("topic", msg.Topic))

		payload, err := event.DecodeJobPayload(msg.Value)
		if err != nil {
			l.Error("Failed to unmarshal job. Skipping.", err)
			commitMessage(ctx, jobConsumer, msg, l)
			continue
		}

		if err := processJobUC.Execute(ctx, payload); err != nil {
			l.Error("Failed to process job", err, zap.String("job_id", payload.JobID))
			continue
		}

		commitMessage(ctx, jobConsumer, msg, l)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, l logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		l.Error("Failed to commit message", err)
	}
}
