package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcatalog "revu/internal/app/catalog"
	"revu/internal/app/ratings"
	"revu/internal/domain/catalog"
	"revu/internal/infra/broker/kafka"
	"revu/internal/infra/config"
	mongostore "revu/internal/infra/db/mongo"
	ginserver "revu/internal/infra/http/gin"
	"revu/internal/infra/obs"
	"revu/internal/infra/security"
	"revu/internal/infra/storage/memory"
	"revu/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	store, ready := buildStore(ctx, cfg, logger)
	uploader := buildUploader(cfg, logger)
	publisher := buildPublisher(cfg, logger)

	service := &appcatalog.Service{Store: store, Photos: uploader, Logger: logger}
	aggregator := &ratings.Aggregator{Store: store, Events: publisher, Logger: logger}
	authMW := ginserver.AuthMiddleware{
		Verifier: security.NewTokenVerifier(cfg.AuthSecret),
		Logger:   logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: ready,
	}, ginserver.Handlers{
		Catalog:        ginserver.CatalogHandler{Service: service, Logger: logger},
		Ratings:        ginserver.RatingsHandler{Aggregator: aggregator, Service: service, Logger: logger},
		Photo:          ginserver.PhotoHandler{Service: service, Logger: logger},
		Watch:          ginserver.WatchHandler{Service: service, Logger: logger},
		AuthMiddleware: authMW.Handle,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

// buildStore prefers MongoDB and falls back to the in-memory store so local
// runs work without any backing services.
func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (catalog.Store, func() error) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, using in-memory store")
		return memory.NewStore(), nil
	}
	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Warn("mongo unavailable, using in-memory store", "error", err)
		return memory.NewStore(), nil
	}
	if err := client.Ping(ctx); err != nil {
		logger.Warn("mongo ping failed, using in-memory store", "error", err)
		return memory.NewStore(), nil
	}
	logger.Info("mongo store ready", "database", cfg.MongoDB)
	return mongostore.NewStore(client), func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
}

func buildUploader(cfg config.Config, logger *slog.Logger) appcatalog.Uploader {
	uploader, err := s3.NewUploader(
		cfg.S3Endpoint, cfg.S3UseSSL,
		cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicEndpoint,
		logger,
	)
	if err != nil {
		logger.Warn("object storage unavailable, photo uploads disabled", "error", err)
		return s3.NoopUploader{}
	}
	return uploader
}

func buildPublisher(cfg config.Config, logger *slog.Logger) ratings.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, review events disabled")
		return ratings.NoopPublisher{}
	}
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, nil)
	if err != nil {
		logger.Warn("kafka unavailable, review events disabled", "error", err)
		return ratings.NoopPublisher{}
	}
	logger.Info("kafka publisher ready", "topic", cfg.KafkaTopic)
	return publisher
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
