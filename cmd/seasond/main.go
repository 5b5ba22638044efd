package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/fantasy-season-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/fantasy-season-service/internal/adapter/kafka"
	"github.com/couchcryptid/fantasy-season-service/internal/config"
	"github.com/couchcryptid/fantasy-season-service/internal/observability"
	"github.com/couchcryptid/fantasy-season-service/internal/publisher"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	clock := clockwork.NewRealClock()
	classifier := season.NewClassifier(clock, cfg.Calendar)

	// Kafka publishing is feature-flagged via KAFKA_ENABLED.
	var (
		sink   publisher.SnapshotPublisher = publisher.Discard{}
		writer *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		sink = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	pub := publisher.New(classifier, sink, clock, cfg.PublishInterval, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, pub, classifier, metrics, logger)

	logger.Info("season calendar",
		"season_start", cfg.Calendar.SeasonStart.String(),
		"regular_season_end", cfg.Calendar.RegularSeasonEnd.String(),
		"playoff_end", cfg.Calendar.PlayoffEnd.String(),
		"timezone", cfg.Calendar.Zone().String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start snapshot publisher.
	go func() {
		if err := pub.Run(ctx); err != nil {
			logger.Error("publisher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
