package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/fantasy-season-service/internal/config"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

// messageWriter is the subset of *kafkago.Writer the adapter uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces season snapshots to a Kafka topic.
// It implements publisher.SnapshotPublisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured season topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one snapshot, keyed by season-year so every
// phase of a season lands on the same partition.
func (w *Writer) Publish(ctx context.Context, snap season.Snapshot) error {
	msg, err := serializeToMessage(snap)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish season snapshot: %w", err)
	}
	w.logger.Debug("season snapshot published", "year", snap.Year, "status", snap.Status)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Snapshot into a Kafka message.
func serializeToMessage(snap season.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize season snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(snap.Year)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(snap.Status)},
			{Key: "evaluated_at", Value: []byte(snap.EvaluatedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
