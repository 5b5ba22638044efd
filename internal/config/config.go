package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaTopic      string
	PublishInterval time.Duration

	// Season anchors.
	Calendar season.Calendar
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	publishInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("PUBLISH_INTERVAL", "1m"))
	if err != nil || publishInterval <= 0 {
		return nil, errors.New("invalid PUBLISH_INTERVAL")
	}

	kafkaEnabled := true
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid KAFKA_ENABLED: %w", err)
		}
	}

	cal, err := loadCalendar()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "season-status"),
		PublishInterval: publishInterval,

		Calendar: cal,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required")
	}

	return cfg, nil
}

func loadCalendar() (season.Calendar, error) {
	start, err := parseAnchor("SEASON_START", "09-01")
	if err != nil {
		return season.Calendar{}, err
	}
	regularEnd, err := parseAnchor("REGULAR_SEASON_END", "01-08")
	if err != nil {
		return season.Calendar{}, err
	}
	playoffEnd, err := parseAnchor("PLAYOFF_END", "02-15")
	if err != nil {
		return season.Calendar{}, err
	}

	var preseason *season.MonthDay
	if v := os.Getenv("PRESEASON_START"); v != "" {
		md, err := season.ParseMonthDay(v)
		if err != nil {
			return season.Calendar{}, fmt.Errorf("PRESEASON_START: %w", err)
		}
		preseason = &md
	}

	tz := sharedcfg.EnvOrDefault("SEASON_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return season.Calendar{}, fmt.Errorf("invalid SEASON_TIMEZONE %q: %w", tz, err)
	}

	cal, err := season.NewCalendar(start, regularEnd, playoffEnd, preseason, loc)
	if err != nil {
		return season.Calendar{}, fmt.Errorf("season anchors (SEASON_START, REGULAR_SEASON_END, PLAYOFF_END, PRESEASON_START): %w", err)
	}
	return cal, nil
}

func parseAnchor(key, fallback string) (season.MonthDay, error) {
	md, err := season.ParseMonthDay(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil {
		return season.MonthDay{}, fmt.Errorf("%s: %w", key, err)
	}
	return md, nil
}
