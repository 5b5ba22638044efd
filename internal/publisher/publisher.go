package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/fantasy-season-service/internal/observability"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

// SnapshotSource evaluates the current season phase.
type SnapshotSource interface {
	Snapshot() season.Snapshot
}

// SnapshotPublisher delivers a snapshot downstream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap season.Snapshot) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Publisher re-evaluates the season on an interval and publishes a snapshot
// whenever the phase changes.
type Publisher struct {
	source   SnapshotSource
	sink     SnapshotPublisher
	clock    clockwork.Clock
	interval time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool

	// Owned by the Run goroutine.
	lastObserved  *season.Phase
	lastPublished *season.Phase
}

// New creates a Publisher. Pass a nil clock to use real time.
func New(source SnapshotSource, sink SnapshotPublisher, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Publisher{
		source:   source,
		sink:     sink,
		clock:    clock,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a snapshot has been published, or an error
// describing why the service is not yet ready.
func (p *Publisher) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no season snapshot has been published yet")
	}
	return nil
}

// Run evaluates immediately and then on every interval until the context is
// cancelled. Failed publishes are retried with exponential backoff.
func (p *Publisher) Run(ctx context.Context) error {
	p.logger.Info("publisher started", "interval", p.interval)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	backoff := initialBackoff
	for {
		if ctx.Err() != nil {
			p.logger.Info("publisher stopping", "reason", ctx.Err())
			return nil
		}

		if err := p.Tick(ctx); err != nil {
			if !p.sleepWithContext(ctx, backoff) {
				p.logger.Info("publisher stopping", "reason", ctx.Err())
				return nil
			}
			backoff = nextBackoff(backoff)
			continue
		}
		backoff = initialBackoff

		select {
		case <-ctx.Done():
			p.logger.Info("publisher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// Tick runs one evaluate-and-publish cycle. It returns an error only when a
// pending phase change could not be published; the change stays pending.
func (p *Publisher) Tick(ctx context.Context) error {
	snap := p.source.Snapshot()
	p.metrics.ObserveSeason(snap.SeasonInfo)

	phase := snap.Phase()
	if p.lastObserved != nil && *p.lastObserved != phase {
		p.metrics.PhaseTransitions.Inc()
		p.logger.Info("season phase changed",
			"from_year", p.lastObserved.Year,
			"from_status", p.lastObserved.Status,
			"year", phase.Year,
			"status", phase.Status,
		)
	}
	p.lastObserved = &phase

	if p.lastPublished != nil && *p.lastPublished == phase {
		return nil
	}

	start := p.clock.Now()
	if err := p.sink.Publish(ctx, snap); err != nil {
		p.metrics.PublishErrors.Inc()
		p.logger.Error("publish snapshot failed", "error", err, "year", phase.Year, "status", phase.Status)
		return err
	}
	p.metrics.PublishDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.SnapshotsPublished.Inc()

	p.lastPublished = &phase
	p.ready.Store(true)
	p.logger.Info("season snapshot published",
		"year", snap.Year,
		"status", snap.Status,
		"show_standings", snap.ShowStandings,
	)
	return nil
}

func (p *Publisher) sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := p.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

// Discard is a SnapshotPublisher that drops every snapshot. It is used when
// Kafka publishing is disabled so readiness still tracks evaluation.
type Discard struct{}

func (Discard) Publish(context.Context, season.Snapshot) error { return nil }
