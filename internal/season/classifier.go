package season

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Classifier evaluates the season phase against an injected time source.
// Production code uses the real clock; tests pass a fake for fixed instants.
type Classifier struct {
	clock    clockwork.Clock
	calendar Calendar
}

// NewClassifier creates a Classifier. Pass a nil clock to use real time.
func NewClassifier(clock clockwork.Clock, cal Calendar) *Classifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Classifier{clock: clock, calendar: cal}
}

// Current classifies the clock's current instant.
func (c *Classifier) Current() SeasonInfo {
	return Compute(c.clock.Now(), c.calendar)
}

// At classifies a supplied instant.
func (c *Classifier) At(t time.Time) SeasonInfo {
	return Compute(t, c.calendar)
}

// Snapshot classifies the current instant and decorates it for consumers.
func (c *Classifier) Snapshot() Snapshot {
	now := c.clock.Now()
	return NewSnapshot(Compute(now, c.calendar), now)
}

// SnapshotAt is Snapshot for a supplied instant.
func (c *Classifier) SnapshotAt(t time.Time) Snapshot {
	return NewSnapshot(Compute(t, c.calendar), t)
}

// Calendar returns the anchors the classifier evaluates against.
func (c *Classifier) Calendar() Calendar { return c.calendar }

// Clock returns the time source, so callers can share it (e.g. for tickers).
func (c *Classifier) Clock() clockwork.Clock { return c.clock }
