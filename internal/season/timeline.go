package season

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange is returned by Timeline for an empty range or non-positive step.
var ErrInvalidRange = errors.New("invalid timeline range")

// maxTimelineSteps bounds the work a single Timeline call may do.
const maxTimelineSteps = 100_000

// Transition marks the first sampled instant of a new phase.
type Transition struct {
	At   time.Time  `json:"at"`
	Info SeasonInfo `json:"info"`
}

// Timeline samples [from, to] every step and returns the instants at which the
// phase changes. The first entry is always from itself.
func Timeline(from, to time.Time, step time.Duration, cal Calendar) ([]Transition, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive, got %s", ErrInvalidRange, step)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s precedes start %s", ErrInvalidRange,
			to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if steps := to.Sub(from) / step; steps > maxTimelineSteps {
		return nil, fmt.Errorf("%w: %d steps exceeds limit of %d", ErrInvalidRange, steps, maxTimelineSteps)
	}

	var (
		out  []Transition
		last Phase
	)
	for t := from; !t.After(to); t = t.Add(step) {
		info := Compute(t, cal)
		p := Phase{Year: info.Year, Status: info.Status, HasEnded: info.HasEnded}
		if len(out) == 0 || p != last {
			out = append(out, Transition{At: t, Info: info})
			last = p
		}
	}
	return out, nil
}
