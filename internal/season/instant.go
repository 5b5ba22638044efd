package season

import (
	"fmt"
	"strings"
	"time"
)

// ParseInstant accepts an RFC 3339 timestamp or a bare "2006-01-02" date. Bare
// dates mean midnight in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse instant %q: want YYYY-MM-DD or RFC 3339: %w", s, err)
	}
	return t, nil
}
