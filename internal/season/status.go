package season

import "fmt"

// Status is the phase of the season an instant falls in.
type Status string

// Season phases. Preseason is only produced when a calendar opts into it.
const (
	StatusPreseason Status = "preseason"
	StatusRegular   Status = "regular"
	StatusPlayoffs  Status = "playoffs"
	StatusOffseason Status = "offseason"
)

// Statuses lists every phase in calendar order.
var Statuses = []Status{StatusPreseason, StatusRegular, StatusPlayoffs, StatusOffseason}

func (s Status) String() string { return string(s) }

// Valid reports whether s is one of the declared phases.
func (s Status) Valid() bool {
	switch s {
	case StatusPreseason, StatusRegular, StatusPlayoffs, StatusOffseason:
		return true
	default:
		return false
	}
}

// MarshalText rejects unknown phases so they never reach the wire.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown season status %q", string(s))
	}
	return []byte(s), nil
}

// UnmarshalText accepts only the declared phases.
func (s *Status) UnmarshalText(b []byte) error {
	v := Status(b)
	if !v.Valid() {
		return fmt.Errorf("unknown season status %q", string(b))
	}
	*s = v
	return nil
}
