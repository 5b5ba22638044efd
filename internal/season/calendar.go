package season

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidMonthDay is returned when a month/day anchor cannot be parsed.
	ErrInvalidMonthDay = errors.New("invalid month/day")

	// ErrInvalidCalendar is returned when anchors are out of order.
	ErrInvalidCalendar = errors.New("invalid season calendar")
)

// leapYear is used to check that a month/day exists at all.
const leapYear = 2000

// MonthDay is a yearless calendar anchor such as Sep 1.
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses an "MM-DD" anchor, e.g. "09-01".
func ParseMonthDay(s string) (MonthDay, error) {
	s = strings.TrimSpace(s)
	monthStr, dayStr, ok := strings.Cut(s, "-")
	if !ok {
		return MonthDay{}, fmt.Errorf("%w: %q (want MM-DD)", ErrInvalidMonthDay, s)
	}
	month, errM := strconv.Atoi(monthStr)
	day, errD := strconv.Atoi(dayStr)
	if errM != nil || errD != nil {
		return MonthDay{}, fmt.Errorf("%w: %q (want MM-DD)", ErrInvalidMonthDay, s)
	}
	md := MonthDay{Month: time.Month(month), Day: day}
	if !md.valid() {
		return MonthDay{}, fmt.Errorf("%w: %q does not exist", ErrInvalidMonthDay, s)
	}
	return md, nil
}

func (md MonthDay) valid() bool {
	if md.Month < time.January || md.Month > time.December || md.Day < 1 {
		return false
	}
	t := time.Date(leapYear, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
	return t.Month() == md.Month && t.Day() == md.Day
}

// In returns midnight of the anchor in the given year and location.
func (md MonthDay) In(year int, loc *time.Location) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, loc)
}

func (md MonthDay) before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// Calendar holds the anchors that bound each phase. SeasonStart falls in the
// season-year; RegularSeasonEnd and PlayoffEnd fall in the following year.
type Calendar struct {
	SeasonStart      MonthDay
	RegularSeasonEnd MonthDay
	PlayoffEnd       MonthDay

	// Preseason, when set, marks the start of the preseason window that
	// precedes SeasonStart in the same calendar year.
	Preseason *MonthDay

	Location *time.Location
}

// DefaultCalendar returns the approximate NFL anchors: Sep 1, Jan 8, Feb 15
// in UTC with no preseason window.
func DefaultCalendar() Calendar {
	return Calendar{
		SeasonStart:      MonthDay{Month: time.September, Day: 1},
		RegularSeasonEnd: MonthDay{Month: time.January, Day: 8},
		PlayoffEnd:       MonthDay{Month: time.February, Day: 15},
		Location:         time.UTC,
	}
}

// NewCalendar validates the anchors and returns a Calendar. A nil location
// means UTC.
func NewCalendar(start, regularEnd, playoffEnd MonthDay, preseason *MonthDay, loc *time.Location) (Calendar, error) {
	if loc == nil {
		loc = time.UTC
	}
	cal := Calendar{
		SeasonStart:      start,
		RegularSeasonEnd: regularEnd,
		PlayoffEnd:       playoffEnd,
		Preseason:        preseason,
		Location:         loc,
	}
	if err := cal.Validate(); err != nil {
		return Calendar{}, err
	}
	return cal, nil
}

// Validate checks that the anchors exist every year and are strictly ordered
// across the season: SeasonStart < RegularSeasonEnd < PlayoffEnd, with the
// optional Preseason between PlayoffEnd and SeasonStart. Every anchor other
// than SeasonStart must fall in an earlier month than SeasonStart.
func (c Calendar) Validate() error {
	type anchor struct {
		name string
		md   MonthDay
	}
	anchors := []anchor{
		{"season start", c.SeasonStart},
		{"regular season end", c.RegularSeasonEnd},
		{"playoff end", c.PlayoffEnd},
	}
	if c.Preseason != nil {
		anchors = append(anchors, anchor{"preseason start", *c.Preseason})
	}
	for _, a := range anchors {
		if !a.md.valid() {
			return fmt.Errorf("%w: %s %s does not exist", ErrInvalidCalendar, a.name, a.md)
		}
		if a.md.Month == time.February && a.md.Day == 29 {
			return fmt.Errorf("%w: %s cannot be Feb 29", ErrInvalidCalendar, a.name)
		}
	}

	if !c.RegularSeasonEnd.before(c.SeasonStart) {
		return fmt.Errorf("%w: regular season end %s must fall before season start %s in the calendar year",
			ErrInvalidCalendar, c.RegularSeasonEnd, c.SeasonStart)
	}
	if !c.RegularSeasonEnd.before(c.PlayoffEnd) {
		return fmt.Errorf("%w: regular season end %s must precede playoff end %s",
			ErrInvalidCalendar, c.RegularSeasonEnd, c.PlayoffEnd)
	}
	if !c.PlayoffEnd.before(c.SeasonStart) {
		return fmt.Errorf("%w: playoff end %s must fall before season start %s in the calendar year",
			ErrInvalidCalendar, c.PlayoffEnd, c.SeasonStart)
	}
	if c.Preseason != nil {
		p := *c.Preseason
		if !c.PlayoffEnd.before(p) || !p.before(c.SeasonStart) {
			return fmt.Errorf("%w: preseason start %s must fall between playoff end %s and season start %s",
				ErrInvalidCalendar, p, c.PlayoffEnd, c.SeasonStart)
		}
	}
	// The season-year is picked by month, so no other anchor may share the
	// start month.
	for _, a := range anchors[1:] {
		if a.md.Month >= c.SeasonStart.Month {
			return fmt.Errorf("%w: %s %s must fall in a month before the season start month (%s)",
				ErrInvalidCalendar, a.name, a.md, c.SeasonStart.Month)
		}
	}
	return nil
}

// Zone returns the location anchors are evaluated in, UTC when unset.
func (c Calendar) Zone() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
