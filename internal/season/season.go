package season

import (
	"fmt"
	"time"
)

// SeasonInfo is the classification of a single instant. It is recomputed on
// every call and never mutated.
type SeasonInfo struct {
	Year                 int       `json:"year"`
	HasStarted           bool      `json:"has_started"`
	HasEnded             bool      `json:"has_ended"`
	IsOffseason          bool      `json:"is_offseason"`
	SeasonStartDate      time.Time `json:"season_start_date"`
	RegularSeasonEndDate time.Time `json:"regular_season_end_date"`
	SeasonEndDate        time.Time `json:"season_end_date"`
	Status               Status    `json:"status"`
}

// SeasonYear returns the season-year label for now: the calendar year when
// the month is on or after the season-start month, otherwise the year before.
func SeasonYear(now time.Time, cal Calendar) int {
	local := now.In(cal.Zone())
	if local.Month() >= cal.SeasonStart.Month {
		return local.Year()
	}
	return local.Year() - 1
}

// Compute classifies now against cal. It is total and has no side effects.
func Compute(now time.Time, cal Calendar) SeasonInfo {
	loc := cal.Zone()
	year := SeasonYear(now, cal)

	start := cal.SeasonStart.In(year, loc)
	regularEnd := cal.RegularSeasonEnd.In(year+1, loc)
	end := cal.PlayoffEnd.In(year+1, loc)

	var status Status
	switch {
	case now.Before(start):
		status = StatusOffseason
	case !now.After(regularEnd):
		status = StatusRegular
	case !now.After(end):
		status = StatusPlayoffs
	default:
		status = StatusOffseason
		if cal.Preseason != nil && !now.Before(cal.Preseason.In(year+1, loc)) {
			status = StatusPreseason
		}
	}

	return SeasonInfo{
		Year:                 year,
		HasStarted:           !now.Before(start),
		HasEnded:             now.After(end),
		IsOffseason:          status == StatusOffseason,
		SeasonStartDate:      start,
		RegularSeasonEndDate: regularEnd,
		SeasonEndDate:        end,
		Status:               status,
	}
}

// StatusMessage renders the banner sentence for info.
func StatusMessage(info SeasonInfo) string {
	switch info.Status {
	case StatusPreseason:
		return fmt.Sprintf("The %d season is over. Preseason games for %d are underway.", info.Year, info.Year+1)
	case StatusRegular:
		return fmt.Sprintf("The %d regular season is in progress.", info.Year)
	case StatusPlayoffs:
		return fmt.Sprintf("The %d playoffs are in progress.", info.Year)
	case StatusOffseason:
		if !info.HasStarted {
			return fmt.Sprintf("The %d season has not started yet.", info.Year)
		}
		return fmt.Sprintf("The %d season has ended. The %d season is coming up.", info.Year, info.Year+1)
	default:
		return fmt.Sprintf("The %d season status is unavailable.", info.Year)
	}
}

// ShouldDisplayStandings reports whether standings are meaningful, i.e. games
// are being played.
func ShouldDisplayStandings(info SeasonInfo) bool {
	return info.Status == StatusRegular || info.Status == StatusPlayoffs
}

// NextSeasonStart returns the start of the season the countdown should target:
// the current season's start if it has not begun, otherwise the following one.
func NextSeasonStart(info SeasonInfo) time.Time {
	if !info.HasStarted {
		return info.SeasonStartDate
	}
	s := info.SeasonStartDate
	return time.Date(info.Year+1, s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
}

// FormatSeasonDate renders t as "September 2024".
func FormatSeasonDate(t time.Time) string {
	return t.Format("January 2006")
}
