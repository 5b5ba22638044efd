package season

import "time"

// Snapshot is the consumer-facing view of a SeasonInfo: what the front end
// renders and what is published downstream.
type Snapshot struct {
	SeasonInfo

	Message         string    `json:"message"`
	ShowStandings   bool      `json:"show_standings"`
	NextSeasonStart time.Time `json:"next_season_start"`
	NextSeasonLabel string    `json:"next_season_label"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
}

// NewSnapshot derives the presentation fields from info.
func NewSnapshot(info SeasonInfo, evaluatedAt time.Time) Snapshot {
	next := NextSeasonStart(info)
	return Snapshot{
		SeasonInfo:      info,
		Message:         StatusMessage(info),
		ShowStandings:   ShouldDisplayStandings(info),
		NextSeasonStart: next,
		NextSeasonLabel: FormatSeasonDate(next),
		EvaluatedAt:     evaluatedAt,
	}
}

// Phase identifies where an instant sits in the season. Two snapshots in the
// same phase carry the same information for consumers. HasEnded separates the
// two offseason branches of one season-year.
type Phase struct {
	Year     int
	Status   Status
	HasEnded bool
}

// Phase returns the snapshot's phase key.
func (s Snapshot) Phase() Phase {
	return Phase{Year: s.Year, Status: s.Status, HasEnded: s.HasEnded}
}
