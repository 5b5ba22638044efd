package season

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_CurrentFollowsClock(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(date(2025, time.January, 7))
	c := NewClassifier(fakeClock, DefaultCalendar())

	assert.Equal(t, StatusRegular, c.Current().Status)

	fakeClock.Advance(3 * 24 * time.Hour)
	assert.Equal(t, StatusPlayoffs, c.Current().Status)

	fakeClock.Advance(60 * 24 * time.Hour)
	info := c.Current()
	assert.Equal(t, StatusOffseason, info.Status)
	assert.True(t, info.HasEnded)
}

func TestClassifier_At(t *testing.T) {
	c := NewClassifier(clockwork.NewFakeClockAt(date(2030, time.June, 1)), DefaultCalendar())

	info := c.At(date(2024, time.September, 15))
	assert.Equal(t, 2024, info.Year)
	assert.Equal(t, StatusRegular, info.Status)
}

func TestClassifier_NilClockUsesRealTime(t *testing.T) {
	c := NewClassifier(nil, DefaultCalendar())

	before := time.Now()
	snap := c.Snapshot()
	after := time.Now()

	assert.False(t, snap.EvaluatedAt.Before(before))
	assert.False(t, snap.EvaluatedAt.After(after))
	assert.Equal(t, SeasonYear(snap.EvaluatedAt, DefaultCalendar()), snap.Year)
}

func TestClassifier_Snapshot(t *testing.T) {
	now := time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)
	c := NewClassifier(clockwork.NewFakeClockAt(now), DefaultCalendar())

	snap := c.Snapshot()

	assert.Equal(t, 2024, snap.Year)
	assert.Equal(t, StatusPlayoffs, snap.Status)
	assert.Equal(t, "The 2024 playoffs are in progress.", snap.Message)
	assert.True(t, snap.ShowStandings)
	assert.Equal(t, date(2025, time.September, 1), snap.NextSeasonStart)
	assert.Equal(t, "September 2025", snap.NextSeasonLabel)
	assert.Equal(t, now, snap.EvaluatedAt)
	assert.Equal(t, Phase{Year: 2024, Status: StatusPlayoffs}, snap.Phase())
}

func TestSnapshot_JSON(t *testing.T) {
	c := NewClassifier(nil, DefaultCalendar())
	snap := c.SnapshotAt(date(2024, time.September, 15))

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(2024), body["year"])
	assert.Equal(t, "regular", body["status"])
	assert.Equal(t, true, body["show_standings"])
	assert.Equal(t, "2024-09-01T00:00:00Z", body["season_start_date"])
	assert.Equal(t, "2025-09-01T00:00:00Z", body["next_season_start"])
	assert.Equal(t, "2024-09-15T00:00:00Z", body["evaluated_at"])
}

func TestTimeline(t *testing.T) {
	from := date(2024, time.August, 15)
	to := date(2025, time.August, 15)

	got, err := Timeline(from, to, 24*time.Hour, DefaultCalendar())
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, from, got[0].At)
	assert.Equal(t, 2023, got[0].Info.Year)
	assert.Equal(t, StatusOffseason, got[0].Info.Status)

	assert.Equal(t, date(2024, time.September, 1), got[1].At)
	assert.Equal(t, StatusRegular, got[1].Info.Status)

	// Jan 8 itself is still regular season.
	assert.Equal(t, date(2025, time.January, 9), got[2].At)
	assert.Equal(t, StatusPlayoffs, got[2].Info.Status)

	assert.Equal(t, date(2025, time.February, 16), got[3].At)
	assert.Equal(t, StatusOffseason, got[3].Info.Status)
	assert.True(t, got[3].Info.HasEnded)
}

func TestTimeline_SingleInstant(t *testing.T) {
	at := date(2024, time.October, 1)
	got, err := Timeline(at, at, time.Hour, DefaultCalendar())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, StatusRegular, got[0].Info.Status)
}

func TestTimeline_InvalidRange(t *testing.T) {
	from := date(2024, time.August, 15)

	tests := []struct {
		name string
		to   time.Time
		step time.Duration
	}{
		{"zero step", from.Add(time.Hour), 0},
		{"negative step", from.Add(time.Hour), -time.Hour},
		{"end before start", from.Add(-time.Hour), time.Hour},
		{"too many steps", from.AddDate(1, 0, 0), time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Timeline(from, tt.to, tt.step, DefaultCalendar())
			require.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}
