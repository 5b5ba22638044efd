// Package season classifies an instant into an NFL season phase for the
// fantasy front end.
//
// # Season-year
//
// A season is labelled by the calendar year in which it begins. Its late
// stages (the end of the regular season and the playoffs) fall in the
// following calendar year:
//
//	2024 season: Sep 1 2024 ─ regular ─ Jan 8 2025 ─ playoffs ─ Feb 15 2025
//
// The season-year of an instant is its calendar year when the month is on or
// after the season-start month, and the previous calendar year otherwise.
//
// # Phases
//
// The instant is tested against three anchors in order:
//
//	now <  start                 offseason (not yet started)
//	start <= now <= regular end  regular
//	regular end < now <= end     playoffs
//	now >  end                   offseason (ended)
//
// Both offseason branches collapse into [StatusOffseason]; callers tell them
// apart with [SeasonInfo.HasStarted] and [SeasonInfo.HasEnded].
// [StatusPreseason] is only produced when the [Calendar] carries a preseason
// window.
//
// # Anchors
//
// The default anchors (Sep 1, Jan 8, Feb 15) are approximate. They are
// carried by [Calendar] so deployments can adjust them without code changes.
// Anchors are midnight in the calendar's location.
package season
