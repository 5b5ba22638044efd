// Command seasoncheck evaluates the season phase for a single instant or
// lists the phase changes across a range. It reads the same SEASON_* anchors
// as the daemon and runs the classifier through a fixed clock, so its output
// matches what the service would report at that instant.
//
// Usage:
//
//	go run ./cmd/seasoncheck -at 2025-01-20
//	go run ./cmd/seasoncheck -at 2024-09-15 -json
//	go run ./cmd/seasoncheck -from 2024-08-01 -to 2025-08-01 -step 24h
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/fantasy-season-service/internal/config"
	"github.com/couchcryptid/fantasy-season-service/internal/season"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, clockwork.NewRealClock()))
}

func run(args []string, stdout, stderr io.Writer, clock clockwork.Clock) int {
	fs := flag.NewFlagSet("seasoncheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	at := fs.String("at", "", "instant to evaluate (YYYY-MM-DD or RFC 3339); defaults to now")
	from := fs.String("from", "", "start of a timeline range")
	to := fs.String("to", "", "end of a timeline range")
	step := fs.Duration("step", 24*time.Hour, "sampling step for a timeline range")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: load config: %v\n", err)
		return 1
	}
	cal := cfg.Calendar

	if *from != "" || *to != "" {
		if *from == "" || *to == "" {
			fmt.Fprintln(stderr, "FATAL: -from and -to must be given together")
			return 2
		}
		if err := printTimeline(stdout, cal, *from, *to, *step, *asJSON); err != nil {
			fmt.Fprintf(stderr, "FATAL: %v\n", err)
			return 1
		}
		return 0
	}

	if *at != "" {
		t, err := season.ParseInstant(*at, cal.Zone())
		if err != nil {
			fmt.Fprintf(stderr, "FATAL: %v\n", err)
			return 1
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	snap := season.NewClassifier(clock, cal).Snapshot()
	if err := printSnapshot(stdout, snap, *asJSON); err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}
	return 0
}

func printSnapshot(w io.Writer, snap season.Snapshot, asJSON bool) error {
	if asJSON {
		return writeJSON(w, snap)
	}

	standings := "hidden"
	if snap.ShowStandings {
		standings = "shown"
	}
	fmt.Fprintf(w, "Season %d: %s\n", snap.Year, phaseLabel(snap.SeasonInfo))
	fmt.Fprintln(w, snap.Message)
	fmt.Fprintf(w, "Standings:      %s\n", standings)
	fmt.Fprintf(w, "Regular season: %s to %s\n", snap.SeasonStartDate.Format(time.DateOnly), snap.RegularSeasonEndDate.Format(time.DateOnly))
	fmt.Fprintf(w, "Playoffs end:   %s\n", snap.SeasonEndDate.Format(time.DateOnly))
	fmt.Fprintf(w, "Next season:    %s (%s)\n", snap.NextSeasonLabel, snap.NextSeasonStart.Format(time.DateOnly))
	return nil
}

func printTimeline(w io.Writer, cal season.Calendar, fromStr, toStr string, step time.Duration, asJSON bool) error {
	from, err := season.ParseInstant(fromStr, cal.Zone())
	if err != nil {
		return err
	}
	to, err := season.ParseInstant(toStr, cal.Zone())
	if err != nil {
		return err
	}

	transitions, err := season.Timeline(from, to, step, cal)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, transitions)
	}
	for _, tr := range transitions {
		fmt.Fprintf(w, "%s  %d  %s\n", tr.At.Format(time.DateOnly), tr.Info.Year, phaseLabel(tr.Info))
	}
	return nil
}

// phaseLabel distinguishes the two offseason branches for humans.
func phaseLabel(info season.SeasonInfo) string {
	if info.Status != season.StatusOffseason {
		return info.Status.String()
	}
	if info.HasEnded {
		return "offseason (ended)"
	}
	return "offseason (not started)"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
