package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/metrics"
	"github.com/Garsondee/tactical-grid/internal/scenario"
)

type reportStats struct {
	steps    int
	applied  int
	invalid  int
	failed   int
	snapshot metrics.Snapshot
}

func main() {
	var path string
	var verbose bool

	flag.StringVar(&path, "scenario", "", "scenario JSON file (default: built-in river-crossing)")
	flag.BoolVar(&verbose, "verbose", false, "include hover previews in the event log")
	flag.Parse()

	sc := scenario.Default()
	if path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		sc = loaded
	}

	if _, err := run(os.Stdout, sc, verbose); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// run replays sc through a headless battle and writes the report to w.
func run(w io.Writer, sc *scenario.Scenario, verbose bool) (reportStats, error) {
	rec := metrics.NewRecorder()
	opts := append(sc.Options(), battle.WithVerbose(verbose), battle.WithMoveMetrics(rec))
	tb := battle.NewTestBattle(opts...)
	if errs := tb.Errors(); len(errs) > 0 {
		return reportStats{}, fmt.Errorf("setup: %w", errs[0])
	}

	fmt.Fprintf(w, "=== Movement Report ===\n")
	fmt.Fprintf(w, "scenario=%s board=%dx%d tokens=%d steps=%d\n\n", sc.Name, sc.Width, sc.Height, len(sc.Tokens), len(sc.Steps))

	var rs reportStats
	err := sc.Replay(tb, func(r scenario.StepResult) {
		rs.steps++
		if r.Applied {
			rs.applied++
		}
		if r.Outcome.Kind == battle.OutcomeInvalid {
			rs.invalid++
		}
		if r.Err != nil {
			rs.failed++
		}
		fmt.Fprintln(w, r.String())
	})
	if err != nil {
		return rs, err
	}

	fmt.Fprintf(w, "\n--- Tokens ---\n")
	for _, tok := range tb.Session.Tokens() {
		fmt.Fprintf(w, "%-8s (%d,%d) %s\n", tok.ID, tok.Cell.X, tok.Cell.Y, tok.Profile)
	}

	fmt.Fprintf(w, "\n--- Event Log (%d entries) ---\n", tb.Log.Len())
	fmt.Fprint(w, tb.Log.Format())

	rs.snapshot = rec.Snapshot()
	fmt.Fprintf(w, "\n--- Outcomes ---\n")
	fmt.Fprint(w, rs.snapshot.Format())
	fmt.Fprintf(w, "steps=%d applied=%d invalid=%d failed=%d\n", rs.steps, rs.applied, rs.invalid, rs.failed)
	return rs, nil
}
