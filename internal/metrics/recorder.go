// Package metrics keeps in-memory counters of movement outcomes.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// Snapshot is a point-in-time copy of a Recorder's counters.
type Snapshot struct {
	Validations  uint64             `json:"validations"`
	Success      uint64             `json:"success"`
	Invalid      uint64             `json:"invalid"`
	Pending      uint64             `json:"pending"`
	Commits      uint64             `json:"commits"`
	Cancels      uint64             `json:"cancels"`
	FeetByMode   map[string]float64 `json:"feet_by_mode"`
	CommitByMode map[string]uint64  `json:"commit_by_mode"`
}

// Recorder implements battle.MoveMetrics.
type Recorder struct {
	mu       sync.Mutex
	outcomes map[battle.OutcomeKind]uint64
	commits  uint64
	cancels  uint64
	feet     map[movement.Mode]float64
	byMode   map[movement.Mode]uint64
}

var _ battle.MoveMetrics = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		outcomes: map[battle.OutcomeKind]uint64{},
		feet:     map[movement.Mode]float64{},
		byMode:   map[movement.Mode]uint64{},
	}
}

// RecordOutcome counts one validation result.
func (r *Recorder) RecordOutcome(kind battle.OutcomeKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[kind]++
}

// RecordCommit counts a committed move and the feet it covered in mode.
func (r *Recorder) RecordCommit(mode movement.Mode, feet float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits++
	r.feet[mode] += feet
	r.byMode[mode]++
}

// RecordCancel counts a discarded pending move.
func (r *Recorder) RecordCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancels++
}

// Snapshot copies the current counters. Validations is the sum of the
// success, invalid and pending outcomes.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Success:      r.outcomes[battle.OutcomeSuccess],
		Invalid:      r.outcomes[battle.OutcomeInvalid],
		Pending:      r.outcomes[battle.OutcomePendingConfirmation],
		Commits:      r.commits,
		Cancels:      r.cancels,
		FeetByMode:   make(map[string]float64, len(r.feet)),
		CommitByMode: make(map[string]uint64, len(r.byMode)),
	}
	out.Validations = out.Success + out.Invalid + out.Pending
	for m, v := range r.feet {
		out.FeetByMode[m.String()] = v
	}
	for m, v := range r.byMode {
		out.CommitByMode[m.String()] = v
	}
	return out
}

// Format renders the snapshot as report lines.
func (s Snapshot) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validations=%d success=%d invalid=%d pending=%d\n",
		s.Validations, s.Success, s.Invalid, s.Pending)
	fmt.Fprintf(&sb, "commits=%d cancels=%d\n", s.Commits, s.Cancels)
	modes := make([]string, 0, len(s.CommitByMode))
	for m := range s.CommitByMode {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	for _, m := range modes {
		fmt.Fprintf(&sb, "  %-6s moves=%d feet=%g\n", m, s.CommitByMode[m], s.FeetByMode[m])
	}
	return sb.String()
}
