package battle

import (
	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// TokenVisual is the on-screen handle of a token. AnimateTo starts moving
// the displayed token toward cell and returns a channel closed on arrival;
// the session never waits on it.
type TokenVisual interface {
	AnimateTo(cell grid.GridCoords) <-chan struct{}
	DisplayedPosition() (px, py float64)
}

// PathRenderer draws the hover path preview.
type PathRenderer interface {
	ShowPath(path []grid.GridCoords, cost float64)
	Clear()
}

// RangeRenderer draws the reachable-cells overlay for the selected token.
// It is optional; the session checks for it on the PathRenderer it is given.
type RangeRenderer interface {
	ShowRange(cells []grid.GridCoords)
}

// ModeChooser asks the player which movement mode to use for a pending
// move. The chooser must eventually call Session.Confirm or Session.Cancel
// exactly once.
type ModeChooser interface {
	ChooseMode(target grid.GridCoords, modes []movement.Mode)
}

// MoveMetrics counts session outcomes.
type MoveMetrics interface {
	RecordOutcome(kind OutcomeKind)
	RecordCommit(mode movement.Mode, feet float64)
	RecordCancel()
}

type nopVisual struct{}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (nopVisual) AnimateTo(grid.GridCoords) <-chan struct{} { return closedChan }
func (nopVisual) DisplayedPosition() (float64, float64) { return 0, 0 }

type nopRenderer struct{}

func (nopRenderer) ShowPath([]grid.GridCoords, float64) {}
func (nopRenderer) Clear() {}

type nopChooser struct{}

func (nopChooser) ChooseMode(grid.GridCoords, []movement.Mode) {}

type nopMetrics struct{}

func (nopMetrics) RecordOutcome(OutcomeKind) {}
func (nopMetrics) RecordCommit(movement.Mode, float64) {}
func (nopMetrics) RecordCancel() {}
