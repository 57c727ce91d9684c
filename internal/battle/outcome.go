package battle

import (
	"errors"

	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

var (
	ErrNoSelection          = errors.New("no token selected")
	ErrNoPendingMove        = errors.New("no pending move")
	ErrMovePending          = errors.New("a move is awaiting confirmation")
	ErrModeNotAllowed       = errors.New("movement mode not allowed for this move")
	ErrNoPath               = errors.New("no path to target")
	ErrInsufficientMovement = errors.New("insufficient movement remaining")
	ErrDuplicateToken       = errors.New("duplicate token id")
	ErrOutOfBounds          = errors.New("cell out of bounds")
	ErrCellOccupied         = errors.New("cell occupied by another token")
	ErrCellBlocked          = errors.New("cell blocked by an obstacle")
)

// OutcomeKind classifies the result of a drag release.
type OutcomeKind uint8

const (
	OutcomeNone OutcomeKind = iota // gesture did not reach validation (click, refused press)
	OutcomeSuccess
	OutcomeInvalid
	OutcomePendingConfirmation
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalid:
		return "invalid"
	case OutcomePendingConfirmation:
		return "pending"
	default:
		return "unknown"
	}
}

// Outcome is the typed result of ValidateAndMove. Invalid outcomes carry
// the sentinel error explaining why; the host reverts the token's
// displayed position.
type Outcome struct {
	Kind         OutcomeKind
	Target       grid.GridCoords
	Path         []grid.GridCoords
	DistanceFeet float64
	ValidModes   []movement.Mode
	Err          error
}

// PendingMove is a validated drop awaiting a mode choice.
type PendingMove struct {
	Token        *Token
	Origin       grid.GridCoords
	Target       grid.GridCoords
	Path         []grid.GridCoords
	DistanceFeet float64
	ValidModes   []movement.Mode

	version uint64
}

func (pm *PendingMove) allows(m movement.Mode) bool {
	for _, v := range pm.ValidModes {
		if v == m {
			return true
		}
	}
	return false
}
