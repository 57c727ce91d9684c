package battle

import (
	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// Token is a piece on the battle map. Cell is the last committed position;
// what the player sees lives behind the TokenVisual.
type Token struct {
	ID      string
	Name    string
	Cell    grid.GridCoords
	Profile *movement.Profile

	visual TokenVisual
}

// NewToken creates a token at cell with a full movement budget.
func NewToken(id, name string, cell grid.GridCoords, profile *movement.Profile) *Token {
	if profile == nil {
		profile = movement.NewProfile(movement.Speeds{})
	}
	return &Token{
		ID:      id,
		Name:    name,
		Cell:    cell,
		Profile: profile,
		visual:  nopVisual{},
	}
}

// SetVisual attaches the on-screen handle. A nil visual detaches it.
func (t *Token) SetVisual(v TokenVisual) {
	if v == nil {
		t.visual = nopVisual{}
		return
	}
	t.visual = v
}

// Visual returns the attached on-screen handle.
func (t *Token) Visual() TokenVisual { return t.visual }

// Locked reports whether the token has no movement left in any mode.
func (t *Token) Locked() bool { return t.Profile.MaxRemaining() <= 0 }

// ResetMovement restores the full budget at the start of a turn.
func (t *Token) ResetMovement() { t.Profile.Reset() }

func (t *Token) label() string {
	if t == nil {
		return "--"
	}
	return t.ID
}
