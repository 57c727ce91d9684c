package battle

import (
	"math"

	"github.com/Garsondee/tactical-grid/internal/grid"
)

// press tracks one pointer-down until its matching pointer-up.
type press struct {
	token       *Token // token under the pointer at press time, nil for background
	wasSelected bool   // token was already selected before this press
	refused     bool   // press landed on a token that could not be selected
	startX      float64
	startY      float64
}

// PointerDown starts a gesture at projected position (px, py). Pressing an
// unselected token selects it and starts a drag; pressing the selected
// token starts a drag. Input is ignored while a mode choice is pending.
func (s *Session) PointerDown(px, py float64) {
	if s.state == StatePendingConfirmation {
		s.log.Add(s.selected.label(), CatProtocol, "pointer_ignored", "confirmation pending", 0)
		return
	}
	cell := s.proj.PickCell(px, py)
	tok := s.TokenAt(cell)
	p := &press{token: tok, startX: px, startY: py}
	s.press = p
	if tok == nil {
		return
	}
	p.wasSelected = tok == s.selected
	if !p.wasSelected && !s.SelectToken(tok) {
		p.refused = true
		return
	}
	s.state = StateDragging
	s.paths.Clear()
}

// PointerMove updates hover previews. During a press it does nothing; the
// host draws the dragged token at the pointer itself.
func (s *Session) PointerMove(px, py float64) {
	if s.press != nil {
		return
	}
	if s.state != StateSelected {
		return
	}
	cell := s.proj.PickCell(px, py)
	s.HandleHover(cell.X, cell.Y)
}

// PointerUp finishes the gesture at (px, py). Releases that moved less than
// the click threshold are clicks: clicking the selected token or the
// background deselects. A drag of the selected token is validated against
// the cell under the pointer; on Success or Invalid the token's displayed
// position is sent back to its committed cell, on PendingConfirmation it
// stays where it was dropped.
func (s *Session) PointerUp(px, py float64) Outcome {
	p := s.press
	s.press = nil
	if p == nil || p.refused {
		return Outcome{}
	}

	if math.Hypot(px-p.startX, py-p.startY) < s.clickThreshold {
		s.handleClick(p)
		return Outcome{}
	}

	if p.token == nil || p.token != s.selected {
		// Background drags belong to the camera, which lives in the host.
		return Outcome{}
	}
	tok := p.token
	target := s.proj.PickCell(px, py)
	out := s.ValidateAndMove(target)
	if out.Kind == OutcomeSuccess || out.Kind == OutcomeInvalid {
		tok.visual.AnimateTo(tok.Cell)
	}
	return out
}

func (s *Session) handleClick(p *press) {
	switch {
	case p.token == nil:
		if s.state == StateSelected {
			s.DeselectToken()
		}
	case p.wasSelected:
		s.state = StateSelected
		s.DeselectToken()
	default:
		// The press selected a new token; a click keeps it selected.
		s.state = StateSelected
	}
}

// CellCenter returns the projected centroid of c, the point a host should
// feed to the pointer handlers to act on that cell.
func (s *Session) CellCenter(c grid.GridCoords) (float64, float64) {
	return s.proj.GridToProjected(c.X, c.Y)
}
