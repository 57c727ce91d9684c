package view

import (
	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/grid"
)

// animFrames is the length of a token tween in ticks.
const animFrames = 12

// TokenSprite is the on-screen half of a token. Its position is in
// projected coordinates; the board origin is added at draw time.
type TokenSprite struct {
	token *battle.Token
	proj  grid.Projection

	x, y         float64
	fromX, fromY float64
	toX, toY     float64
	frame        int
	done         chan struct{}
}

var _ battle.TokenVisual = (*TokenSprite)(nil)

// NewTokenSprite places a sprite on tok's committed cell.
func NewTokenSprite(tok *battle.Token, proj grid.Projection) *TokenSprite {
	s := &TokenSprite{token: tok, proj: proj}
	s.x, s.y = proj.GridToProjected(tok.Cell.X, tok.Cell.Y)
	return s
}

// AnimateTo starts a tween toward cell. A tween still running is
// superseded and its channel closed.
func (s *TokenSprite) AnimateTo(cell grid.GridCoords) <-chan struct{} {
	s.finish()
	s.fromX, s.fromY = s.x, s.y
	s.toX, s.toY = s.proj.GridToProjected(cell.X, cell.Y)
	s.frame = 0
	s.done = make(chan struct{})
	return s.done
}

// DisplayedPosition implements battle.TokenVisual.
func (s *TokenSprite) DisplayedPosition() (float64, float64) { return s.x, s.y }

// DragTo pins the sprite under the pointer, dropping any tween.
func (s *TokenSprite) DragTo(px, py float64) {
	s.finish()
	s.x, s.y = px, py
}

// Update advances the tween by one tick.
func (s *TokenSprite) Update() {
	if s.done == nil {
		return
	}
	s.frame++
	if s.frame >= animFrames {
		s.x, s.y = s.toX, s.toY
		s.finish()
		return
	}
	t := easeOut(float64(s.frame) / animFrames)
	s.x = s.fromX + (s.toX-s.fromX)*t
	s.y = s.fromY + (s.toY-s.fromY)*t
}

func (s *TokenSprite) finish() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func easeOut(t float64) float64 {
	return 1 - (1-t)*(1-t)
}
