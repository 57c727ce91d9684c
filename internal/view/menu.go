package view

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

const (
	menuItemH   = 24
	menuWidth   = 170
	menuPad     = 6
	menuOffsetX = 28
	menuTitleH  = 22
)

// modeMenu is the popup shown while a move awaits a mode choice.
type modeMenu struct {
	open   bool
	target grid.GridCoords
	modes  []movement.Mode
	feet   float64

	// top-left corner in screen space, set when opened
	x, y float64
}

func newFontFace(size float64) (*text.GoTextFace, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load menu font: %w", err)
	}
	return &text.GoTextFace{Source: src, Size: size}, nil
}

func (m *modeMenu) height() float64 {
	return menuTitleH + float64(len(m.modes))*menuItemH + menuPad
}

// itemAt returns the index of the item under (sx, sy), or -1.
func (m *modeMenu) itemAt(sx, sy float64) int {
	if !m.open {
		return -1
	}
	if sx < m.x || sx >= m.x+menuWidth {
		return -1
	}
	rel := sy - m.y - menuTitleH
	if rel < 0 {
		return -1
	}
	i := int(rel / menuItemH)
	if i >= len(m.modes) {
		return -1
	}
	return i
}

// contains reports whether (sx, sy) is anywhere over the menu box.
func (m *modeMenu) contains(sx, sy float64) bool {
	return m.open && sx >= m.x && sx < m.x+menuWidth && sy >= m.y && sy < m.y+m.height()
}

func (m *modeMenu) draw(screen *ebiten.Image, face *text.GoTextFace, hover int) {
	if !m.open {
		return
	}
	x, y := float32(m.x), float32(m.y)
	h := float32(m.height())
	vector.FillRect(screen, x, y, menuWidth, h, color.RGBA{R: 16, G: 18, B: 26, A: 235}, false)
	vector.StrokeRect(screen, x, y, menuWidth, h, 1.0, color.RGBA{R: 120, G: 130, B: 180, A: 220}, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(m.x+menuPad, m.y+3)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 200, G: 200, B: 220, A: 255})
	text.Draw(screen, fmt.Sprintf("Move %gft  [Esc]", m.feet), face, op)

	for i, mode := range m.modes {
		iy := m.y + menuTitleH + float64(i)*menuItemH
		if i == hover {
			vector.FillRect(screen, x+2, float32(iy), menuWidth-4, menuItemH, color.RGBA{R: 50, G: 60, B: 100, A: 200}, false)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(m.x+menuPad, iy+3)
		op.ColorScale.ScaleWithColor(modeColor(mode))
		text.Draw(screen, fmt.Sprintf("%d  %s", i+1, mode), face, op)
	}
}

func modeColor(m movement.Mode) color.RGBA {
	switch m {
	case movement.Fly:
		return color.RGBA{R: 150, G: 200, B: 255, A: 255}
	case movement.Swim:
		return color.RGBA{R: 80, G: 170, B: 220, A: 255}
	case movement.Burrow:
		return color.RGBA{R: 190, G: 140, B: 90, A: 255}
	case movement.Climb:
		return color.RGBA{R: 200, G: 200, B: 120, A: 255}
	default:
		return color.RGBA{R: 230, G: 230, B: 230, A: 255}
	}
}
