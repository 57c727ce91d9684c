package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactical-grid/internal/battle"
)

const (
	logPanelWidth = 360
	logMaxEntries = 60
	logLineHeight = 14
)

// MoveLog is a ring buffer of session events rendered on-screen. The full
// history stays in the session's battle.EventLog.
type MoveLog struct {
	entries []battle.EventEntry
	head    int
	count   int
}

func NewMoveLog() *MoveLog {
	return &MoveLog{
		entries: make([]battle.EventEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (ml *MoveLog) Add(e battle.EventEntry) {
	ml.entries[ml.head] = e
	ml.head = (ml.head + 1) % logMaxEntries
	if ml.count < logMaxEntries {
		ml.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (ml *MoveLog) Recent() []battle.EventEntry {
	result := make([]battle.EventEntry, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + logMaxEntries) % logMaxEntries
		result[i] = ml.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case battle.CatMove:
		return color.RGBA{R: 90, G: 200, B: 120, A: 255}
	case battle.CatEconomy:
		return color.RGBA{R: 220, G: 180, B: 70, A: 255}
	case battle.CatProtocol:
		return color.RGBA{R: 210, G: 70, B: 70, A: 255}
	case battle.CatObstacle:
		return color.RGBA{R: 140, G: 140, B: 150, A: 255}
	default:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	}
}

// Draw renders the panel at panelX, full height.
func (ml *MoveLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 12, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 24, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "MOVE LOG  [C] copy", panelX+8, 0)

	entries := ml.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 30, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		line := fmt.Sprintf("%3d %-7s %s %s", e.Seq, e.Token, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-1)
		y += logLineHeight
	}
}
