// Package view is the ebiten host for a battle session: it draws the
// diamond-projected board and feeds mouse gestures into battle.Session.
package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/metrics"
	"github.com/Garsondee/tactical-grid/internal/movement"
	"github.com/Garsondee/tactical-grid/internal/scenario"
)

const boardMarginY = 48

// Game implements ebiten.Game and the session's rendering collaborators.
type Game struct {
	width, height int
	boardW        int // screen width left of the log panel

	session *battle.Session
	proj    grid.Projection
	sprites map[string]*TokenSprite
	metrics *metrics.Recorder
	moveLog *MoveLog
	face    *text.GoTextFace

	// Board origin in screen space: projected (0,0) lands here.
	originX, originY float64

	// Renderer state pushed by the session.
	path       []grid.GridCoords
	pathCost   float64
	rangeCells map[grid.GridCoords]struct{}
	menu       modeMenu

	// Pointer state.
	dragging  *TokenSprite
	lastX     int
	lastY     int
	hoverCell grid.GridCoords
	hoverOK   bool
	menuHover int
	status    string
	showHUD   bool
}

// menuKeys pick the n-th entry of the mode menu.
var menuKeys = [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

var (
	_ battle.PathRenderer  = (*Game)(nil)
	_ battle.RangeRenderer = (*Game)(nil)
	_ battle.ModeChooser   = (*Game)(nil)
)

// New builds a game around sc in a screenW×screenH window.
func New(sc *scenario.Scenario, screenW, screenH int) (*Game, error) {
	face, err := newFontFace(15)
	if err != nil {
		return nil, err
	}
	g := &Game{
		width:     screenW,
		height:    screenH,
		boardW:    screenW - logPanelWidth,
		proj:      sc.Projection(),
		sprites:   make(map[string]*TokenSprite),
		metrics:   metrics.NewRecorder(),
		moveLog:   NewMoveLog(),
		face:      face,
		showHUD:   true,
		menuHover: -1,
	}

	el := battle.NewEventLog(false)
	el.OnAdd = g.moveLog.Add
	s, err := sc.Build(
		battle.WithPathRenderer(g),
		battle.WithModeChooser(g),
		battle.WithEventLog(el),
		battle.WithMetrics(g.metrics),
	)
	if err != nil {
		return nil, err
	}
	g.session = s
	for _, tok := range s.Tokens() {
		sp := NewTokenSprite(tok, g.proj)
		tok.SetVisual(sp)
		g.sprites[tok.ID] = sp
	}

	// Centre the diamond horizontally in the board area.
	hw := g.proj.TileW / 2
	g.originX = float64(g.boardW)/2 - float64(sc.Width-sc.Height)*hw/2
	g.originY = boardMarginY
	return g, nil
}

// Session exposes the underlying session.
func (g *Game) Session() *battle.Session { return g.session }

func (g *Game) toScreen(px, py float64) (float64, float64) {
	return px + g.originX, py + g.originY
}

func (g *Game) toProjected(sx, sy float64) (float64, float64) {
	return sx - g.originX, sy - g.originY
}

func (g *Game) cellScreen(c grid.GridCoords) (float64, float64) {
	return g.toScreen(g.proj.GridToProjected(c.X, c.Y))
}

// --- battle collaborators ---

// ShowPath implements battle.PathRenderer.
func (g *Game) ShowPath(path []grid.GridCoords, cost float64) {
	g.path = path
	g.pathCost = cost
}

// Clear implements battle.PathRenderer.
func (g *Game) Clear() {
	g.path = nil
	g.pathCost = 0
}

// ShowRange implements battle.RangeRenderer.
func (g *Game) ShowRange(cells []grid.GridCoords) {
	g.rangeCells = make(map[grid.GridCoords]struct{}, len(cells))
	for _, c := range cells {
		g.rangeCells[c] = struct{}{}
	}
}

// ChooseMode implements battle.ModeChooser by opening the mode menu next
// to the drop target.
func (g *Game) ChooseMode(target grid.GridCoords, modes []movement.Mode) {
	sx, sy := g.cellScreen(target)
	g.menu = modeMenu{open: true, target: target, modes: modes, x: sx + menuOffsetX, y: sy - menuTitleH}
	if pm := g.session.Pending(); pm != nil {
		g.menu.feet = pm.DistanceFeet
	}
	// Keep the menu inside the board area.
	g.menu.x = math.Min(g.menu.x, float64(g.boardW)-menuWidth-4)
	g.menu.y = math.Max(4, math.Min(g.menu.y, float64(g.height)-g.menu.height()-4))
}

// --- ebiten.Game ---

func (g *Game) Update() error {
	for _, sp := range g.sprites {
		sp.Update()
	}
	g.handleKeys()

	mx, my := ebiten.CursorPosition()
	if g.menu.open {
		g.handleMenu(float64(mx), float64(my))
		return nil
	}
	g.handlePointer(mx, my)
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.session.Log().Format()); err != nil {
			g.status = "copy failed: " + err.Error()
		} else {
			g.status = fmt.Sprintf("copied %d log entries", g.session.Log().Len())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.session.StartTurn()
		g.menu.open = false
		g.status = "new turn"
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) && g.hoverOK && !g.menu.open {
		c := g.hoverCell
		switch {
		case g.session.Grid().IsBlocked(c.X, c.Y):
			g.session.RemoveObstacle(c.X, c.Y)
		case !g.session.AddObstacle(c.X, c.Y):
			g.status = "cannot block an occupied cell"
		}
	}
}

func (g *Game) handleMenu(sx, sy float64) {
	g.menuHover = g.menu.itemAt(sx, sy)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.cancelPending()
		return
	}
	for i := range min(len(g.menu.modes), len(menuKeys)) {
		if inpututil.IsKeyJustPressed(menuKeys[i]) {
			g.confirmPending(g.menu.modes[i])
			return
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.menuClick(sx, sy)
	}
}

// menuClick confirms the item under (sx, sy). A click outside the menu box
// cancels the pending move; the title row does nothing.
func (g *Game) menuClick(sx, sy float64) {
	if i := g.menu.itemAt(sx, sy); i >= 0 {
		g.confirmPending(g.menu.modes[i])
		return
	}
	if !g.menu.contains(sx, sy) {
		g.cancelPending()
	}
}

func (g *Game) confirmPending(m movement.Mode) {
	if err := g.session.Confirm(m); err != nil {
		g.status = err.Error()
		return
	}
	g.menu.open = false
	g.menuHover = -1
	g.status = ""
}

func (g *Game) cancelPending() {
	if err := g.session.Cancel(); err != nil {
		g.status = err.Error()
	}
	g.menu.open = false
	g.menuHover = -1
}

func (g *Game) handlePointer(mx, my int) {
	px, py := g.toProjected(float64(mx), float64(my))
	if mx < g.boardW {
		g.hoverCell = g.proj.PickCell(px, py)
		g.hoverOK = g.session.Grid().InBounds(g.hoverCell.X, g.hoverCell.Y)
	} else {
		g.hoverOK = false
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.session.PointerDown(px, py)
		if g.session.State() == battle.StateDragging {
			g.dragging = g.sprites[g.session.SelectedToken().ID]
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if g.dragging != nil {
			g.dragging.DragTo(px, py)
		}
		out := g.session.PointerUp(px, py)
		g.dragging = nil
		if out.Kind == battle.OutcomeInvalid && out.Err != nil {
			g.status = out.Err.Error()
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if g.dragging != nil {
			g.dragging.DragTo(px, py)
		}
	default:
		if mx != g.lastX || my != g.lastY {
			g.session.PointerMove(px, py)
		}
	}
	g.lastX, g.lastY = mx, my
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.drawBoard(screen)
	g.drawPath(screen)
	g.drawTokens(screen)

	g.moveLog.Draw(screen, g.boardW, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.menu.draw(screen, g.face, g.menuHover)
}

// drawHUD renders the selection summary and key legend in the bottom-left
// corner.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{}
	if tok := g.session.SelectedToken(); tok != nil {
		lines = append(lines,
			fmt.Sprintf("%s  %s", tok.Name, tok.Profile),
			fmt.Sprintf("remaining %gft (%s)", tok.Profile.RemainingActive(), tok.Profile.ActiveMode()),
		)
	} else {
		lines = append(lines, "click or drag a token")
	}
	snap := g.metrics.Snapshot()
	lines = append(lines,
		fmt.Sprintf("state: %s  moves: %d  cancels: %d  invalid: %d",
			g.session.State(), snap.Commits, snap.Cancels, snap.Invalid),
		"[T] new turn  [O] toggle obstacle  [C] copy log  [H] HUD",
		"drop: 1-5 pick mode  Esc cancel",
	)
	if g.status != "" {
		lines = append(lines, "> "+g.status)
	}

	const lineH = 14
	const charW = 6
	const pad = 6
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + pad*2)
	boxH := float32(len(lines)*lineH + pad*2)
	bx := float32(6)
	by := float32(g.height) - boxH - 6

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+pad, int(by)+pad+i*lineH)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
