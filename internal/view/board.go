package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/grid"
)

var (
	colGround    = color.RGBA{R: 46, G: 64, B: 46, A: 255}
	colGroundAlt = color.RGBA{R: 52, G: 72, B: 52, A: 255}
	colObstacle  = color.RGBA{R: 70, G: 66, B: 62, A: 255}
	colRange     = color.RGBA{R: 60, G: 100, B: 150, A: 255}
	colTileEdge  = color.RGBA{R: 20, G: 30, B: 20, A: 200}
	colPath      = color.RGBA{R: 250, G: 220, B: 90, A: 255}
	colPending   = color.RGBA{R: 240, G: 140, B: 60, A: 255}
	colSelected  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func (g *Game) fillDiamond(screen *ebiten.Image, c grid.GridCoords, col color.RGBA) {
	corners := g.proj.TileCorners(c.X, c.Y)
	var path vector.Path
	for i, p := range corners {
		sx, sy := g.toScreen(p[0], p[1])
		if i == 0 {
			path.MoveTo(float32(sx), float32(sy))
		} else {
			path.LineTo(float32(sx), float32(sy))
		}
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(col)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func (g *Game) strokeDiamond(screen *ebiten.Image, c grid.GridCoords, width float32, col color.RGBA) {
	corners := g.proj.TileCorners(c.X, c.Y)
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		ax, ay := g.toScreen(a[0], a[1])
		bx, by := g.toScreen(b[0], b[1])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, col, true)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	og := g.session.Grid()
	for y := 0; y < og.Height(); y++ {
		for x := 0; x < og.Width(); x++ {
			c := grid.GridCoords{X: x, Y: y}
			col := colGround
			if (x+y)%2 == 1 {
				col = colGroundAlt
			}
			if _, ok := g.rangeCells[c]; ok {
				col = colRange
			}
			if og.IsBlocked(x, y) {
				col = colObstacle
			}
			g.fillDiamond(screen, c, col)
			g.strokeDiamond(screen, c, 1, colTileEdge)
		}
	}
	if g.hoverOK {
		g.strokeDiamond(screen, g.hoverCell, 2, color.RGBA{R: 255, G: 255, B: 255, A: 90})
	}
}

func (g *Game) drawPath(screen *ebiten.Image) {
	if len(g.path) < 2 {
		return
	}
	for i := 1; i < len(g.path); i++ {
		ax, ay := g.cellScreen(g.path[i-1])
		bx, by := g.cellScreen(g.path[i])
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 3, colPath, true)
	}
	end := g.path[len(g.path)-1]
	g.strokeDiamond(screen, end, 2, colPath)
	ex, ey := g.cellScreen(end)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%gft", g.pathCost), int(ex)+10, int(ey)-20)
}

func (g *Game) drawTokens(screen *ebiten.Image) {
	if pm := g.session.Pending(); pm != nil {
		g.strokeDiamond(screen, pm.Target, 3, colPending)
	}
	sel := g.session.SelectedToken()
	r := float32(g.proj.TileH * 0.4)
	for _, tok := range g.session.Tokens() {
		sp := g.sprites[tok.ID]
		px, py := sp.DisplayedPosition()
		sx, sy := g.toScreen(px, py)
		col := tokenColor(tok)
		vector.FillCircle(screen, float32(sx), float32(sy), r, col, true)
		if tok == sel {
			vector.StrokeCircle(screen, float32(sx), float32(sy), r+3, 2, colSelected, true)
		}
		ebitenutil.DebugPrintAt(screen, tok.Name, int(sx)-len(tok.Name)*3, int(sy)+int(r)+2)
	}
}

func tokenColor(tok *battle.Token) color.RGBA {
	if tok.Locked() {
		return color.RGBA{R: 110, G: 110, B: 110, A: 255}
	}
	c := modeColor(tok.Profile.ActiveMode())
	c.A = 255
	return c
}
