package grid

import "math"

// GridCoords addresses one cell of the battle map.
type GridCoords struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy).
func (c GridCoords) Add(dx, dy int) GridCoords {
	return GridCoords{X: c.X + dx, Y: c.Y + dy}
}

// Projection maps grid cells onto the diamond-projected display plane.
type Projection struct {
	TileW float64
	TileH float64
}

// DefaultProjection uses 64×32 diamond tiles.
var DefaultProjection = Projection{TileW: 64, TileH: 32}

// GridToProjected returns the visual centroid of cell (x, y).
func (p Projection) GridToProjected(x, y int) (float64, float64) {
	hw := p.TileW / 2
	hh := p.TileH / 2
	px := float64(x-y) * hw
	py := float64(x+y)*hh + hh
	return px, py
}

// ProjectedToGrid is the algebraic inverse of GridToProjected, floored
// after inversion.
func (p Projection) ProjectedToGrid(px, py float64) (int, int) {
	hw := p.TileW / 2
	hh := p.TileH / 2
	a := px / hw        // x - y
	b := (py - hh) / hh // x + y
	x := (a + b) / 2
	y := (b - a) / 2
	return int(math.Floor(x)), int(math.Floor(y))
}

// PickCell returns the cell whose diamond contains the point (px, py).
// The centroid of a cell inverts to (x+0.5, y+0.5) once shifted by half a
// tile, so flooring resolves the whole diamond to that cell.
func (p Projection) PickCell(px, py float64) GridCoords {
	x, y := p.ProjectedToGrid(px, py+p.TileH/2)
	return GridCoords{X: x, Y: y}
}

// TileCorners returns the top, right, bottom and left vertices of the
// diamond for cell (x, y).
func (p Projection) TileCorners(x, y int) [4][2]float64 {
	cx, cy := p.GridToProjected(x, y)
	hw := p.TileW / 2
	hh := p.TileH / 2
	return [4][2]float64{
		{cx, cy - hh},
		{cx + hw, cy},
		{cx, cy + hh},
		{cx - hw, cy},
	}
}
