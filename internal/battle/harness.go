package battle

import (
	"fmt"

	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// TestBattle is a headless battle harness used by tests and the report
// command. Every collaborator is a recorder, so the outbound calls a real
// host would see can be asserted on.
type TestBattle struct {
	Width   int
	Height  int
	Session *Session
	Log     *EventLog

	Paths   *RecordingRenderer
	Chooser *RecordingChooser

	obstacles  []grid.GridCoords
	placements []placement
	visuals    map[string]*RecordingVisual
	metrics    MoveMetrics
	threshold  float64
	proj       grid.Projection
	errs       []error
}

type placement struct {
	id     string
	cell   grid.GridCoords
	speeds movement.Speeds
}

// battleOptionKind controls the pass in which an option is applied.
type battleOptionKind int

const (
	battleOptInfra    battleOptionKind = iota // grid size, verbose, metrics: applied first
	battleOptObstacle                         // obstacles: applied after the grid exists
	battleOptToken                            // tokens: applied last
)

// BattleOption is a builder function applied to a TestBattle during construction.
type BattleOption struct {
	kind battleOptionKind
	fn   func(*TestBattle)
}

// WithGridSize sets the board dimensions.
func WithGridSize(w, h int) BattleOption {
	return BattleOption{battleOptInfra, func(tb *TestBattle) {
		tb.Width = w
		tb.Height = h
	}}
}

// WithVerbose records hover previews in the event log.
func WithVerbose(v bool) BattleOption {
	return BattleOption{battleOptInfra, func(tb *TestBattle) {
		tb.Log = NewEventLog(v)
	}}
}

// WithMoveMetrics counts outcomes into m.
func WithMoveMetrics(m MoveMetrics) BattleOption {
	return BattleOption{battleOptInfra, func(tb *TestBattle) {
		tb.metrics = m
	}}
}

// WithTestClickThreshold overrides the click-vs-drag threshold.
func WithTestClickThreshold(px float64) BattleOption {
	return BattleOption{battleOptInfra, func(tb *TestBattle) {
		tb.threshold = px
	}}
}

// WithTestProjection sets the tile geometry used for pointer picking.
func WithTestProjection(p grid.Projection) BattleOption {
	return BattleOption{battleOptInfra, func(tb *TestBattle) {
		tb.proj = p
	}}
}

// WithObstacle blocks one cell.
func WithObstacle(x, y int) BattleOption {
	return BattleOption{battleOptObstacle, func(tb *TestBattle) {
		tb.obstacles = append(tb.obstacles, grid.GridCoords{X: x, Y: y})
	}}
}

// WithWall blocks every cell on the straight or diagonal segment from
// (x0,y0) to (x1,y1) inclusive.
func WithWall(x0, y0, x1, y1 int) BattleOption {
	return BattleOption{battleOptObstacle, func(tb *TestBattle) {
		dx, dy := sign(x1-x0), sign(y1-y0)
		x, y := x0, y0
		for {
			tb.obstacles = append(tb.obstacles, grid.GridCoords{X: x, Y: y})
			if x == x1 && y == y1 {
				return
			}
			if x != x1 {
				x += dx
			}
			if y != y1 {
				y += dy
			}
		}
	}}
}

// WithToken places a token with the given speeds at (x, y).
func WithToken(id string, x, y int, speeds movement.Speeds) BattleOption {
	return BattleOption{battleOptToken, func(tb *TestBattle) {
		tb.placements = append(tb.placements, placement{id: id, cell: grid.GridCoords{X: x, Y: y}, speeds: speeds})
	}}
}

// NewTestBattle constructs a TestBattle from the given options in ordered passes:
//  1. Infrastructure (grid size, projection, verbose, metrics)
//  2. Session + obstacles
//  3. Tokens
//
// Setup errors (duplicate ids, off-board or stacked tokens) are kept in Errors.
func NewTestBattle(opts ...BattleOption) *TestBattle {
	tb := &TestBattle{
		Width:     10,
		Height:    10,
		Log:       NewEventLog(false),
		Paths:     &RecordingRenderer{},
		Chooser:   &RecordingChooser{},
		visuals:   make(map[string]*RecordingVisual),
		threshold: DefaultClickThreshold,
		proj:      grid.DefaultProjection,
	}
	for _, o := range opts {
		if o.kind == battleOptInfra {
			o.fn(tb)
		}
	}

	sessOpts := []Option{
		WithPathRenderer(tb.Paths),
		WithModeChooser(tb.Chooser),
		WithEventLog(tb.Log),
		WithClickThreshold(tb.threshold),
		WithProjection(tb.proj),
	}
	if tb.metrics != nil {
		sessOpts = append(sessOpts, WithMetrics(tb.metrics))
	}
	tb.Session = NewSession(tb.Width, tb.Height, sessOpts...)

	for _, o := range opts {
		if o.kind == battleOptObstacle {
			o.fn(tb)
		}
	}
	for _, c := range tb.obstacles {
		tb.Session.Grid().AddObstacle(c.X, c.Y)
	}

	for _, o := range opts {
		if o.kind == battleOptToken {
			o.fn(tb)
		}
	}
	for _, p := range tb.placements {
		tok := NewToken(p.id, p.id, p.cell, movement.NewProfile(p.speeds))
		vis := &RecordingVisual{proj: tb.Session.Projection()}
		vis.snap(p.cell)
		tok.SetVisual(vis)
		if err := tb.Session.AddToken(tok); err != nil {
			tb.errs = append(tb.errs, err)
			continue
		}
		tb.visuals[p.id] = vis
	}
	return tb
}

// Errors returns setup errors collected during construction.
func (tb *TestBattle) Errors() []error { return tb.errs }

// Token returns the token with id, or nil.
func (tb *TestBattle) Token(id string) *Token { return tb.Session.TokenByID(id) }

// Visual returns the recording visual attached to token id.
func (tb *TestBattle) Visual(id string) *RecordingVisual { return tb.visuals[id] }

// Drag presses on token id, moves the pointer to target's centroid and
// releases there.
func (tb *TestBattle) Drag(id string, target grid.GridCoords) (Outcome, error) {
	tok := tb.Token(id)
	if tok == nil {
		return Outcome{}, fmt.Errorf("drag: unknown token %q", id)
	}
	sx, sy := tb.Session.CellCenter(tok.Cell)
	tx, ty := tb.Session.CellCenter(target)
	tb.Session.PointerDown(sx, sy)
	tb.Session.PointerMove(tx, ty)
	if v := tb.visuals[id]; v != nil {
		v.DragTo(tx, ty)
	}
	return tb.Session.PointerUp(tx, ty), nil
}

// Click presses and releases on the centroid of cell without moving.
func (tb *TestBattle) Click(cell grid.GridCoords) {
	x, y := tb.Session.CellCenter(cell)
	tb.Session.PointerDown(x, y)
	tb.Session.PointerUp(x, y)
}

// Hover moves the pointer over cell with no button held.
func (tb *TestBattle) Hover(cell grid.GridCoords) {
	x, y := tb.Session.CellCenter(cell)
	tb.Session.PointerMove(x, y)
}

// MoveTo drags token id to target and confirms mode when the drop is
// pending. It returns the drag outcome and any confirmation error.
func (tb *TestBattle) MoveTo(id string, target grid.GridCoords, mode movement.Mode) (Outcome, error) {
	out, err := tb.Drag(id, target)
	if err != nil {
		return out, err
	}
	if out.Kind != OutcomePendingConfirmation {
		return out, nil
	}
	return out, tb.Session.Confirm(mode)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// --- Recording collaborators ---

// RecordingRenderer remembers the last preview and range it was given.
type RecordingRenderer struct {
	Path   []grid.GridCoords
	Cost   float64
	Shown  bool
	Range  []grid.GridCoords
	Shows  int
	Clears int
}

// ShowPath implements PathRenderer.
func (r *RecordingRenderer) ShowPath(path []grid.GridCoords, cost float64) {
	r.Path = path
	r.Cost = cost
	r.Shown = true
	r.Shows++
}

// Clear implements PathRenderer.
func (r *RecordingRenderer) Clear() {
	r.Path = nil
	r.Cost = 0
	r.Shown = false
	r.Clears++
}

// ShowRange implements RangeRenderer.
func (r *RecordingRenderer) ShowRange(cells []grid.GridCoords) {
	r.Range = cells
}

// RecordingChooser remembers mode-choice requests.
type RecordingChooser struct {
	Target grid.GridCoords
	Modes  []movement.Mode
	Calls  int
}

// ChooseMode implements ModeChooser.
func (c *RecordingChooser) ChooseMode(target grid.GridCoords, modes []movement.Mode) {
	c.Target = target
	c.Modes = modes
	c.Calls++
}

// RecordingVisual is a TokenVisual that arrives instantly and remembers
// every animation target.
type RecordingVisual struct {
	Animations []grid.GridCoords

	proj   grid.Projection
	px, py float64
}

// AnimateTo implements TokenVisual.
func (v *RecordingVisual) AnimateTo(cell grid.GridCoords) <-chan struct{} {
	v.Animations = append(v.Animations, cell)
	v.snap(cell)
	return closedChan
}

// DisplayedPosition implements TokenVisual.
func (v *RecordingVisual) DisplayedPosition() (float64, float64) { return v.px, v.py }

// DragTo moves the displayed position without a committed cell.
func (v *RecordingVisual) DragTo(px, py float64) { v.px, v.py = px, py }

func (v *RecordingVisual) snap(cell grid.GridCoords) {
	v.px, v.py = v.proj.GridToProjected(cell.X, cell.Y)
}
