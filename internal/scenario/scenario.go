// Package scenario loads battle maps from JSON: board size, obstacles,
// tokens with their movement speeds and an optional script of moves that
// can be replayed headlessly.
package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

//go:embed default.json
var defaultScenario []byte

// Step actions.
const (
	ActionMove     = "move"
	ActionCancel   = "cancel"
	ActionTurn     = "turn"
	ActionObstacle = "obstacle"
	ActionClear    = "clear"
)

// Scenario is the on-disk description of a battle.
type Scenario struct {
	Name             string     `json:"name"`
	Width            int        `json:"width"`
	Height           int        `json:"height"`
	Tile             TileSize   `json:"tile"`
	ClickThresholdPx float64    `json:"click_threshold_px"`
	Obstacles        [][2]int   `json:"obstacles"`
	Tokens           []TokenDef `json:"tokens"`
	Steps            []Step     `json:"steps"`
}

// TileSize is the diamond tile size in pixels. Zero fields fall back to
// grid.DefaultProjection.
type TileSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type TokenDef struct {
	ID     string                    `json:"id"`
	Name   string                    `json:"name"`
	X      int                       `json:"x"`
	Y      int                       `json:"y"`
	Speeds map[movement.Mode]float64 `json:"speeds"`
}

// Step is one scripted action. Mode is only read by move steps; when it
// is absent the first valid mode is confirmed.
type Step struct {
	Action string         `json:"action"`
	Token  string         `json:"token,omitempty"`
	To     [2]int         `json:"to"`
	Mode   *movement.Mode `json:"mode,omitempty"`
}

// Target returns the step's destination cell.
func (s Step) Target() grid.GridCoords { return grid.GridCoords{X: s.To[0], Y: s.To[1]} }

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Default returns the built-in scenario.
func Default() *Scenario {
	sc, err := Parse(defaultScenario)
	if err != nil {
		panic("embedded scenario is invalid: " + err.Error())
	}
	return sc
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks dimensions, that obstacles and tokens are on the board,
// and that every step names a known action and token.
func (sc *Scenario) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("invalid board dimensions: %dx%d", sc.Width, sc.Height)
	}
	if sc.Tile.W < 0 || sc.Tile.H < 0 {
		return fmt.Errorf("invalid tile size: %gx%g", sc.Tile.W, sc.Tile.H)
	}
	if sc.ClickThresholdPx < 0 {
		return fmt.Errorf("invalid click threshold: %g", sc.ClickThresholdPx)
	}

	in := func(x, y int) bool { return x >= 0 && x < sc.Width && y >= 0 && y < sc.Height }
	blocked := make(map[[2]int]bool, len(sc.Obstacles))
	for _, o := range sc.Obstacles {
		if !in(o[0], o[1]) {
			return fmt.Errorf("obstacle (%d,%d) is off the board", o[0], o[1])
		}
		blocked[o] = true
	}

	ids := make(map[string]bool, len(sc.Tokens))
	occupied := make(map[[2]int]string, len(sc.Tokens))
	for i, t := range sc.Tokens {
		if t.ID == "" {
			return fmt.Errorf("token %d has no id", i)
		}
		if ids[t.ID] {
			return fmt.Errorf("token %q: %w", t.ID, battle.ErrDuplicateToken)
		}
		ids[t.ID] = true
		if !in(t.X, t.Y) {
			return fmt.Errorf("token %q at (%d,%d): %w", t.ID, t.X, t.Y, battle.ErrOutOfBounds)
		}
		at := [2]int{t.X, t.Y}
		if blocked[at] {
			return fmt.Errorf("token %q starts at (%d,%d): %w", t.ID, t.X, t.Y, battle.ErrCellBlocked)
		}
		if other, ok := occupied[at]; ok {
			return fmt.Errorf("token %q starts at (%d,%d) with %q: %w", t.ID, t.X, t.Y, other, battle.ErrCellOccupied)
		}
		occupied[at] = t.ID
		for m, v := range t.Speeds {
			if v < 0 {
				return fmt.Errorf("token %q: negative %s speed %g", t.ID, m, v)
			}
		}
	}

	var errs []error
	for i, s := range sc.Steps {
		switch s.Action {
		case ActionMove, ActionCancel:
			if !ids[s.Token] {
				errs = append(errs, fmt.Errorf("step %d: unknown token %q", i, s.Token))
			}
		case ActionTurn, ActionObstacle, ActionClear:
		default:
			errs = append(errs, fmt.Errorf("step %d: unknown action %q", i, s.Action))
		}
	}
	return errors.Join(errs...)
}

// Projection returns the projection for the scenario's tile size.
func (sc *Scenario) Projection() grid.Projection {
	p := grid.DefaultProjection
	if sc.Tile.W > 0 {
		p.TileW = sc.Tile.W
	}
	if sc.Tile.H > 0 {
		p.TileH = sc.Tile.H
	}
	return p
}

// Build creates a session holding the scenario's board and tokens. The
// extra options are applied after the scenario's own.
func (sc *Scenario) Build(opts ...battle.Option) (*battle.Session, error) {
	base := []battle.Option{battle.WithProjection(sc.Projection())}
	if sc.ClickThresholdPx > 0 {
		base = append(base, battle.WithClickThreshold(sc.ClickThresholdPx))
	}
	s := battle.NewSession(sc.Width, sc.Height, append(base, opts...)...)
	for _, o := range sc.Obstacles {
		s.Grid().AddObstacle(o[0], o[1])
	}
	for _, t := range sc.Tokens {
		name := t.Name
		if name == "" {
			name = t.ID
		}
		tok := battle.NewToken(t.ID, name, grid.GridCoords{X: t.X, Y: t.Y}, movement.NewProfileFromMap(t.Speeds))
		if err := s.AddToken(tok); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Options converts the scenario into test-battle options.
func (sc *Scenario) Options() []battle.BattleOption {
	opts := []battle.BattleOption{
		battle.WithGridSize(sc.Width, sc.Height),
		battle.WithTestProjection(sc.Projection()),
	}
	if sc.ClickThresholdPx > 0 {
		opts = append(opts, battle.WithTestClickThreshold(sc.ClickThresholdPx))
	}
	for _, o := range sc.Obstacles {
		opts = append(opts, battle.WithObstacle(o[0], o[1]))
	}
	for _, t := range sc.Tokens {
		opts = append(opts, battle.WithToken(t.ID, t.X, t.Y, movement.SpeedsFromMap(t.Speeds)))
	}
	return opts
}
