// Package battle drives token selection and movement on the battle map. A
// Session turns pointer gestures into validated moves using the grid path
// finder and each token's movement profile, and commits them only after
// the player confirms a movement mode.
package battle

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// DefaultClickThreshold is the pointer displacement, in projected pixels,
// below which a press/release pair counts as a click.
const DefaultClickThreshold = 5.0

// State is the interaction state of a session.
type State uint8

const (
	StateIdle                 State = iota // nothing selected
	StateSelected                          // a token is selected, no pending move
	StateDragging                          // pointer held on the selected token
	StatePendingConfirmation               // drop validated, waiting for a mode
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateDragging:
		return "dragging"
	case StatePendingConfirmation:
		return "pending"
	default:
		return "unknown"
	}
}

// Option configures a Session.
type Option func(*Session)

// WithProjection sets the projection used to hit-test pointer positions.
func WithProjection(p grid.Projection) Option {
	return func(s *Session) { s.proj = p }
}

// WithClickThreshold sets the click-vs-drag displacement threshold.
func WithClickThreshold(px float64) Option {
	return func(s *Session) { s.clickThreshold = px }
}

// WithObstacles shares an existing obstacle grid instead of creating one.
// Its dimensions replace the ones passed to NewSession.
func WithObstacles(og *grid.ObstacleGrid) Option {
	return func(s *Session) { s.grid = og }
}

// WithPathRenderer sets the preview sink. If it also implements
// RangeRenderer it receives range overlays.
func WithPathRenderer(r PathRenderer) Option {
	return func(s *Session) {
		if r == nil {
			return
		}
		s.paths = r
		if rr, ok := r.(RangeRenderer); ok {
			s.ranges = rr
		}
	}
}

// WithModeChooser sets the mode-choice UI.
func WithModeChooser(c ModeChooser) Option {
	return func(s *Session) {
		if c != nil {
			s.chooser = c
		}
	}
}

// WithEventLog records session events into log.
func WithEventLog(log *EventLog) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics counts outcomes into m.
func WithMetrics(m MoveMetrics) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// hoverCache memoises the last hover search; pointer-move events repeat
// the same (origin, target) pair many times per second.
type hoverCache struct {
	valid   bool
	origin  grid.GridCoords
	target  grid.GridCoords
	version uint64
	path    []grid.GridCoords
	ok      bool
}

// Session owns the selection and pending-move state for one battle.
type Session struct {
	grid           *grid.ObstacleGrid
	finder         *grid.PathFinder
	proj           grid.Projection
	clickThreshold float64

	tokens   []*Token
	selected *Token
	pending  *PendingMove
	state    State
	press    *press
	hover    hoverCache

	paths   PathRenderer
	ranges  RangeRenderer
	chooser ModeChooser
	log     *EventLog
	metrics MoveMetrics
}

// NewSession creates a session over a gridWidth×gridHeight battle map.
func NewSession(gridWidth, gridHeight int, opts ...Option) *Session {
	s := &Session{
		proj:           grid.DefaultProjection,
		clickThreshold: DefaultClickThreshold,
		paths:          nopRenderer{},
		chooser:        nopChooser{},
		log:            NewEventLog(false),
		metrics:        nopMetrics{},
	}
	for _, o := range opts {
		o(s)
	}
	if s.grid == nil {
		s.grid = grid.NewObstacleGrid(gridWidth, gridHeight)
	}
	s.finder = grid.NewPathFinder(s.grid)
	return s
}

// Grid returns the obstacle grid.
func (s *Session) Grid() *grid.ObstacleGrid { return s.grid }

// PathFinder returns the path finder over the session's grid.
func (s *Session) PathFinder() *grid.PathFinder { return s.finder }

// Projection returns the projection used for pointer hit-testing.
func (s *Session) Projection() grid.Projection { return s.proj }

// Log returns the session event log.
func (s *Session) Log() *EventLog { return s.log }

// State returns the current interaction state.
func (s *Session) State() State { return s.state }

// SelectedToken returns the selected token, or nil.
func (s *Session) SelectedToken() *Token { return s.selected }

// Pending returns the move awaiting confirmation, or nil.
func (s *Session) Pending() *PendingMove { return s.pending }

// --- Tokens ---

// AddToken places t on the board. The cell must be in bounds, free of
// obstacles and not already occupied. A token built without NewToken gets
// a locked profile and a no-op visual.
func (s *Session) AddToken(t *Token) error {
	if t == nil {
		return fmt.Errorf("add token: nil token")
	}
	if !s.grid.InBounds(t.Cell.X, t.Cell.Y) {
		return fmt.Errorf("add token %q at %s: %w", t.ID, cellString(t.Cell), ErrOutOfBounds)
	}
	if s.TokenByID(t.ID) != nil {
		return fmt.Errorf("add token %q: %w", t.ID, ErrDuplicateToken)
	}
	if other := s.TokenAt(t.Cell); other != nil {
		return fmt.Errorf("add token %q at %s held by %q: %w", t.ID, cellString(t.Cell), other.ID, ErrCellOccupied)
	}
	if s.pending != nil && t.Cell == s.pending.Target {
		return fmt.Errorf("add token %q at %s awaiting %q: %w", t.ID, cellString(t.Cell), s.pending.Token.ID, ErrCellOccupied)
	}
	if s.grid.IsBlocked(t.Cell.X, t.Cell.Y) {
		return fmt.Errorf("add token %q at %s: %w", t.ID, cellString(t.Cell), ErrCellBlocked)
	}
	if t.Profile == nil {
		t.Profile = movement.NewProfile(movement.Speeds{})
	}
	if t.visual == nil {
		t.visual = nopVisual{}
	}
	s.tokens = append(s.tokens, t)
	s.log.Add(t.ID, CatTurn, "token_added", fmt.Sprintf("%s %s", cellString(t.Cell), t.Profile), 0)
	return nil
}

// Tokens returns every token in insertion order.
func (s *Session) Tokens() []*Token { return s.tokens }

// TokenByID returns the token with id, or nil.
func (s *Session) TokenByID(id string) *Token {
	for _, t := range s.tokens {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TokenAt returns the token whose committed cell is c, or nil.
func (s *Session) TokenAt(c grid.GridCoords) *Token {
	for _, t := range s.tokens {
		if t.Cell == c {
			return t
		}
	}
	return nil
}

// --- Selection ---

// SelectToken makes t the selected token. A token with no movement left
// in any mode is refused. Selection is also refused while a move awaits
// confirmation.
func (s *Session) SelectToken(t *Token) bool {
	if t == nil {
		return false
	}
	if s.pending != nil {
		s.log.Add(t.ID, CatProtocol, "select_ignored", "confirmation pending", 0)
		return false
	}
	if t.Locked() {
		s.log.Add(t.ID, CatSelect, "refused", "no movement remaining", 0)
		return false
	}
	if s.selected != nil && s.selected != t {
		s.clearSelection()
	}
	s.selected = t
	s.state = StateSelected
	s.hover = hoverCache{}
	s.paths.Clear()
	s.log.Add(t.ID, CatSelect, "selected", t.Profile.String(), t.Profile.RemainingActive())
	s.refreshRange()
	return true
}

// DeselectToken drops the selection and returns to idle. It is ignored
// while a move awaits confirmation.
func (s *Session) DeselectToken() {
	if s.pending != nil {
		s.log.Add(s.selected.label(), CatProtocol, "deselect_ignored", "confirmation pending", 0)
		return
	}
	if s.selected == nil {
		return
	}
	s.clearSelection()
}

func (s *Session) clearSelection() {
	s.log.Add(s.selected.label(), CatSelect, "deselected", "", 0)
	s.selected = nil
	s.state = StateIdle
	s.hover = hoverCache{}
	s.paths.Clear()
	if s.ranges != nil {
		s.ranges.ShowRange(nil)
	}
}

// --- Hover preview ---

// HandleHover previews the path from the selected token to (x, y) when the
// active mode can afford it, and clears the preview otherwise. It only acts
// in the Selected state.
func (s *Session) HandleHover(x, y int) {
	if s.state != StateSelected || s.selected == nil {
		return
	}
	tok := s.selected
	target := grid.GridCoords{X: x, Y: y}
	if target == tok.Cell || s.TokenAt(target) != nil {
		s.paths.Clear()
		return
	}
	path, ok := s.hoverPath(tok.Cell, target)
	if !ok {
		s.paths.Clear()
		return
	}
	cost := tok.Profile.MovementCost(grid.DistanceFeet(path), tok.Profile.ActiveMode())
	if cost > tok.Profile.RemainingActive() {
		s.paths.Clear()
		return
	}
	s.paths.ShowPath(path, cost)
	s.log.AddVerbose(tok.ID, CatHover, "preview", fmt.Sprintf("%s %gft", cellString(target), cost), cost)
}

func (s *Session) hoverPath(origin, target grid.GridCoords) ([]grid.GridCoords, bool) {
	v := s.grid.Version()
	if s.hover.valid && s.hover.origin == origin && s.hover.target == target && s.hover.version == v {
		return s.hover.path, s.hover.ok
	}
	path, ok := s.finder.FindPath(origin, target)
	s.hover = hoverCache{valid: true, origin: origin, target: target, version: v, path: path, ok: ok}
	return path, ok
}

// --- Validation and commit ---

// ValidateAndMove checks a drop of the selected token on target. It never
// mutates the economy or the token's cell: a same-cell drop is Success,
// an unreachable or unaffordable target is Invalid, and anything else
// becomes PendingConfirmation with the modes that can afford it.
func (s *Session) ValidateAndMove(target grid.GridCoords) Outcome {
	out := s.validate(target)
	s.metrics.RecordOutcome(out.Kind)
	return out
}

func (s *Session) validate(target grid.GridCoords) Outcome {
	tok := s.selected
	if tok == nil {
		s.log.Add("--", CatProtocol, "validate_rejected", ErrNoSelection.Error(), 0)
		return Outcome{Kind: OutcomeInvalid, Target: target, Err: ErrNoSelection}
	}
	if s.pending != nil {
		s.log.Add(tok.ID, CatProtocol, "validate_rejected", ErrMovePending.Error(), 0)
		return Outcome{Kind: OutcomeInvalid, Target: target, Err: ErrMovePending}
	}
	s.state = StateSelected

	origin := tok.Cell
	if target == origin {
		s.log.Add(tok.ID, CatMove, "noop", cellString(origin), 0)
		return Outcome{Kind: OutcomeSuccess, Target: target, Path: []grid.GridCoords{origin}}
	}

	if other := s.TokenAt(target); other != nil {
		s.log.Add(tok.ID, CatMove, "invalid", fmt.Sprintf("%s → %s held by %s", cellString(origin), cellString(target), other.ID), 0)
		return Outcome{Kind: OutcomeInvalid, Target: target, Err: ErrCellOccupied}
	}

	path, ok := s.finder.FindPath(origin, target)
	if !ok {
		s.log.Add(tok.ID, CatMove, "invalid", fmt.Sprintf("%s → %s no path", cellString(origin), cellString(target)), 0)
		return Outcome{Kind: OutcomeInvalid, Target: target, Err: ErrNoPath}
	}
	dist := grid.DistanceFeet(path)

	var valid []movement.Mode
	for _, m := range tok.Profile.AvailableModes() {
		cost := tok.Profile.MovementCost(dist, m)
		if tok.Profile.Remaining(m) >= cost {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		s.log.Add(tok.ID, CatEconomy, "insufficient",
			fmt.Sprintf("%s → %s %gft, max remaining %gft", cellString(origin), cellString(target), dist, tok.Profile.MaxRemaining()), dist)
		return Outcome{Kind: OutcomeInvalid, Target: target, Path: path, DistanceFeet: dist, Err: ErrInsufficientMovement}
	}

	s.pending = &PendingMove{
		Token:        tok,
		Origin:       origin,
		Target:       target,
		Path:         path,
		DistanceFeet: dist,
		ValidModes:   valid,
		version:      s.grid.Version(),
	}
	s.state = StatePendingConfirmation
	s.paths.Clear()
	s.log.Add(tok.ID, CatMove, "pending",
		fmt.Sprintf("%s → %s %gft modes=[%s]", cellString(origin), cellString(target), dist, modeList(valid)), dist)
	s.chooser.ChooseMode(target, valid)

	return Outcome{
		Kind:         OutcomePendingConfirmation,
		Target:       target,
		Path:         path,
		DistanceFeet: dist,
		ValidModes:   valid,
	}
}

// Confirm commits the pending move in mode and returns to Selected. If the
// board changed since the drop, the path and its cost are recomputed; a
// target that became unreachable or unaffordable is rejected and the move
// stays pending for the caller to Cancel.
func (s *Session) Confirm(mode movement.Mode) error {
	pm := s.pending
	if pm == nil {
		s.log.Add(s.selected.label(), CatProtocol, "confirm_rejected", ErrNoPendingMove.Error(), 0)
		return ErrNoPendingMove
	}
	if !pm.allows(mode) {
		s.log.Add(pm.Token.ID, CatProtocol, "confirm_rejected", fmt.Sprintf("%s not in [%s]", mode, modeList(pm.ValidModes)), 0)
		return fmt.Errorf("confirm %s: %w", mode, ErrModeNotAllowed)
	}
	if pm.version != s.grid.Version() {
		if err := s.revalidate(pm, mode); err != nil {
			s.log.Add(pm.Token.ID, CatProtocol, "confirm_rejected", err.Error(), 0)
			return err
		}
	}
	s.pending = nil
	s.state = StateSelected
	s.commit(pm.Token, pm.Target, pm.Path, mode)
	return nil
}

func (s *Session) revalidate(pm *PendingMove, mode movement.Mode) error {
	path, ok := s.finder.FindPath(pm.Origin, pm.Target)
	if !ok {
		return fmt.Errorf("confirm %s to %s: %w", mode, cellString(pm.Target), ErrNoPath)
	}
	dist := grid.DistanceFeet(path)
	cost := pm.Token.Profile.MovementCost(dist, mode)
	if rem := pm.Token.Profile.Remaining(mode); rem < cost {
		return fmt.Errorf("confirm %s to %s costs %gft, %gft left: %w",
			mode, cellString(pm.Target), cost, rem, ErrInsufficientMovement)
	}
	pm.Path = path
	pm.DistanceFeet = dist
	pm.version = s.grid.Version()
	return nil
}

// Cancel discards the pending move. The token's displayed position is sent
// back to its committed cell; the economy is untouched.
func (s *Session) Cancel() error {
	pm := s.pending
	if pm == nil {
		s.log.Add(s.selected.label(), CatProtocol, "cancel_rejected", ErrNoPendingMove.Error(), 0)
		return ErrNoPendingMove
	}
	s.pending = nil
	s.state = StateSelected
	pm.Token.visual.AnimateTo(pm.Origin)
	s.metrics.RecordCancel()
	s.log.Add(pm.Token.ID, CatMove, "cancelled", fmt.Sprintf("%s → %s", cellString(pm.Origin), cellString(pm.Target)), 0)
	return nil
}

// ExecuteMove moves the selected token to target in mode without the
// confirmation step. It revalidates the path and the budget and rejects the
// move with an error instead of committing anything invalid.
func (s *Session) ExecuteMove(target grid.GridCoords, mode movement.Mode) error {
	tok := s.selected
	if tok == nil {
		return ErrNoSelection
	}
	if s.pending != nil {
		return ErrMovePending
	}
	if tok.Profile.Speed(mode) <= 0 {
		return fmt.Errorf("execute move in %s: %w", mode, ErrModeNotAllowed)
	}
	if target == tok.Cell {
		return nil
	}
	if other := s.TokenAt(target); other != nil {
		return fmt.Errorf("execute move to %s held by %q: %w", cellString(target), other.ID, ErrCellOccupied)
	}
	path, ok := s.finder.FindPath(tok.Cell, target)
	if !ok {
		return fmt.Errorf("execute move to %s: %w", cellString(target), ErrNoPath)
	}
	cost := tok.Profile.MovementCost(grid.DistanceFeet(path), mode)
	if rem := tok.Profile.Remaining(mode); rem < cost {
		return fmt.Errorf("execute move to %s costs %gft, %gft left in %s: %w",
			cellString(target), cost, rem, mode, ErrInsufficientMovement)
	}
	s.state = StateSelected
	s.commit(tok, target, path, mode)
	return nil
}

func (s *Session) commit(tok *Token, target grid.GridCoords, path []grid.GridCoords, mode movement.Mode) {
	tok.Profile.SetMode(mode)
	dist := grid.DistanceFeet(path)
	cost := tok.Profile.MovementCost(dist, mode)
	tok.Profile.Consume(cost)
	from := tok.Cell
	tok.Cell = target

	s.hover = hoverCache{}
	s.paths.Clear()
	s.metrics.RecordCommit(mode, cost)
	s.log.Add(tok.ID, CatMove, "commit",
		fmt.Sprintf("%s → %s %s %gft", cellString(from), cellString(target), mode, cost), cost)
	s.log.Add(tok.ID, CatEconomy, "remaining", tok.Profile.String(), tok.Profile.RemainingActive())

	tok.visual.AnimateTo(target)
	s.refreshRange()
}

// --- Turn and board ---

// StartTurn restores every token's movement budget. A move still awaiting
// confirmation is cancelled first.
func (s *Session) StartTurn() {
	if s.pending != nil {
		_ = s.Cancel()
	}
	for _, t := range s.tokens {
		t.ResetMovement()
	}
	s.hover = hoverCache{}
	s.paths.Clear()
	s.log.Add("--", CatTurn, "start", fmt.Sprintf("%d tokens reset", len(s.tokens)), float64(len(s.tokens)))
	s.refreshRange()
}

// AddObstacle blocks (x, y). Cells under tokens are refused, as are the
// target and path cells of a move awaiting confirmation.
func (s *Session) AddObstacle(x, y int) bool {
	c := grid.GridCoords{X: x, Y: y}
	if s.TokenAt(c) != nil {
		return false
	}
	if s.pending != nil && (c == s.pending.Target || slices.Contains(s.pending.Path, c)) {
		s.log.Add(s.pending.Token.ID, CatObstacle, "refused", cellString(c)+" on pending path", 0)
		return false
	}
	if !s.grid.AddObstacle(x, y) {
		return false
	}
	s.log.Add("--", CatObstacle, "added", cellString(c), 0)
	s.refreshRange()
	return true
}

// RemoveObstacle unblocks (x, y).
func (s *Session) RemoveObstacle(x, y int) bool {
	if !s.grid.RemoveObstacle(x, y) {
		return false
	}
	s.log.Add("--", CatObstacle, "removed", cellString(grid.GridCoords{X: x, Y: y}), 0)
	s.refreshRange()
	return true
}

// MovementRange returns the cells the selected token can reach with the
// active mode's remaining budget, in row-major order.
func (s *Session) MovementRange() []grid.GridCoords {
	if s.selected == nil {
		return nil
	}
	steps := int(math.Floor(s.selected.Profile.RemainingActive() / grid.FeetPerCell))
	return grid.SortedCells(s.finder.MovementRange(s.selected.Cell, steps))
}

func (s *Session) refreshRange() {
	if s.ranges == nil {
		return
	}
	s.ranges.ShowRange(s.MovementRange())
}

func cellString(c grid.GridCoords) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func modeList(modes []movement.Mode) string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return strings.Join(names, ",")
}
