package battle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/tactical-grid/internal/grid"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

func cell(x, y int) grid.GridCoords { return grid.GridCoords{X: x, Y: y} }

func walker(ft float64) movement.Speeds { return movement.Speeds{movement.Walk: ft} }

func TestScenario_StraightWalkConsumesFullBudget(t *testing.T) {
	tb := NewTestBattle(WithGridSize(10, 10), WithToken("fighter", 2, 2, walker(30)))
	require.Empty(t, tb.Errors())

	out, err := tb.Drag("fighter", cell(2, 8))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)
	assert.Len(t, out.Path, 7)
	assert.Equal(t, 30.0, out.DistanceFeet)
	assert.Equal(t, []movement.Mode{movement.Walk}, out.ValidModes)
	assert.Equal(t, 1, tb.Chooser.Calls)
	assert.Equal(t, cell(2, 8), tb.Chooser.Target)

	tok := tb.Token("fighter")
	assert.Equal(t, cell(2, 2), tok.Cell, "nothing commits before confirmation")
	assert.Equal(t, 0.0, tok.Profile.DistanceMoved())

	require.NoError(t, tb.Session.Confirm(movement.Walk))
	assert.Equal(t, cell(2, 8), tok.Cell)
	assert.Equal(t, 0.0, tok.Profile.RemainingActive())
	assert.Equal(t, StateSelected, tb.Session.State())
	assert.Nil(t, tb.Session.Pending())
	assert.Equal(t, cell(2, 8), tb.Visual("fighter").Animations[len(tb.Visual("fighter").Animations)-1])
}

func TestScenario_SeventhCellIsInvalid(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	_, err := tb.MoveTo("fighter", cell(2, 8), movement.Walk)
	require.NoError(t, err)

	out, err := tb.Drag("fighter", cell(2, 9))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.ErrorIs(t, out.Err, ErrInsufficientMovement)
	assert.Equal(t, cell(2, 8), tb.Token("fighter").Cell)
}

func TestValidate_SevenCellsFromRestIsInvalid(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 1, 1, walker(30)))
	out, err := tb.Drag("fighter", cell(1, 8))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.Equal(t, 35.0, out.DistanceFeet)
	assert.ErrorIs(t, out.Err, ErrInsufficientMovement)
	assert.Equal(t, 0, tb.Chooser.Calls)
	assert.True(t, tb.Log.HasEntry(CatEconomy, "insufficient", "35ft"))
}

func TestValidate_MultiModeDisambiguation(t *testing.T) {
	tb := NewTestBattle(WithToken("wyvern", 1, 1, movement.Speeds{movement.Walk: 30, movement.Fly: 60}))
	out, err := tb.Drag("wyvern", cell(1, 9))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)
	assert.Equal(t, 40.0, out.DistanceFeet)
	assert.Equal(t, []movement.Mode{movement.Fly}, out.ValidModes)
	assert.Equal(t, []movement.Mode{movement.Fly}, tb.Chooser.Modes)

	err = tb.Session.Confirm(movement.Walk)
	assert.ErrorIs(t, err, ErrModeNotAllowed)
	assert.NotNil(t, tb.Session.Pending(), "a rejected confirm leaves the move pending")

	require.NoError(t, tb.Session.Confirm(movement.Fly))
	tok := tb.Token("wyvern")
	assert.Equal(t, cell(1, 9), tok.Cell)
	assert.Equal(t, movement.Fly, tok.Profile.ActiveMode())
	assert.Equal(t, 20.0, tok.Profile.Remaining(movement.Fly))
	assert.Equal(t, 0.0, tok.Profile.Remaining(movement.Walk))
}

func TestValidate_BothModesOffered(t *testing.T) {
	tb := NewTestBattle(WithToken("wyvern", 1, 1, movement.Speeds{movement.Walk: 30, movement.Fly: 60}))
	out, err := tb.Drag("wyvern", cell(4, 1))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)
	assert.Equal(t, []movement.Mode{movement.Walk, movement.Fly}, out.ValidModes)

	require.NoError(t, tb.Session.Confirm(movement.Walk))
	assert.Equal(t, movement.Walk, tb.Token("wyvern").Profile.ActiveMode())
	assert.Equal(t, 15.0, tb.Token("wyvern").Profile.RemainingActive())
}

func TestValidate_NoPathRevertsVisual(t *testing.T) {
	tb := NewTestBattle(
		WithWall(5, 0, 5, 9),
		WithToken("fighter", 2, 2, walker(60)),
	)
	out, err := tb.Drag("fighter", cell(8, 2))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNoPath)

	vis := tb.Visual("fighter")
	require.NotEmpty(t, vis.Animations)
	assert.Equal(t, cell(2, 2), vis.Animations[len(vis.Animations)-1])
	px, py := tb.Session.CellCenter(cell(2, 2))
	x, y := vis.DisplayedPosition()
	assert.Equal(t, px, x)
	assert.Equal(t, py, y)
	assert.Equal(t, StateSelected, tb.Session.State())
}

func TestValidate_DropOnOwnCellIsSuccess(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 3, 3, walker(30)))
	s := tb.Session
	px, py := s.CellCenter(cell(3, 3))

	s.PointerDown(px, py)
	assert.Equal(t, StateDragging, s.State())
	out := s.PointerUp(px+10, py)

	assert.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, cell(3, 3), tb.Token("fighter").Cell)
	assert.Equal(t, 0.0, tb.Token("fighter").Profile.DistanceMoved())
	assert.Equal(t, []grid.GridCoords{cell(3, 3)}, tb.Visual("fighter").Animations)
}

func TestValidate_NoSelection(t *testing.T) {
	s := NewSession(5, 5)
	out := s.ValidateAndMove(cell(1, 1))
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNoSelection)
}

func TestPendingMove_BlocksOtherInput(t *testing.T) {
	tb := NewTestBattle(
		WithToken("wyvern", 1, 1, movement.Speeds{movement.Walk: 30, movement.Fly: 60}),
		WithToken("fighter", 6, 6, walker(30)),
	)
	_, err := tb.Drag("wyvern", cell(1, 9))
	require.NoError(t, err)
	require.Equal(t, StatePendingConfirmation, tb.Session.State())

	tb.Click(cell(6, 6))
	assert.Equal(t, StatePendingConfirmation, tb.Session.State())
	assert.Same(t, tb.Token("wyvern"), tb.Session.SelectedToken())

	tb.Session.DeselectToken()
	assert.Same(t, tb.Token("wyvern"), tb.Session.SelectedToken())
	assert.False(t, tb.Session.SelectToken(tb.Token("fighter")))

	out := tb.Session.ValidateAndMove(cell(2, 2))
	assert.ErrorIs(t, out.Err, ErrMovePending)
	assert.Equal(t, cell(1, 9), tb.Session.Pending().Target)
	assert.GreaterOrEqual(t, tb.Log.CountCategory(CatProtocol, ""), 3)
}

func TestCancel_RevertsWithoutEconomyChange(t *testing.T) {
	tb := NewTestBattle(WithToken("wyvern", 1, 1, movement.Speeds{movement.Walk: 30, movement.Fly: 60}))
	_, err := tb.Drag("wyvern", cell(1, 9))
	require.NoError(t, err)

	vis := tb.Visual("wyvern")
	dropX, dropY := tb.Session.CellCenter(cell(1, 9))
	x, y := vis.DisplayedPosition()
	assert.Equal(t, dropX, x, "pending drop stays where it was released")
	assert.Equal(t, dropY, y)

	require.NoError(t, tb.Session.Cancel())
	tok := tb.Token("wyvern")
	assert.Equal(t, cell(1, 1), tok.Cell)
	assert.Equal(t, 0.0, tok.Profile.DistanceMoved())
	assert.Equal(t, StateSelected, tb.Session.State())
	assert.Equal(t, cell(1, 1), vis.Animations[len(vis.Animations)-1])
	assert.True(t, tb.Log.HasEntry(CatMove, "cancelled", "(1,1) → (1,9)"))
}

func TestConfirmCancel_WithoutPendingMove(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	assert.ErrorIs(t, tb.Session.Confirm(movement.Walk), ErrNoPendingMove)
	assert.ErrorIs(t, tb.Session.Cancel(), ErrNoPendingMove)
	assert.Equal(t, 2, tb.Log.CountCategory(CatProtocol, ""))
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
}

func TestSelect_LockedTokenRefused(t *testing.T) {
	tb := NewTestBattle(WithToken("statue", 4, 4, movement.Speeds{}))
	tb.Click(cell(4, 4))
	assert.Equal(t, StateIdle, tb.Session.State())
	assert.Nil(t, tb.Session.SelectedToken())
	assert.True(t, tb.Log.HasEntry(CatSelect, "refused", ""))

	out, err := tb.Drag("statue", cell(4, 6))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, out.Kind)
	assert.Equal(t, cell(4, 4), tb.Token("statue").Cell)
}

func TestSelect_SwitchesBetweenTokens(t *testing.T) {
	tb := NewTestBattle(
		WithToken("a", 1, 1, walker(30)),
		WithToken("b", 7, 7, walker(30)),
	)
	tb.Click(cell(1, 1))
	assert.Same(t, tb.Token("a"), tb.Session.SelectedToken())
	tb.Click(cell(7, 7))
	assert.Same(t, tb.Token("b"), tb.Session.SelectedToken())
	assert.Equal(t, StateSelected, tb.Session.State())
	assert.Equal(t, 1, tb.Log.CountCategory(CatSelect, "deselected"))
}

func TestClick_TogglesSelection(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 3, 3, walker(30)))
	tb.Click(cell(3, 3))
	assert.Equal(t, StateSelected, tb.Session.State())
	tb.Click(cell(3, 3))
	assert.Equal(t, StateIdle, tb.Session.State())
	assert.Nil(t, tb.Session.SelectedToken())
}

func TestClick_BackgroundDeselects(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 3, 3, walker(30)))
	tb.Click(cell(3, 3))
	require.Equal(t, StateSelected, tb.Session.State())
	tb.Click(cell(8, 8))
	assert.Equal(t, StateIdle, tb.Session.State())
	require.NotNil(t, tb.Paths)
	assert.Nil(t, tb.Paths.Range)
}

func TestClick_BelowThresholdSkipsValidation(t *testing.T) {
	tb := NewTestBattle(WithTestClickThreshold(20), WithToken("fighter", 3, 3, walker(30)))
	s := tb.Session
	px, py := s.CellCenter(cell(3, 3))
	s.PointerDown(px, py)
	out := s.PointerUp(px+12, py+6)

	assert.Equal(t, OutcomeNone, out.Kind)
	assert.Equal(t, StateSelected, s.State())
	assert.Empty(t, tb.Visual("fighter").Animations)
	assert.Zero(t, tb.Log.CountCategory(CatMove, ""))
}

func TestDrag_BackgroundIsIgnored(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 3, 3, walker(30)))
	s := tb.Session
	x0, y0 := s.CellCenter(cell(7, 7))
	x1, y1 := s.CellCenter(cell(8, 8))
	s.PointerDown(x0, y0)
	out := s.PointerUp(x1, y1)
	assert.Equal(t, OutcomeNone, out.Kind)
	assert.Equal(t, StateIdle, s.State())
}

func TestHover_PreviewsAffordablePath(t *testing.T) {
	tb := NewTestBattle(WithVerbose(true), WithToken("fighter", 2, 2, walker(30)))
	tb.Click(cell(2, 2))

	tb.Hover(cell(2, 5))
	require.True(t, tb.Paths.Shown)
	assert.Equal(t, 15.0, tb.Paths.Cost)
	assert.Equal(t, []grid.GridCoords{cell(2, 2), cell(2, 3), cell(2, 4), cell(2, 5)}, tb.Paths.Path)
	assert.True(t, tb.Log.HasEntry(CatHover, "preview", "(2,5)"))

	tb.Hover(cell(2, 9))
	assert.False(t, tb.Paths.Shown, "35ft is beyond a 30ft walk")

	tb.Hover(cell(2, 5))
	require.True(t, tb.Paths.Shown)
	tb.Hover(cell(2, 2))
	assert.False(t, tb.Paths.Shown, "hovering the token's own cell clears")
}

func TestHover_CacheSeesObstacleChanges(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	tb.Click(cell(2, 2))
	tb.Hover(cell(2, 5))
	require.Contains(t, tb.Paths.Path, cell(2, 3))

	require.True(t, tb.Session.AddObstacle(2, 3))
	tb.Hover(cell(2, 5))
	require.True(t, tb.Paths.Shown)
	assert.NotContains(t, tb.Paths.Path, cell(2, 3))
	assert.Len(t, tb.Paths.Path, 4)
}

func TestHover_IgnoredOutsideSelectedState(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	tb.Hover(cell(2, 4))
	assert.Zero(t, tb.Paths.Shows)

	tb.Session.HandleHover(2, 4)
	assert.Zero(t, tb.Paths.Shows)
}

func TestExecuteMove(t *testing.T) {
	tb := NewTestBattle(WithToken("wyvern", 1, 1, movement.Speeds{movement.Walk: 30, movement.Fly: 60}))
	s := tb.Session
	assert.ErrorIs(t, s.ExecuteMove(cell(2, 2), movement.Walk), ErrNoSelection)

	require.True(t, s.SelectToken(tb.Token("wyvern")))
	assert.ErrorIs(t, s.ExecuteMove(cell(2, 2), movement.Swim), ErrModeNotAllowed)
	assert.ErrorIs(t, s.ExecuteMove(cell(1, 9), movement.Walk), ErrInsufficientMovement)
	assert.Equal(t, cell(1, 1), tb.Token("wyvern").Cell)

	require.NoError(t, s.ExecuteMove(cell(1, 9), movement.Fly))
	assert.Equal(t, cell(1, 9), tb.Token("wyvern").Cell)
	assert.Equal(t, 20.0, tb.Token("wyvern").Profile.RemainingActive())
	assert.Zero(t, tb.Chooser.Calls)
}

func TestExecuteMove_NoPath(t *testing.T) {
	tb := NewTestBattle(WithWall(0, 4, 9, 4), WithToken("fighter", 2, 2, walker(60)))
	require.True(t, tb.Session.SelectToken(tb.Token("fighter")))
	assert.ErrorIs(t, tb.Session.ExecuteMove(cell(2, 6), movement.Walk), ErrNoPath)
}

func TestStartTurn_ResetsAndCancelsPending(t *testing.T) {
	tb := NewTestBattle(
		WithToken("fighter", 2, 2, walker(30)),
		WithToken("wyvern", 7, 0, movement.Speeds{movement.Walk: 30, movement.Fly: 60}),
	)
	_, err := tb.MoveTo("fighter", cell(2, 8), movement.Walk)
	require.NoError(t, err)
	require.True(t, tb.Token("fighter").Locked())

	tb.Session.DeselectToken()
	_, err = tb.Drag("wyvern", cell(7, 8))
	require.NoError(t, err)
	require.Equal(t, StatePendingConfirmation, tb.Session.State())

	tb.Session.StartTurn()
	assert.Nil(t, tb.Session.Pending())
	assert.Equal(t, cell(7, 0), tb.Token("wyvern").Cell)
	for _, tok := range tb.Session.Tokens() {
		assert.Equal(t, 0.0, tok.Profile.DistanceMoved(), tok.ID)
		assert.False(t, tok.Locked(), tok.ID)
	}
	assert.Equal(t, 1, tb.Log.CountCategory(CatTurn, "start"))
}

func TestObstacles_RefusedUnderTokens(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	assert.False(t, tb.Session.AddObstacle(2, 2))
	assert.False(t, tb.Session.Grid().IsBlocked(2, 2))

	assert.True(t, tb.Session.AddObstacle(3, 3))
	assert.False(t, tb.Session.AddObstacle(3, 3))
	assert.True(t, tb.Session.RemoveObstacle(3, 3))
	assert.False(t, tb.Session.RemoveObstacle(3, 3))
	assert.Equal(t, 1, tb.Log.CountCategory(CatObstacle, "added"))
	assert.Equal(t, 1, tb.Log.CountCategory(CatObstacle, "removed"))
}

func TestObstacles_RefusedOnPendingPath(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	out, err := tb.Drag("fighter", cell(2, 6))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)

	s := tb.Session
	assert.False(t, s.AddObstacle(2, 6), "target of the pending move")
	assert.False(t, s.AddObstacle(out.Path[2].X, out.Path[2].Y), "cell on the pending path")
	assert.Equal(t, 2, tb.Log.CountCategory(CatObstacle, "refused"))
	assert.True(t, s.AddObstacle(8, 8))
	assert.ErrorIs(t, s.AddToken(NewToken("late", "Late", cell(2, 6), nil)), ErrCellOccupied)

	require.NoError(t, s.Confirm(movement.Walk))
	assert.Equal(t, cell(2, 6), tb.Token("fighter").Cell)
	assert.True(t, s.AddObstacle(2, 4), "nothing pending any more")
}

func TestConfirm_TargetBlockedAfterDrop(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	_, err := tb.Drag("fighter", cell(2, 6))
	require.NoError(t, err)

	s := tb.Session
	require.True(t, s.Grid().AddObstacle(2, 6))
	assert.ErrorIs(t, s.Confirm(movement.Walk), ErrNoPath)
	assert.Equal(t, StatePendingConfirmation, s.State())
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
	assert.Equal(t, 0.0, tb.Token("fighter").Profile.DistanceMoved())

	require.NoError(t, s.Cancel())
	assert.Equal(t, StateSelected, s.State())
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
}

func TestConfirm_DetourBeyondBudget(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	out, err := tb.Drag("fighter", cell(2, 8))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)

	g := tb.Session.Grid()
	for x := 0; x <= 8; x++ {
		g.AddObstacle(x, 5)
	}
	assert.ErrorIs(t, tb.Session.Confirm(movement.Walk), ErrInsufficientMovement)
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
	assert.Equal(t, out.Path, tb.Session.Pending().Path)
}

func TestConfirm_RepathsAroundNewObstacle(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 2, 2, walker(30)))
	_, err := tb.Drag("fighter", cell(2, 5))
	require.NoError(t, err)

	require.True(t, tb.Session.Grid().AddObstacle(2, 3))
	require.NoError(t, tb.Session.Confirm(movement.Walk))
	assert.Equal(t, cell(2, 5), tb.Token("fighter").Cell)
	assert.Equal(t, 15.0, tb.Token("fighter").Profile.DistanceMoved())
}

func TestOccupiedCells(t *testing.T) {
	tb := NewTestBattle(
		WithToken("fighter", 2, 2, walker(30)),
		WithToken("naga", 2, 5, walker(30)),
	)
	s := tb.Session

	out, err := tb.Drag("fighter", cell(2, 5))
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, out.Kind)
	assert.ErrorIs(t, out.Err, ErrCellOccupied)
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
	assert.Zero(t, tb.Chooser.Calls)

	tb.Hover(cell(2, 4))
	require.True(t, tb.Paths.Shown)
	tb.Hover(cell(2, 5))
	assert.False(t, tb.Paths.Shown, "occupied cells get no preview")

	assert.ErrorIs(t, s.ExecuteMove(cell(2, 5), movement.Walk), ErrCellOccupied)
	assert.Equal(t, cell(2, 2), tb.Token("fighter").Cell)
	require.NoError(t, s.ExecuteMove(cell(2, 4), movement.Walk))
}

func TestAddToken_LiteralTokenGetsDefaults(t *testing.T) {
	tb := NewTestBattle()
	s := tb.Session

	bare := &Token{ID: "statue", Cell: cell(0, 0)}
	require.NoError(t, s.AddToken(bare))
	require.NotNil(t, bare.Profile)
	assert.True(t, bare.Locked())
	assert.NotNil(t, bare.Visual())

	scout := &Token{ID: "scout", Cell: cell(1, 1), Profile: movement.NewProfile(walker(30))}
	require.NoError(t, s.AddToken(scout))
	require.True(t, s.SelectToken(scout))
	assert.NotPanics(t, func() {
		require.NoError(t, s.ExecuteMove(cell(1, 3), movement.Walk))
	})
	assert.Equal(t, cell(1, 3), scout.Cell)

	out, err := tb.Drag("scout", cell(1, 5))
	require.NoError(t, err)
	require.Equal(t, OutcomePendingConfirmation, out.Kind)
	assert.NotPanics(t, func() { require.NoError(t, s.Cancel()) })
}

func TestHarness_WithTestProjection(t *testing.T) {
	proj := grid.Projection{TileW: 32, TileH: 16}
	tb := NewTestBattle(WithTestProjection(proj), WithToken("fighter", 2, 2, walker(30)))
	assert.Equal(t, proj, tb.Session.Projection())

	out, err := tb.Drag("fighter", cell(2, 4))
	require.NoError(t, err)
	assert.Equal(t, OutcomePendingConfirmation, out.Kind)
	assert.Equal(t, cell(2, 4), out.Target)
}

func TestMovementRange_FollowsRemainingBudget(t *testing.T) {
	tb := NewTestBattle(WithToken("fighter", 5, 5, walker(20)))
	s := tb.Session
	assert.Nil(t, s.MovementRange())

	require.True(t, s.SelectToken(tb.Token("fighter")))
	r := s.MovementRange()
	assert.Contains(t, r, cell(5, 5))
	assert.Contains(t, r, cell(5, 1))
	assert.Contains(t, r, cell(7, 7))
	assert.NotContains(t, r, cell(5, 0))
	assert.NotContains(t, r, cell(8, 8), "diagonal steps are not counted as one in range")
	assert.Equal(t, r, tb.Paths.Range)

	require.True(t, s.AddObstacle(5, 4))
	assert.NotContains(t, tb.Paths.Range, cell(5, 4))

	require.NoError(t, s.ExecuteMove(cell(5, 8), movement.Walk))
	assert.ElementsMatch(t, []grid.GridCoords{
		cell(5, 8), cell(4, 8), cell(6, 8), cell(5, 7), cell(5, 9),
	}, tb.Paths.Range)
}

func TestAddToken_Errors(t *testing.T) {
	tb := NewTestBattle(
		WithGridSize(4, 4),
		WithToken("a", 1, 1, walker(30)),
		WithToken("a", 2, 2, walker(30)),
		WithToken("b", 9, 9, walker(30)),
		WithToken("c", 1, 1, walker(30)),
		WithObstacle(3, 3),
		WithToken("d", 3, 3, walker(30)),
	)
	require.Len(t, tb.Errors(), 4)
	assert.ErrorIs(t, tb.Errors()[0], ErrDuplicateToken)
	assert.ErrorIs(t, tb.Errors()[1], ErrOutOfBounds)
	assert.ErrorIs(t, tb.Errors()[2], ErrCellOccupied)
	assert.ErrorIs(t, tb.Errors()[3], ErrCellBlocked)
	assert.Len(t, tb.Session.Tokens(), 1)
	assert.Error(t, tb.Session.AddToken(nil))
}

func TestHarness_WithWall(t *testing.T) {
	tb := NewTestBattle(WithWall(1, 1, 4, 4), WithWall(0, 6, 3, 6))
	g := tb.Session.Grid()
	for i := 1; i <= 4; i++ {
		assert.True(t, g.IsBlocked(i, i))
	}
	for x := 0; x <= 3; x++ {
		assert.True(t, g.IsBlocked(x, 6))
	}
	assert.Equal(t, 8, g.Len())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePendingConfirmation.String())
	assert.Equal(t, "pending", OutcomePendingConfirmation.String())
	assert.Equal(t, "unknown", State(9).String())
}
