package scenario

import (
	"fmt"

	"github.com/Garsondee/tactical-grid/internal/battle"
	"github.com/Garsondee/tactical-grid/internal/movement"
)

// StepResult is what happened when one step was replayed.
type StepResult struct {
	Index   int
	Step    Step
	Outcome battle.Outcome
	Mode    movement.Mode // mode confirmed by a move step
	Applied bool          // the step changed the board or a token
	Err     error
}

func (r StepResult) String() string {
	s := r.Step
	switch s.Action {
	case ActionMove, ActionCancel:
		line := fmt.Sprintf("%02d %-8s %-8s → (%d,%d) %s", r.Index, s.Action, s.Token, s.To[0], s.To[1], r.Outcome.Kind)
		if r.Applied && s.Action == ActionMove {
			line += fmt.Sprintf(" %s %gft", r.Mode, r.Outcome.DistanceFeet)
		}
		if r.Err != nil {
			line += " err=" + r.Err.Error()
		} else if r.Outcome.Err != nil {
			line += " reason=" + r.Outcome.Err.Error()
		}
		return line
	case ActionTurn:
		return fmt.Sprintf("%02d %-8s", r.Index, s.Action)
	default:
		return fmt.Sprintf("%02d %-8s (%d,%d) applied=%t", r.Index, s.Action, s.To[0], s.To[1], r.Applied)
	}
}

// Replay runs every step against tb in order and reports each result to
// fn. Invalid moves are results, not errors; Replay only stops early on a
// step that references a token tb does not have.
func (sc *Scenario) Replay(tb *battle.TestBattle, fn func(StepResult)) error {
	for i, step := range sc.Steps {
		res := StepResult{Index: i, Step: step}
		switch step.Action {
		case ActionMove, ActionCancel:
			out, err := tb.Drag(step.Token, step.Target())
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			res.Outcome = out
			if out.Kind != battle.OutcomePendingConfirmation {
				break
			}
			if step.Action == ActionCancel {
				res.Err = tb.Session.Cancel()
				res.Applied = res.Err == nil
				break
			}
			mode := out.ValidModes[0]
			if step.Mode != nil {
				mode = *step.Mode
			}
			res.Mode = mode
			if res.Err = tb.Session.Confirm(mode); res.Err != nil {
				// Leave the board clean for the next step.
				_ = tb.Session.Cancel()
				break
			}
			res.Applied = true
		case ActionTurn:
			tb.Session.StartTurn()
			res.Applied = true
		case ActionObstacle:
			res.Applied = tb.Session.AddObstacle(step.To[0], step.To[1])
		case ActionClear:
			res.Applied = tb.Session.RemoveObstacle(step.To[0], step.To[1])
		}
		if fn != nil {
			fn(res)
		}
	}
	return nil
}
