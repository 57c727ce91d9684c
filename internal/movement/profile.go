package movement

import (
	"fmt"
	"strings"
)

// Speeds is the speed table, in feet, indexed by Mode. Zero means the mode
// is unavailable.
type Speeds [ModeCount]float64

// Profile is one token's movement economy for the current turn.
type Profile struct {
	speeds Speeds
	active Mode
	moved  float64
}

// NewProfile builds a profile with full budget. Negative speeds are
// treated as 0. The active mode starts as the fastest available mode, the
// earliest in enumeration order on ties; with no available mode it stays
// Walk and the profile is locked.
func NewProfile(speeds Speeds) *Profile {
	p := &Profile{}
	for i, s := range speeds {
		p.speeds[i] = max(0, s)
	}
	best := 0.0
	for _, m := range AllModes() {
		if p.speeds[m] > best {
			best = p.speeds[m]
			p.active = m
		}
	}
	return p
}

// SpeedsFromMap builds a speed table from sparse speeds, ignoring invalid
// modes.
func SpeedsFromMap(speeds map[Mode]float64) Speeds {
	var s Speeds
	for m, v := range speeds {
		if m.Valid() {
			s[m] = v
		}
	}
	return s
}

// NewProfileFromMap is a convenience for callers holding sparse speeds.
func NewProfileFromMap(speeds map[Mode]float64) *Profile {
	return NewProfile(SpeedsFromMap(speeds))
}

// Speed returns the innate speed for m.
func (p *Profile) Speed(m Mode) float64 {
	if !m.Valid() {
		return 0
	}
	return p.speeds[m]
}

// ActiveMode returns the mode the token is currently moving in.
func (p *Profile) ActiveMode() Mode { return p.active }

// DistanceMoved returns the feet consumed this turn.
func (p *Profile) DistanceMoved() float64 { return p.moved }

// MovementCost returns the budget spent to cover feet in mode m. Climbing
// or swimming without an innate speed for it costs double.
func (p *Profile) MovementCost(feet float64, m Mode) float64 {
	if m.doubleCostWithoutSpeed() && p.Speed(m) == 0 {
		return feet * 2
	}
	return feet
}

// Remaining returns the unused budget for m.
func (p *Profile) Remaining(m Mode) float64 {
	return max(0, p.Speed(m)-p.moved)
}

// RemainingActive returns the unused budget for the active mode.
func (p *Profile) RemainingActive() float64 {
	return p.Remaining(p.active)
}

// MaxRemaining returns the largest remaining budget across available
// modes; 0 means the token cannot move this turn.
func (p *Profile) MaxRemaining() float64 {
	best := 0.0
	for _, m := range p.AvailableModes() {
		best = max(best, p.Remaining(m))
	}
	return best
}

// Consume adds feet to the distance moved. Callers validate against
// Remaining first; no upper clamp is applied here. Negative input is
// ignored.
func (p *Profile) Consume(feet float64) {
	if feet <= 0 {
		return
	}
	p.moved += feet
}

// SetMode switches the active mode. It is a no-op returning false when m
// has no speed.
func (p *Profile) SetMode(m Mode) bool {
	if p.Speed(m) <= 0 {
		return false
	}
	p.active = m
	return true
}

// Reset restores the full budget for a new turn.
func (p *Profile) Reset() {
	p.moved = 0
}

// AvailableModes lists modes with positive speed in enumeration order.
func (p *Profile) AvailableModes() []Mode {
	var out []Mode
	for _, m := range AllModes() {
		if p.speeds[m] > 0 {
			out = append(out, m)
		}
	}
	return out
}

// String formats the profile for log lines, e.g.
//
//	walk=30 fly=60* moved=10
func (p *Profile) String() string {
	var sb strings.Builder
	for _, m := range p.AvailableModes() {
		fmt.Fprintf(&sb, "%s=%g", m, p.speeds[m])
		if m == p.active {
			sb.WriteByte('*')
		}
		sb.WriteByte(' ')
	}
	fmt.Fprintf(&sb, "moved=%g", p.moved)
	return sb.String()
}
