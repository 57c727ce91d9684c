// Package movement implements the per-token movement economy: speeds per
// locomotion mode, the active mode, and distance consumed this turn.
package movement

import (
	"fmt"
	"strings"
)

// Mode is a locomotion type.
type Mode uint8

const (
	Walk Mode = iota
	Fly
	Swim
	Burrow
	Climb
	ModeCount // sentinel
)

var modeNames = [ModeCount]string{"walk", "fly", "swim", "burrow", "climb"}

// AllModes lists every mode in enumeration order.
func AllModes() []Mode {
	out := make([]Mode, ModeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool { return m < ModeCount }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode accepts the lower-case mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown movement mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid movement mode %d", uint8(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// doubleCostWithoutSpeed reports whether moving in m without an innate
// speed for it costs double.
func (m Mode) doubleCostWithoutSpeed() bool {
	switch m {
	case Climb, Swim:
		return true
	case Walk, Fly, Burrow:
		return false
	default:
		return false
	}
}
