package battle

import (
	"fmt"
	"strings"
)

// Event categories recorded by the session.
const (
	CatSelect   = "select"
	CatHover    = "hover"
	CatMove     = "move"
	CatEconomy  = "economy"
	CatTurn     = "turn"
	CatObstacle = "obstacle"
	CatProtocol = "protocol"
)

// EventEntry is one recorded session event.
type EventEntry struct {
	Seq      int
	Token    string  // token id, or "--" for board-level events
	Category string  // select, hover, move, economy, turn, obstacle, protocol
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value, e.g. feet
}

// String formats the entry as a fixed-width log line.
//
//	[#007] fighter  move      commit           (2,2) → (2,8) walk 30ft
func (e EventEntry) String() string {
	return fmt.Sprintf("[#%03d] %-8s %-9s %-16s %s",
		e.Seq, e.Token, e.Category, e.Key, e.Value)
}

// EventLog collects structured session events. It is unbounded and
// machine-readable; hosts that need a bounded on-screen view keep their own.
type EventLog struct {
	entries []EventEntry
	verbose bool
	seq     int

	// OnAdd, when set, is called with every recorded entry.
	OnAdd func(EventEntry)
}

// NewEventLog creates an EventLog. If verbose is true, hover previews are
// recorded too.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Verbose reports whether hover-level events are recorded.
func (el *EventLog) Verbose() bool { return el.verbose }

// Add records a new entry.
func (el *EventLog) Add(token, category, key, value string, numVal float64) {
	el.seq++
	e := EventEntry{
		Seq:      el.seq,
		Token:    token,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	}
	el.entries = append(el.entries, e)
	if el.OnAdd != nil {
		el.OnAdd(e)
	}
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(token, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(token, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventEntry {
	return el.entries
}

// Len returns the number of recorded entries.
func (el *EventLog) Len() int { return len(el.entries) }

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventEntry {
	var out []EventEntry
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (el *EventLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range el.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
