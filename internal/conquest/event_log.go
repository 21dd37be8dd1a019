package conquest

import (
	"fmt"
	"strings"
)

// EventLogEntry is one recorded simulation event.
type EventLogEntry struct {
	Tick     int
	Player   string  // player name, or "--" for global events
	Category string  // fleet, invasion, player, ai, game, planet
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0150] red      invasion  capture          planet 7 from neutral (12.0 → 12.0)
func (e EventLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-8s %-9s %-16s %s",
		e.Tick, e.Player, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for the whole match. It is unbounded
// and machine-readable; the window shell keeps its own short feed.
type EventLog struct {
	entries []EventLogEntry
	verbose bool
}

// NewEventLog creates an EventLog. If verbose is true, per-tick garrison
// samples are recorded as well.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new entry.
func (el *EventLog) Add(tick int, player, category, key, value string, numVal float64) {
	el.entries = append(el.entries, EventLogEntry{
		Tick:     tick,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, player, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, player, category, key, value, numVal)
}

// Verbose reports whether per-tick samples are recorded.
func (el *EventLog) Verbose() bool {
	return el.verbose
}

// Len returns the number of recorded entries.
func (el *EventLog) Len() int {
	return len(el.entries)
}

// Entries returns all recorded entries.
func (el *EventLog) Entries() []EventLogEntry {
	return el.entries
}

// Since returns entries recorded after the first n.
func (el *EventLog) Since(n int) []EventLogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(el.entries) {
		return nil
	}
	return el.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (el *EventLog) Filter(category, key string) []EventLogEntry {
	var out []EventLogEntry
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

// FilterPlayer returns entries for a specific player name.
func (el *EventLog) FilterPlayer(name string) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Player == name {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (el *EventLog) FilterTickRange(fromTick, toTick int) []EventLogEntry {
	var out []EventLogEntry
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (el *EventLog) CountCategory(category, key string) int {
	return len(el.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (el *EventLog) LastOf(category, key string) (EventLogEntry, bool) {
	entries := el.Filter(category, key)
	if len(entries) == 0 {
		return EventLogEntry{}, false
	}
	return entries[len(entries)-1], true
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

// Format returns the full log as a single string for t.Log output.
func (el *EventLog) Format() string {
	return formatEntries(el.entries)
}

// FormatRange returns a log string filtered to a tick range.
func (el *EventLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(el.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []EventLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatOrder(o Order) string {
	return fmt.Sprintf("planet %d → planet %d (%.0f%% of %.1f)",
		o.Source.ID, o.Target.ID, o.Fraction*100, o.Source.Garrison())
}
