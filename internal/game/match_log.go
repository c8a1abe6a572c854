package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded event during a match.
type MatchLogEntry struct {
	Tick     int
	Robot    string  // "R", "G", or "--" for arena events
	Category string  // decide, act, laser, radar, outcome, grade
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=012] R  laser     hit             (3,4) E range=3
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-2s %-9s %-15s %s",
		e.Tick, e.Robot, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for a match. It is unbounded and
// machine-readable; the viewer keeps its own ring buffer for display.
type MatchLog struct {
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a log. In verbose mode per-tick fact grades are
// recorded as well.
func NewMatchLog(verbose bool) *MatchLog {
	return &MatchLog{verbose: verbose}
}

// Verbose reports whether verbose entries are kept.
func (ml *MatchLog) Verbose() bool {
	return ml.verbose
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, robot, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Robot:    robot,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick int, robot, category, key, value string, numVal float64) {
	if !ml.verbose {
		return
	}
	ml.Add(tick, robot, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Filter returns entries matching category and key. Empty strings match anything.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
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

// FilterRobot returns entries for one robot label.
func (ml *MatchLog) FilterRobot(label string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if e.Robot == label {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category and key.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	entries := ml.Filter(category, key)
	if len(entries) == 0 {
		return MatchLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry reports whether any entry matches category, key and a value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
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

// Format returns the whole log, one entry per line.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Tail returns up to n most recent entries, oldest first.
func (ml *MatchLog) Tail(n int) []MatchLogEntry {
	if n >= len(ml.entries) {
		return ml.entries
	}
	return ml.entries[len(ml.entries)-n:]
}
