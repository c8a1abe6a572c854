package viewer

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/RobotWar/internal/game"
)

const (
	feedPanelWidth = 340
	feedMaxEntries = 80
	feedLineHeight = 15
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Robot   string // "R", "G" or "--"
	Message string
}

// Feed is a ring buffer of recent match events rendered beside the board.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed with a fixed capacity.
func NewFeed() *Feed {
	return &Feed{entries: make([]FeedEntry, feedMaxEntries)}
}

// Add appends an entry, evicting the oldest once full.
func (f *Feed) Add(tick int, robot, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Robot: robot, Message: msg}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// AddLogEntry converts a match log entry into a feed line.
func (f *Feed) AddLogEntry(e game.MatchLogEntry) {
	f.Add(e.Tick, e.Robot, fmt.Sprintf("%s %s %s", e.Category, e.Key, e.Value))
}

// Reset empties the feed.
func (f *Feed) Reset() {
	f.head, f.count = 0, 0
}

// Len is the number of buffered entries.
func (f *Feed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

func robotColor(label string) color.RGBA {
	switch label {
	case "R":
		return colRed
	case "G":
		return colGreen
	default:
		return colDim
	}
}

// Draw renders the feed panel with its left edge at panelX.
func (f *Feed) Draw(screen *ebiten.Image, t *textDrawer, panelX, panelH int) {
	px := float32(panelX)
	vector.FillRect(screen, px, 0, feedPanelWidth, float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 255}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, colGrid, false)
	vector.FillRect(screen, px, 0, feedPanelWidth, 20, color.RGBA{R: 20, G: 26, B: 32, A: 255}, false)
	t.Draw(screen, "MATCH FEED", panelX+8, 4, colText)

	entries := f.Recent()
	maxVisible := (panelH - 28) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlight = 3
	y := 26
	for i, e := range entries {
		if i >= len(entries)-highlight {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 28, G: 34, B: 40, A: 200}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 7, robotColor(e.Robot), false)
		t.Draw(screen, fmt.Sprintf("%3d %s", e.Tick, e.Message), panelX+12, y+1, colText)
		y += feedLineHeight
	}
}
