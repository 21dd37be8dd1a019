package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Conquest/internal/conquest"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedPanelWidth = 280
	feedMaxEntries = 60
	feedLineHeight = 14
)

// FeedEntry is a single line in the capture feed.
type FeedEntry struct {
	Tick    int
	Player  string
	Color   color.RGBA
	Message string
}

// CaptureFeed is a ring buffer of notable match events rendered on-screen.
type CaptureFeed struct {
	entries []FeedEntry
	head    int
	count   int
	cursor  int // event log entries already consumed
}

// NewCaptureFeed creates a feed with a fixed capacity.
func NewCaptureFeed() *CaptureFeed {
	return &CaptureFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, dropping the oldest once full.
func (cf *CaptureFeed) Add(tick int, player string, c color.RGBA, msg string) {
	cf.entries[cf.head] = FeedEntry{
		Tick:    tick,
		Player:  player,
		Color:   c,
		Message: msg,
	}
	cf.head = (cf.head + 1) % feedMaxEntries
	if cf.count < feedMaxEntries {
		cf.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (cf *CaptureFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, cf.count)
	for i := 0; i < cf.count; i++ {
		idx := (cf.head - cf.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = cf.entries[idx]
	}
	return result
}

// Sync pulls captures, defences, eliminations and the outcome from the
// world's event log into the feed.
func (cf *CaptureFeed) Sync(w *conquest.World, colors map[string]color.RGBA) {
	el := w.Log()
	for _, e := range el.Since(cf.cursor) {
		switch {
		case e.Category == "invasion" && e.Key != conquest.InvasionReinforced.String():
			cf.Add(e.Tick, e.Player, colors[e.Player], e.Key+" "+e.Value)
		case e.Category == "player" && e.Key == "eliminated":
			cf.Add(e.Tick, e.Player, colors[e.Player], "eliminated")
		case e.Category == "game" && e.Key == "outcome":
			cf.Add(e.Tick, "--", conquest.ColorNeutral, "match "+e.Value)
		}
	}
	cf.cursor = el.Len()
}

// Draw renders the feed panel on the right side of the screen.
func (cf *CaptureFeed) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(feedPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "CAPTURE FEED", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+feedPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 50, B: 90, A: 200}, false)

	entries := cf.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / feedLineHeight
	startIdx := 0
	if len(entries) > maxVisible {
		startIdx = len(entries) - maxVisible
	}
	visible := entries[startIdx:]
	recent := 3

	y := 20
	for i, e := range visible {
		if i >= len(visible)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(feedPanelWidth-4), float32(feedLineHeight), color.RGBA{R: 30, G: 30, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, e.Color, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s %s", e.Tick, e.Player, e.Message), panelX+12, y-1)
		y += feedLineHeight
	}
}
