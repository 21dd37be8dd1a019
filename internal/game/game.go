package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Garsondee/Conquest/internal/conquest"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// bannerSeconds is how long the outcome banner stays up before the window closes.
const bannerSeconds = 3

// bannerScale enlarges the 7x13 bitmap font for the outcome banner.
const bannerScale = 4

var backgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// pointerState is the left mouse button and cursor as sampled once per tick.
type pointerState struct {
	down bool
	x, y int
}

// Game adapts a conquest.World to ebiten. Update steps the world once per
// tick and turns mouse and keyboard state into input events; Draw renders
// the world's Frame.
type Game struct {
	world  *conquest.World
	cfg    conquest.Config
	feed   *CaptureFeed
	colors map[string]color.RGBA
	face   *text.GoXFace

	pointer     pointerState
	paused      bool
	bannerTicks int
	status      string
	statusTicks int
}

// New wraps an already built world.
func New(w *conquest.World) *Game {
	g := &Game{
		world:  w,
		cfg:    w.Config(),
		feed:   NewCaptureFeed(),
		colors: map[string]color.RGBA{},
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
	for _, p := range w.Roster().Players() {
		g.colors[p.Name] = p.Color
	}
	return g
}

// Outcome returns the match state, for the caller to report after RunGame.
func (g *Game) Outcome() conquest.Outcome {
	return g.world.Outcome()
}

func (g *Game) Update() error {
	w := g.world
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.HandleInput(conquest.Quit())
		return ebiten.Termination
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	// Hold the final frame with its banner, then close.
	if w.Outcome().Done() {
		if g.bannerTicks <= 0 {
			return ebiten.Termination
		}
		g.bannerTicks--
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	if o := w.Step(); o.Done() {
		g.feed.Sync(w, g.colors)
		g.bannerTicks = bannerSeconds * g.cfg.TicksPerSecond
		return nil
	}
	g.feed.Sync(w, g.colors)

	x, y := ebiten.CursorPosition()
	cur := pointerState{down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x: x, y: y}
	for _, ev := range pointerEvents(g.pointer, cur) {
		if w.HandleInput(ev) {
			return ebiten.Termination
		}
	}
	g.pointer = cur
	return nil
}

// pointerEvents turns two consecutive pointer samples into input events.
func pointerEvents(prev, cur pointerState) []conquest.InputEvent {
	pos := conquest.Vec2{X: float64(cur.x), Y: float64(cur.y)}
	switch {
	case cur.down && !prev.down:
		return []conquest.InputEvent{conquest.PointerDown(pos)}
	case !cur.down && prev.down:
		return []conquest.InputEvent{conquest.PointerUp(pos)}
	case cur.down && (cur.x != prev.x || cur.y != prev.y):
		return []conquest.InputEvent{conquest.PointerMove(pos)}
	}
	return nil
}

func (g *Game) copyReport() {
	if err := clipboard.WriteAll(g.world.Report().Format()); err != nil {
		g.setStatus("clipboard: " + err.Error())
		return
	}
	g.setStatus("report copied to clipboard")
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTicks = 2 * g.cfg.TicksPerSecond
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	fr := g.world.Frame()

	for _, p := range fr.Planets {
		drawPlanet(screen, p)
	}
	for _, f := range fr.Fleets {
		drawFleet(screen, f)
	}
	if fr.Pending.Active {
		g.drawPending(screen, fr)
	}

	g.drawHUD(screen, fr)
	g.feed.Draw(screen, g.cfg.Width, g.cfg.Height)

	if fr.Outcome == conquest.OutcomeVictory || fr.Outcome == conquest.OutcomeDefeat {
		g.drawBanner(screen, fr.Outcome.Message())
	}
}

// drawPlanet renders the atmosphere, the garrison arc and the core.
func drawPlanet(screen *ebiten.Image, p conquest.PlanetView) {
	cx, cy := float32(p.Pos.X), float32(p.Pos.Y)
	r := float32(p.Radius)

	vector.FillCircle(screen, cx, cy, r, conquest.ColorAtmosphere, true)
	vector.StrokeCircle(screen, cx, cy, r-2, 1, color.RGBA{R: 60, G: 60, B: 60, A: 255}, true)
	if p.GarrisonAngle > 0 {
		drawArc(screen, p.Pos, p.Radius-2, p.GarrisonAngle, 3, p.Color)
	}
	vector.FillCircle(screen, cx, cy, float32(p.Size), p.Color, true)
	if p.Human {
		vector.StrokeCircle(screen, cx, cy, r+2, 1, p.Color, true)
	}

	label := fmt.Sprintf("%.0f", p.Garrison)
	ebitenutil.DebugPrintAt(screen, label, int(p.Pos.X)-3*len(label), int(p.Pos.Y+p.Size)+1)
}

// drawArc strokes a clockwise arc from twelve o'clock.
func drawArc(screen *ebiten.Image, centre conquest.Vec2, radius, sweep float64, width float32, c color.RGBA) {
	pts := arcPoints(centre, radius, sweep)
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen, float32(pts[i-1].X), float32(pts[i-1].Y),
			float32(pts[i].X), float32(pts[i].Y), width, c, true)
	}
}

// arcPoints samples the arc roughly every 4px, with at least 8 segments.
func arcPoints(centre conquest.Vec2, radius, sweep float64) []conquest.Vec2 {
	if sweep > 2*math.Pi {
		sweep = 2 * math.Pi
	}
	segments := int(math.Ceil(sweep * radius / 4))
	if segments < 8 {
		segments = 8
	}
	start := -math.Pi / 2
	pts := make([]conquest.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := start + sweep*float64(i)/float64(segments)
		pts = append(pts, conquest.Vec2{
			X: centre.X + radius*math.Cos(a),
			Y: centre.Y + radius*math.Sin(a),
		})
	}
	return pts
}

// drawFleet renders a fleet as a dot sized by strength with a faint heading line.
func drawFleet(screen *ebiten.Image, f conquest.FleetView) {
	trail := f.Color
	trail.A = 60
	vector.StrokeLine(screen, float32(f.Pos.X), float32(f.Pos.Y),
		float32(f.TargetPos.X), float32(f.TargetPos.Y), 1, trail, true)
	vector.FillCircle(screen, float32(f.Pos.X), float32(f.Pos.Y), fleetRadius(f.Size), f.Color, true)
}

func fleetRadius(size float64) float32 {
	r := math.Sqrt(size)
	if r < 2 {
		r = 2
	}
	return float32(r)
}

func (g *Game) drawPending(screen *ebiten.Image, fr conquest.Frame) {
	src := fr.Planets[fr.Pending.Source]
	c := src.Color
	c.A = 160
	vector.StrokeLine(screen, float32(src.Pos.X), float32(src.Pos.Y),
		float32(g.pointer.x), float32(g.pointer.y), 1, c, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f%%", fr.Pending.Fraction*100), g.pointer.x+8, g.pointer.y-8)
}

func (g *Game) drawHUD(screen *ebiten.Image, fr conquest.Frame) {
	lines := []string{fmt.Sprintf("T=%d  send=%s  P=pause C=copy report", fr.Tick, g.cfg.SendMode)}
	if g.paused {
		lines[0] += "  PAUSED"
	}
	for _, s := range fr.Standings {
		state := ""
		if s.Dead {
			state = " (dead)"
		}
		lines = append(lines, fmt.Sprintf("%-7s %2d planets %6.1f%s", s.Name, s.Planets, s.Strength(), state))
	}
	if g.statusTicks > 0 {
		lines = append(lines, g.status)
	}

	const lineH = 16
	const charW = 6
	const pad = 4
	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + pad*2)
	boxH := float32(len(lines)*lineH + pad*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, color.RGBA{R: 6, G: 6, B: 12, A: 200}, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1, color.RGBA{R: 60, G: 60, B: 100, A: 180}, false)

	for i, line := range lines {
		y := 4 + pad + i*lineH
		if i > 0 && i <= len(fr.Standings) {
			vector.FillRect(screen, 4+pad, float32(y+5), 4, 6, fr.Standings[i-1].Color, false)
		}
		ebitenutil.DebugPrintAt(screen, line, 4+pad+8, y)
	}
}

func (g *Game) drawBanner(screen *ebiten.Image, msg string) {
	tw, th := text.Measure(msg, g.face, 0)
	tw *= bannerScale
	th *= bannerScale
	x := (float64(g.cfg.Width) - tw) / 2
	y := (float64(g.cfg.Height) - th) / 2

	vector.FillRect(screen, float32(x-16), float32(y-12), float32(tw+32), float32(th+24), color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
	op := &text.DrawOptions{}
	op.GeoM.Scale(bannerScale, bannerScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, msg, g.face, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width + feedPanelWidth, g.cfg.Height
}
