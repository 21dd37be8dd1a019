package conquest

import (
	"image/color"
	"math"
)

// PlanetView is the render-facing copy of a planet.
type PlanetView struct {
	ID       PlanetID
	Pos      Vec2
	Radius   float64
	Size     float64
	Owner    Owner
	Color    color.RGBA
	Garrison float64
	Capacity float64
	// GarrisonAngle is the garrison's share of capacity as a sweep in [0, 2π].
	GarrisonAngle float64
	Human         bool // owned by the human seat
}

// FleetView is the render-facing copy of a fleet in flight.
type FleetView struct {
	ID        FleetID
	Owner     PlayerID
	Pos       Vec2
	Size      float64
	Color     color.RGBA
	TargetPos Vec2
}

// PendingView describes a human drag in progress.
type PendingView struct {
	Active   bool
	Source   PlanetID
	Fraction float64
}

// Frame is an immutable snapshot of everything a renderer draws in one tick.
type Frame struct {
	Tick      int
	Outcome   Outcome
	Planets   []PlanetView
	Fleets    []FleetView
	Pending   PendingView
	Standings []Standing
}

// Presenter consumes one frame per tick.
type Presenter interface {
	Present(Frame)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Frame)

// Present implements Presenter.
func (f PresenterFunc) Present(fr Frame) { f(fr) }

// Frame snapshots the current state.
func (w *World) Frame() Frame {
	fr := Frame{
		Tick:      w.tick,
		Outcome:   w.outcome,
		Planets:   make([]PlanetView, 0, len(w.planets)),
		Fleets:    make([]FleetView, 0, len(w.fleets)),
		Standings: w.Standings(),
	}
	for _, p := range w.planets {
		angle := 0.0
		if c := p.Capacity(); c > 0 {
			angle = 2 * math.Pi * p.Garrison() / c
		}
		fr.Planets = append(fr.Planets, PlanetView{
			ID:            p.ID,
			Pos:           p.Pos,
			Radius:        p.Radius,
			Size:          p.Size,
			Owner:         p.Owner(),
			Color:         w.roster.Color(p.Owner()),
			Garrison:      p.Garrison(),
			Capacity:      p.Capacity(),
			GarrisonAngle: angle,
			Human:         w.human != 0 && p.Owner().Is(w.human),
		})
	}
	for _, f := range w.fleets {
		if f.Arrived() {
			continue
		}
		fr.Fleets = append(fr.Fleets, FleetView{
			ID:        f.ID,
			Owner:     f.Owner,
			Pos:       f.Pos,
			Size:      f.Size,
			Color:     w.roster.Color(OwnedBy(f.Owner)),
			TargetPos: f.Target.Pos,
		})
	}
	if src, frac := w.Pending(); src != nil {
		fr.Pending = PendingView{Active: true, Source: src.ID, Fraction: frac}
	}
	return fr
}
