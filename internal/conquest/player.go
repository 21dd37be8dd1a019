package conquest

import (
	"image/color"
	"math"
)

// Player is an owner identity. Human and AI players share this shape; only
// AI players carry a Strategy in normal play.
type Player struct {
	ID       PlayerID
	Name     string
	Color    color.RGBA
	Reaction int // ticks between decisions
	Strategy Strategy

	reactionCount int
	dead          bool
	planets       []PlanetID // acquisition order
}

// Dead reports the result of the last pulse check.
func (p *Player) Dead() bool {
	return p.dead
}

// Planets returns the owned planet IDs in acquisition order.
func (p *Player) Planets() []PlanetID {
	out := make([]PlanetID, len(p.planets))
	copy(out, p.planets)
	return out
}

// PlanetCount returns how many planets the player owns.
func (p *Player) PlanetCount() int {
	return len(p.planets)
}

// ReactionCount returns ticks accumulated since the last decision.
func (p *Player) ReactionCount() int {
	return p.reactionCount
}

func (p *Player) addPlanet(id PlanetID) {
	for _, have := range p.planets {
		if have == id {
			return
		}
	}
	p.planets = append(p.planets, id)
}

func (p *Player) removePlanet(id PlanetID) {
	for i, have := range p.planets {
		if have == id {
			p.planets = append(p.planets[:i], p.planets[i+1:]...)
			return
		}
	}
}

// CheckPulse marks the player dead iff it owns no planets and none of the
// given fleets belongs to it.
func (p *Player) CheckPulse(fleets []*Fleet) {
	if len(p.planets) > 0 {
		p.dead = false
		return
	}
	p.dead = true
	for _, f := range fleets {
		if f.Owner == p.ID {
			p.dead = false
			return
		}
	}
}

// Decide advances the reaction counter and, once it reaches the reaction
// interval, asks the strategy for an order. It returns the launched fleet,
// or nil when nothing was sent.
func (p *Player) Decide(w *World) *Fleet {
	if p.dead || p.Strategy == nil {
		return nil
	}
	p.reactionCount++
	if p.reactionCount < p.Reaction || len(p.planets) == 0 {
		return nil
	}
	p.reactionCount = 0
	order, ok := p.Strategy.Choose(p, w)
	if !ok {
		w.log.Add(w.tick, p.Name, "ai", "no_target", "no planet left to attack", 0)
		return nil
	}
	w.log.Add(w.tick, p.Name, "ai", "decide",
		formatOrder(order), order.Fraction)
	return order.Source.DispatchFleet(order.Target, order.Fraction)
}

// Order is a strategy's dispatch decision.
type Order struct {
	Source   *Planet
	Target   *Planet
	Fraction float64
}

// Strategy picks a dispatch for a player whose reaction timer fired.
type Strategy interface {
	Choose(p *Player, w *World) (Order, bool)
}

// NearestTarget sends Fraction of the strongest owned garrison at the
// closest planet the player does not own.
type NearestTarget struct {
	Fraction float64
}

// Choose implements Strategy. Ties keep the first candidate: owned planets
// in acquisition order, targets in placement order.
func (s NearestTarget) Choose(p *Player, w *World) (Order, bool) {
	var source *Planet
	for _, id := range p.planets {
		pl := w.Planet(id)
		if pl == nil {
			continue
		}
		if source == nil || pl.Garrison() > source.Garrison() {
			source = pl
		}
	}
	if source == nil {
		return Order{}, false
	}

	var target *Planet
	best := math.Inf(1)
	for _, pl := range w.Planets() {
		if pl.Owner().Is(p.ID) {
			continue
		}
		if d := Dist(source.Pos, pl.Pos); d < best {
			target = pl
			best = d
		}
	}
	if target == nil {
		return Order{}, false
	}
	return Order{Source: source, Target: target, Fraction: s.Fraction}, true
}
