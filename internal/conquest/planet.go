package conquest

import "math"

// PlanetRules are the tunables shared by every planet in a world.
type PlanetRules struct {
	RegenDivisor   float64 // owned planets gain size/RegenDivisor garrison per tick
	GarrisonMargin float64 // capacity = radius - size - GarrisonMargin
	FleetSpeed     float64 // pixels per tick for fleets launched from the planet
}

// DefaultPlanetRules matches the classic preset.
var DefaultPlanetRules = PlanetRules{
	RegenDivisor:   1000,
	GarrisonMargin: 5,
	FleetSpeed:     0.2,
}

// Planet is a stationary territory. Owner changes only through Roster.Transfer.
type Planet struct {
	ID     PlanetID
	Pos    Vec2
	Radius float64 // collision and atmosphere extent
	Size   float64 // core radius, also drives regen and capacity

	owner    Owner
	garrison float64
	rules    PlanetRules
}

// NewPlanet creates a neutral planet with no garrison.
func NewPlanet(id PlanetID, pos Vec2, radius, size float64, rules PlanetRules) *Planet {
	return &Planet{
		ID:     id,
		Pos:    pos,
		Radius: radius,
		Size:   size,
		rules:  rules,
	}
}

// Owner returns who holds the planet.
func (p *Planet) Owner() Owner {
	return p.owner
}

// Garrison returns the current defensive strength.
func (p *Planet) Garrison() float64 {
	return p.garrison
}

// Capacity is the garrison ceiling: radius - size - margin, never below zero.
func (p *Planet) Capacity() float64 {
	return math.Max(0, p.Radius-p.Size-p.rules.GarrisonMargin)
}

// SetGarrison assigns the garrison, clamped to [0, Capacity].
func (p *Planet) SetGarrison(g float64) {
	p.garrison = g
	p.clampGarrison()
}

func (p *Planet) clampGarrison() {
	if p.garrison < 0 {
		p.garrison = 0
	}
	if c := p.Capacity(); p.garrison > c {
		p.garrison = c
	}
}

// Collides reports whether a circle of the given radius at point comes
// within buffer pixels of this planet's edge. Pass radius 0 to hit-test a point.
func (p *Planet) Collides(point Vec2, radius, buffer float64) bool {
	return Dist(p.Pos, point) < buffer+p.Radius+radius
}

// DispatchFleet removes percent of the garrison and returns it as a fleet
// bound for target. percent is clamped to [0, 1]. Neutral planets have
// nothing to send and return nil. The fleet's ID is assigned on launch.
func (p *Planet) DispatchFleet(target *Planet, percent float64) *Fleet {
	owner, ok := p.owner.Player()
	if !ok || target == nil {
		return nil
	}
	percent = math.Max(0, math.Min(1, percent))
	size := percent * p.garrison
	p.garrison -= size
	p.clampGarrison()
	return &Fleet{
		Owner:    owner,
		Size:     size,
		Pos:      p.Pos,
		Source:   p.ID,
		Target:   target,
		Velocity: p.rules.FleetSpeed,
	}
}

// GarrisonFractionFromDistance maps drag distance from the centre to [0, 1].
// Distances under 1px count as 1 so a click on the centre still sends something.
func (p *Planet) GarrisonFractionFromDistance(point Vec2) float64 {
	if p.Radius <= 0 {
		return 0
	}
	d := Dist(p.Pos, point)
	if d < 1 {
		d = 1
	}
	return math.Min(d, p.Radius) / p.Radius
}

// GarrisonFractionFromBearing maps the bearing from the centre to point onto
// [0, 1), sweeping clockwise on screen from the +X axis.
func (p *Planet) GarrisonFractionFromBearing(point Vec2) float64 {
	return normalizeAngle(Bearing(p.Pos, point)) / (2 * math.Pi)
}

// InvasionKind is the branch taken when a fleet reaches a planet.
type InvasionKind int

const (
	InvasionCaptured InvasionKind = iota
	InvasionReinforced
	InvasionDefended
)

func (k InvasionKind) String() string {
	switch k {
	case InvasionCaptured:
		return "capture"
	case InvasionReinforced:
		return "reinforce"
	case InvasionDefended:
		return "defend"
	default:
		return "unknown"
	}
}

// InvasionResult describes one resolved arrival.
type InvasionResult struct {
	Kind     InvasionKind
	Planet   PlanetID
	Fleet    FleetID
	Attacker PlayerID
	Previous Owner
	Strength float64 // fleet size
	Garrison float64 // garrison after resolution and clamp
}

// ResolveInvasion applies an arriving fleet to the planet. Ownership moves
// through the roster so the players' planet sets change with the owner field.
//
// Neutral planets fall to any fleet. A hostile fleet at least as strong as
// the garrison captures and keeps the overflow; a weaker one is absorbed.
func (p *Planet) ResolveInvasion(f *Fleet, roster *Roster) InvasionResult {
	res := InvasionResult{
		Planet:   p.ID,
		Fleet:    f.ID,
		Attacker: f.Owner,
		Previous: p.owner,
		Strength: f.Size,
	}

	switch {
	case p.owner.IsNeutral():
		res.Kind = InvasionCaptured
		roster.Transfer(p, OwnedBy(f.Owner))
		p.garrison = f.Size
	case p.owner.Is(f.Owner):
		res.Kind = InvasionReinforced
		p.garrison += f.Size
	case f.Size >= p.garrison:
		res.Kind = InvasionCaptured
		roster.Transfer(p, OwnedBy(f.Owner))
		p.garrison = f.Size - p.garrison
	default:
		res.Kind = InvasionDefended
		p.garrison -= f.Size
	}

	p.clampGarrison()
	res.Garrison = p.garrison
	return res
}

// Tick regenerates an owned planet's garrison toward capacity.
func (p *Planet) Tick() {
	if p.owner.IsNeutral() || p.rules.RegenDivisor <= 0 {
		return
	}
	if p.garrison < p.Capacity() {
		p.garrison += p.Size / p.rules.RegenDivisor
		p.clampGarrison()
	}
}
