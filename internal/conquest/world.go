package conquest

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
)

// ErrPlacementExhausted means the map could not fit the requested planets.
var ErrPlacementExhausted = errors.New("planet placement exhausted")

// hitTestBuffer widens pointer hit-tests slightly beyond the planet edge.
const hitTestBuffer = 2.0

// pendingSend is the human drag in progress.
type pendingSend struct {
	source   *Planet
	fraction float64
}

// World owns every planet, fleet and player and runs the tick order.
type World struct {
	cfg Config
	rng *rand.Rand
	log *EventLog

	planets []*Planet // indexed by PlanetID
	fleets  []*Fleet  // in flight, launch order
	roster  *Roster
	human   PlayerID // 0 when no human seat
	ai      []PlayerID

	tick      int
	nextFleet FleetID
	pending   pendingSend
	outcome   Outcome
}

func newWorld(cfg Config, rng *rand.Rand, log *EventLog) *World {
	return &World{
		cfg:       cfg,
		rng:       rng,
		log:       log,
		roster:    NewRoster(),
		nextFleet: 1,
	}
}

// NewWorld validates cfg, places planets and seats the human and every
// opponent on their own starting planet.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- game only
	w := newWorld(cfg, rng, NewEventLog(false))
	if err := w.GeneratePlanets(cfg.PlanetCount); err != nil {
		return nil, fmt.Errorf("generate planets: %w", err)
	}

	human := w.AddHuman(cfg.HumanName, cfg.HumanColor)
	if cfg.Autopilot {
		human.Strategy = NearestTarget{Fraction: cfg.AIFraction}
		human.Reaction = cfg.AutopilotReaction
	}
	w.AwardPlanet(w.planets[0], human)
	for i, o := range cfg.Opponents {
		p := w.AddOpponent(o.Name, o.Color, o.Reaction)
		w.AwardPlanet(w.planets[i+1], p)
	}
	return w, nil
}

// SetVerbose toggles per-tick garrison samples from now on.
func (w *World) SetVerbose(v bool) {
	w.log.verbose = v
}

// AddHuman seats the player driven by input events.
func (w *World) AddHuman(name string, c color.RGBA) *Player {
	p := w.roster.Add(name, c, 0, nil)
	w.human = p.ID
	return p
}

// AddOpponent seats an AI player using the nearest-target strategy.
func (w *World) AddOpponent(name string, c color.RGBA, reaction int) *Player {
	p := w.roster.Add(name, c, reaction, NearestTarget{Fraction: w.cfg.AIFraction})
	w.ai = append(w.ai, p.ID)
	return p
}

// GeneratePlanets places count more planets by rejection sampling. Each
// planet gets at most MaxPlacementAttempts candidates before giving up.
func (w *World) GeneratePlanets(count int) error {
	cfg := w.cfg
	for placed := 0; placed < count; placed++ {
		ok := false
		for attempt := 0; attempt < cfg.MaxPlacementAttempts; attempt++ {
			pos := Vec2{
				X: float64(w.rng.Intn(cfg.Width + 1)),
				Y: float64(w.rng.Intn(cfg.Height + 1)),
			}
			radius := float64(cfg.MinRadius + w.rng.Intn(cfg.MaxRadius-cfg.MinRadius+1))
			if !w.validPosition(pos, radius) {
				continue
			}
			maxSize := int(radius) / 2
			size := 5 + w.rng.Intn(maxSize-5+1)
			w.AddPlanet(pos, radius, float64(size))
			ok = true
			break
		}
		if !ok {
			return fmt.Errorf("%w: placed %d of %d planets on %dx%d after %d attempts",
				ErrPlacementExhausted, placed, count, cfg.Width, cfg.Height, cfg.MaxPlacementAttempts)
		}
	}
	return nil
}

func (w *World) validPosition(pos Vec2, radius float64) bool {
	if pos.X-radius < 0 || pos.Y-radius < 0 ||
		pos.X+radius > float64(w.cfg.Width) || pos.Y+radius > float64(w.cfg.Height) {
		return false
	}
	for _, p := range w.planets {
		if p.Collides(pos, radius, w.cfg.PlacementBuffer) {
			return false
		}
	}
	return true
}

// AddPlanet places a neutral planet without any checks.
func (w *World) AddPlanet(pos Vec2, radius, size float64) *Planet {
	p := NewPlanet(PlanetID(len(w.planets)), pos, radius, size, w.cfg.PlanetRules())
	w.planets = append(w.planets, p)
	return p
}

// AwardPlanet gives a planet to a player during scenario setup.
func (w *World) AwardPlanet(p *Planet, player *Player) {
	prev := w.roster.Name(p.Owner())
	w.roster.Transfer(p, OwnedBy(player.ID))
	w.log.Add(w.tick, player.Name, "planet", "award",
		fmt.Sprintf("planet %d from %s", p.ID, prev), 0)
}

// Planet returns the planet with the given ID, or nil.
func (w *World) Planet(id PlanetID) *Planet {
	if id < 0 || int(id) >= len(w.planets) {
		return nil
	}
	return w.planets[id]
}

// Planets returns all planets in placement order.
func (w *World) Planets() []*Planet {
	return append([]*Planet(nil), w.planets...)
}

// Fleets returns the fleets currently in flight.
func (w *World) Fleets() []*Fleet {
	return append([]*Fleet(nil), w.fleets...)
}

// Roster returns the player registry.
func (w *World) Roster() *Roster { return w.roster }

// Human returns the human player, or nil when the seat is empty.
func (w *World) Human() *Player { return w.roster.Get(w.human) }

// Opponents returns the AI players in seating order.
func (w *World) Opponents() []*Player {
	out := make([]*Player, 0, len(w.ai))
	for _, id := range w.ai {
		out = append(out, w.roster.Get(id))
	}
	return out
}

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Outcome returns the match state.
func (w *World) Outcome() Outcome { return w.outcome }

// Log returns the event log.
func (w *World) Log() *EventLog { return w.log }

// Config returns the configuration the world was built from.
func (w *World) Config() Config { return w.cfg }

// PlanetAt hit-tests pos against every planet. The last match wins, which
// only matters if planets were placed overlapping.
func (w *World) PlanetAt(pos Vec2) *Planet {
	var hit *Planet
	for _, p := range w.planets {
		if p.Collides(pos, 0, hitTestBuffer) {
			hit = p
		}
	}
	return hit
}

// Step advances the simulation one tick:
//  1. pulse-check every player; a dead human ends the match in defeat
//  2. each living AI decides; launched fleets wait for the next tick
//  3. no living AI ends the match in victory
//  4. planets regenerate
//  5. fleets advance, resolving invasions on arrival
//  6. arrived fleets are removed, then queued fleets join
func (w *World) Step() Outcome {
	if w.outcome.Done() {
		return w.outcome
	}
	w.tick++

	// 1. PULSE
	for _, p := range w.roster.Players() {
		wasDead := p.Dead()
		p.CheckPulse(w.fleets)
		if p.Dead() && !wasDead {
			w.log.Add(w.tick, p.Name, "player", "eliminated", "no planets and no fleets", 0)
		}
	}
	if human := w.Human(); human != nil && human.Dead() {
		return w.finish(OutcomeDefeat)
	}

	// 2. DECIDE
	var queued []*Fleet
	if human := w.Human(); human != nil && human.Strategy != nil {
		if f := human.Decide(w); f != nil {
			queued = append(queued, w.launch(f))
		}
	}
	allDead := true
	for _, p := range w.Opponents() {
		if p.Dead() {
			continue
		}
		allDead = false
		if f := p.Decide(w); f != nil {
			queued = append(queued, w.launch(f))
		}
	}

	// 3. VICTORY
	if allDead {
		return w.finish(OutcomeVictory)
	}

	// 4. PLANETS
	for _, p := range w.planets {
		p.Tick()
		w.log.AddVerbose(w.tick, w.roster.Name(p.Owner()), "planet", "garrison",
			fmt.Sprintf("planet %d %.2f/%.0f", p.ID, p.Garrison(), p.Capacity()), p.Garrison())
	}

	// 5. FLEETS
	for _, f := range w.fleets {
		if f.Tick(w.roster) {
			w.logArrival(f)
		}
	}

	// 6. CLEANUP
	kept := w.fleets[:0]
	for _, f := range w.fleets {
		if !f.Arrived() {
			kept = append(kept, f)
		}
	}
	for i := len(kept); i < len(w.fleets); i++ {
		w.fleets[i] = nil
	}
	w.fleets = append(kept, queued...)
	return w.outcome
}

func (w *World) finish(o Outcome) Outcome {
	w.outcome = o
	w.pending = pendingSend{}
	w.log.Add(w.tick, "--", "game", "outcome", o.String(), 0)
	return o
}

// launch assigns the fleet an ID and records the dispatch.
func (w *World) launch(f *Fleet) *Fleet {
	f.ID = w.nextFleet
	w.nextFleet++
	w.log.Add(w.tick, w.roster.Name(OwnedBy(f.Owner)), "fleet", "dispatch",
		fmt.Sprintf("fleet %d: planet %d → planet %d size %.1f", f.ID, f.Source, f.Target.ID, f.Size), f.Size)
	return f
}

func (w *World) logArrival(f *Fleet) {
	res, _ := f.Result()
	name := w.roster.Name(OwnedBy(res.Attacker))
	w.log.Add(w.tick, name, "invasion", res.Kind.String(),
		fmt.Sprintf("planet %d from %s (fleet %.1f → garrison %.1f)",
			res.Planet, w.roster.Name(res.Previous), res.Strength, res.Garrison), res.Strength)
}

// HandleInput applies one input event. It returns true when the event asks
// the loop to stop.
func (w *World) HandleInput(ev InputEvent) bool {
	if ev.Kind == InputQuit {
		if !w.outcome.Done() {
			w.finish(OutcomeQuit)
		}
		return true
	}
	if w.outcome.Done() {
		return false
	}
	switch ev.Kind {
	case InputPointerDown:
		if hit := w.PlanetAt(ev.Pos); hit != nil && w.human != 0 && hit.Owner().Is(w.human) {
			w.pending = pendingSend{source: hit, fraction: w.sendFraction(hit, ev.Pos)}
		}
	case InputPointerMove:
		// Only movement inside the source adjusts the fraction; leaving it
		// keeps the last value while the pointer travels to the target.
		if src := w.pending.source; src != nil && src.Collides(ev.Pos, 0, 0) {
			w.pending.fraction = w.sendFraction(src, ev.Pos)
		}
	case InputPointerUp:
		src, frac := w.pending.source, w.pending.fraction
		w.pending = pendingSend{}
		hit := w.PlanetAt(ev.Pos)
		if hit == nil || src == nil || hit == src || frac <= 0 {
			return false
		}
		// The source may have fallen between press and release.
		if !src.Owner().Is(w.human) {
			return false
		}
		if f := src.DispatchFleet(hit, frac); f != nil {
			w.fleets = append(w.fleets, w.launch(f))
		}
	}
	return false
}

func (w *World) sendFraction(src *Planet, pos Vec2) float64 {
	switch w.cfg.SendMode {
	case SendFull:
		return 1
	case SendBearing:
		return src.GarrisonFractionFromBearing(pos)
	default:
		return src.GarrisonFractionFromDistance(pos)
	}
}

// Pending returns the pending human send source and fraction.
func (w *World) Pending() (*Planet, float64) {
	return w.pending.source, w.pending.fraction
}
