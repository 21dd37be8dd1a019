package conquest

import (
	"image/color"
	"math/rand"
)

// TestSim is a headless world builder used by tests and the headless report.
// Worlds are assembled from options instead of a preset so scenarios can pin
// exact planet positions, garrisons and reaction intervals.
type TestSim struct {
	World  *World
	Config Config
	Err    error // first setup error, e.g. from WithGeneratedPlanets

	seed    int64
	verbose bool
	byName  map[string]*Player
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // map size, seed, verbose, config tweaks
	simOptPlanet                      // place planets
	simOptPlayer                      // seat players
	simOptOwner                       // award planets and set garrisons
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

var testPalette = []color.RGBA{ColorRed, ColorGreen, ColorPurple, ColorYellow}

// WithMapSize sets the playfield dimensions.
func WithMapSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Config.Width = w
		ts.Config.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
		ts.Config.Seed = seed
	}}
}

// WithVerbose enables per-tick garrison samples in the event log.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithConfig edits the config before the world is built.
func WithConfig(edit func(*Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.Config)
	}}
}

// WithPlanet places a neutral planet. Planets get IDs in option order.
func WithPlanet(x, y, radius, size float64) SimOption {
	return SimOption{simOptPlanet, func(ts *TestSim) {
		ts.World.AddPlanet(Vec2{X: x, Y: y}, radius, size)
	}}
}

// WithGeneratedPlanets places n planets by rejection sampling.
func WithGeneratedPlanets(n int) SimOption {
	return SimOption{simOptPlanet, func(ts *TestSim) {
		if err := ts.World.GeneratePlanets(n); err != nil && ts.Err == nil {
			ts.Err = err
		}
	}}
}

// WithHuman seats the human player.
func WithHuman(name string) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		ts.byName[name] = ts.World.AddHuman(name, ColorBlue)
	}}
}

// WithAutopilotHuman seats a human driven by the AI strategy.
func WithAutopilotHuman(name string, reaction int) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		p := ts.World.AddHuman(name, ColorBlue)
		p.Strategy = NearestTarget{Fraction: ts.Config.AIFraction}
		p.Reaction = reaction
		ts.byName[name] = p
	}}
}

// WithOpponent seats an AI player with the given reaction interval.
func WithOpponent(name string, reaction int) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		c := testPalette[len(ts.World.ai)%len(testPalette)]
		ts.byName[name] = ts.World.AddOpponent(name, c, reaction)
	}}
}

// WithOwner awards planet id to the named player with the given garrison.
func WithOwner(id PlanetID, name string, garrison float64) SimOption {
	return SimOption{simOptOwner, func(ts *TestSim) {
		p := ts.World.Planet(id)
		pl := ts.byName[name]
		if p == nil || pl == nil {
			return
		}
		ts.World.AwardPlanet(p, pl)
		p.SetGarrison(garrison)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (map size, seed, verbose, config)
//  2. Planets
//  3. Players
//  4. Ownership
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Config: ClassicConfig(),
		seed:   1,
		byName: make(map[string]*Player),
	}
	ts.Config.Opponents = nil
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	rng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
	ts.World = newWorld(ts.Config, rng, NewEventLog(ts.verbose))
	for _, kind := range []simOptionKind{simOptPlanet, simOptPlayer, simOptOwner} {
		for _, o := range opts {
			if o.kind == kind {
				o.fn(ts)
			}
		}
	}
	return ts
}

// Player returns a seated player by name, or nil.
func (ts *TestSim) Player(name string) *Player {
	return ts.byName[name]
}

// Planet returns a planet by ID, or nil.
func (ts *TestSim) Planet(id PlanetID) *Planet {
	return ts.World.Planet(id)
}

// Log returns the world's event log.
func (ts *TestSim) Log() *EventLog {
	return ts.World.Log()
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick()
}

// RunTicks advances the simulation n ticks or until the match ends.
func (ts *TestSim) RunTicks(n int) Outcome {
	for i := 0; i < n; i++ {
		if o := ts.World.Step(); o.Done() {
			return o
		}
	}
	return ts.World.Outcome()
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.World.Step()
		if predicate(ts) {
			return ts.World.Tick()
		}
		if ts.World.Outcome().Done() {
			return -1
		}
	}
	return -1
}

// Send feeds input events to the world between ticks.
func (ts *TestSim) Send(events ...InputEvent) {
	for _, ev := range events {
		ts.World.HandleInput(ev)
	}
}

// Launch dispatches a fleet between ticks as if the owner had ordered it.
func (ts *TestSim) Launch(from, to PlanetID, percent float64) *Fleet {
	src, dst := ts.World.Planet(from), ts.World.Planet(to)
	if src == nil || dst == nil {
		return nil
	}
	f := src.DispatchFleet(dst, percent)
	if f == nil {
		return nil
	}
	ts.World.fleets = append(ts.World.fleets, ts.World.launch(f))
	return f
}
