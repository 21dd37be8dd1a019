package conquest

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/caarlos0/env/v11"
)

// envPrefix namespaces every environment override.
const envPrefix = "CONQUEST_"

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Faction palette.
var (
	ColorNeutral    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorAtmosphere = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	ColorBlue       = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	ColorRed        = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	ColorGreen      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	ColorPurple     = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	ColorYellow     = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// SendMode selects how a human drag turns into a dispatch fraction.
type SendMode string

const (
	SendDrag    SendMode = "drag"    // distance from the source centre
	SendFull    SendMode = "full"    // whole garrison
	SendBearing SendMode = "bearing" // angle around the source centre
)

func (m SendMode) valid() bool {
	switch m {
	case SendDrag, SendFull, SendBearing:
		return true
	}
	return false
}

// OpponentConfig describes one AI seat.
type OpponentConfig struct {
	Name     string
	Color    color.RGBA
	Reaction int // ticks between decisions; smaller is more aggressive
}

// Config holds everything needed to build a World. Fields tagged env can be
// overridden from CONQUEST_* environment variables.
type Config struct {
	Preset string `env:"PRESET"`
	Seed   int64  `env:"SEED"`

	Width                int     `env:"WIDTH"`
	Height               int     `env:"HEIGHT"`
	PlanetCount          int     `env:"PLANETS"`
	MinRadius            int     `env:"MIN_RADIUS"`
	MaxRadius            int     `env:"MAX_RADIUS"`
	PlacementBuffer      float64 `env:"PLACEMENT_BUFFER"`
	MaxPlacementAttempts int     `env:"MAX_PLACEMENT_ATTEMPTS"`

	FleetSpeed     float64 `env:"FLEET_SPEED"`
	RegenDivisor   float64 `env:"REGEN_DIVISOR"`
	GarrisonMargin float64 `env:"GARRISON_MARGIN"`
	TicksPerSecond int     `env:"TPS"`
	AIFraction     float64 `env:"AI_FRACTION"`

	SendMode          SendMode `env:"SEND_MODE"`
	Autopilot         bool     `env:"AUTOPILOT"` // let the AI strategy drive the human seat
	AutopilotReaction int      `env:"AUTOPILOT_REACTION"`

	HumanName  string
	HumanColor color.RGBA
	Opponents  []OpponentConfig
}

var presets = map[string]func() Config{
	"classic":  ClassicConfig,
	"skirmish": SkirmishConfig,
}

// ClassicConfig is the canonical setup: a small 800x600 map, four AIs and a
// drag-proportional human send.
func ClassicConfig() Config {
	return Config{
		Preset:               "classic",
		Seed:                 1,
		Width:                800,
		Height:               600,
		PlanetCount:          20,
		MinRadius:            20,
		MaxRadius:            50,
		PlacementBuffer:      2,
		MaxPlacementAttempts: 10000,
		FleetSpeed:           DefaultPlanetRules.FleetSpeed,
		RegenDivisor:         DefaultPlanetRules.RegenDivisor,
		GarrisonMargin:       DefaultPlanetRules.GarrisonMargin,
		TicksPerSecond:       30,
		AIFraction:           0.5,
		SendMode:             SendDrag,
		AutopilotReaction:    100,
		HumanName:            "me",
		HumanColor:           ColorBlue,
		Opponents: []OpponentConfig{
			{Name: "red", Color: ColorRed, Reaction: 150},
			{Name: "green", Color: ColorGreen, Reaction: 100},
			{Name: "purple", Color: ColorPurple, Reaction: 450},
			{Name: "yellow", Color: ColorYellow, Reaction: 100},
		},
	}
}

// SkirmishConfig is the alternate variant: a larger map, three AIs, faster
// fleets and a full-garrison human send.
func SkirmishConfig() Config {
	cfg := ClassicConfig()
	cfg.Preset = "skirmish"
	cfg.Width = 1024
	cfg.Height = 768
	cfg.PlanetCount = 28
	cfg.FleetSpeed = 1.0
	cfg.SendMode = SendFull
	cfg.Opponents = []OpponentConfig{
		{Name: "green", Color: ColorGreen, Reaction: 100},
		{Name: "red", Color: ColorRed, Reaction: 150},
		{Name: "purple", Color: ColorPurple, Reaction: 450},
	}
	return cfg
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetConfig returns a fresh copy of the named preset.
func PresetConfig(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (known: %v)", ErrInvalidConfig, name, PresetNames())
	}
	return build(), nil
}

// LoadConfig picks the preset named by CONQUEST_PRESET (default classic) and
// applies the remaining CONQUEST_* overrides on top of it.
func LoadConfig() (Config, error) {
	var sel struct {
		Preset string `env:"PRESET" envDefault:"classic"`
	}
	if err := env.ParseWithOptions(&sel, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return LoadPresetConfig(sel.Preset)
}

// LoadPresetConfig applies CONQUEST_* overrides on top of the named preset.
// CONQUEST_PRESET itself is ignored.
func LoadPresetConfig(name string) (Config, error) {
	cfg, err := PresetConfig(name)
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Preset = name
	return cfg, nil
}

// PlanetRules derives the per-planet tunables.
func (c Config) PlanetRules() PlanetRules {
	return PlanetRules{
		RegenDivisor:   c.RegenDivisor,
		GarrisonMargin: c.GarrisonMargin,
		FleetSpeed:     c.FleetSpeed,
	}
}

// Validate rejects configurations the world cannot be built from.
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return invalid("map size %dx%d must be positive", c.Width, c.Height)
	case c.MinRadius < 10:
		// Core size is drawn from [5, radius/2], so smaller planets have no valid core.
		return invalid("min radius %d must be at least 10", c.MinRadius)
	case c.MaxRadius < c.MinRadius:
		return invalid("max radius %d below min radius %d", c.MaxRadius, c.MinRadius)
	case 2*c.MinRadius > c.Width || 2*c.MinRadius > c.Height:
		return invalid("map %dx%d cannot fit a planet of radius %d", c.Width, c.Height, c.MinRadius)
	case len(c.Opponents) == 0:
		return invalid("at least one opponent is required")
	case c.PlanetCount < len(c.Opponents)+1:
		return invalid("%d planets cannot seat %d players", c.PlanetCount, len(c.Opponents)+1)
	case c.PlacementBuffer < 0:
		return invalid("placement buffer %.1f is negative", c.PlacementBuffer)
	case c.MaxPlacementAttempts <= 0:
		return invalid("max placement attempts must be positive")
	case c.FleetSpeed <= 0:
		return invalid("fleet speed %.2f must be positive", c.FleetSpeed)
	case c.RegenDivisor < 0 || c.GarrisonMargin < 0:
		return invalid("regen divisor and garrison margin must not be negative")
	case c.TicksPerSecond <= 0:
		return invalid("ticks per second must be positive")
	case c.AIFraction <= 0 || c.AIFraction > 1:
		return invalid("ai fraction %.2f outside (0, 1]", c.AIFraction)
	case !c.SendMode.valid():
		return invalid("unknown send mode %q", c.SendMode)
	case c.Autopilot && c.AutopilotReaction <= 0:
		return invalid("autopilot reaction %d must be positive", c.AutopilotReaction)
	}
	for _, o := range c.Opponents {
		if o.Reaction <= 0 {
			return invalid("opponent %q reaction %d must be positive", o.Name, o.Reaction)
		}
	}
	return nil
}
