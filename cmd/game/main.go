package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Garsondee/Conquest/internal/conquest"
	"github.com/Garsondee/Conquest/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var preset string
	var seed int64
	var sendMode string
	var planets int
	var autopilot bool
	var verbose bool

	flag.StringVar(&preset, "preset", "", "preset name (default from CONQUEST_PRESET, else classic)")
	flag.Int64Var(&seed, "seed", 0, "RNG seed for planet placement")
	flag.StringVar(&sendMode, "send-mode", "", "human send mode: drag, full or bearing")
	flag.IntVar(&planets, "planets", 0, "number of planets")
	flag.BoolVar(&autopilot, "autopilot", false, "let the AI strategy play the human seat")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick garrison samples")
	flag.Parse()

	var cfg conquest.Config
	var err error
	if preset != "" {
		cfg, err = conquest.LoadPresetConfig(preset)
	} else {
		cfg, err = conquest.LoadConfig()
	}
	if err != nil {
		log.Fatal(err)
	}

	// Flags beat environment; only flags given on the command line apply.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "send-mode":
			cfg.SendMode = conquest.SendMode(sendMode)
		case "planets":
			cfg.PlanetCount = planets
		case "autopilot":
			cfg.Autopilot = autopilot
		}
	})

	w, err := conquest.NewWorld(cfg)
	if err != nil {
		log.Fatal(err)
	}
	w.SetVerbose(verbose)

	g := game.New(w)
	ebiten.SetTPS(cfg.TicksPerSecond)
	ebiten.SetWindowTitle(fmt.Sprintf("Conquest (%s, seed %d)", cfg.Preset, cfg.Seed))
	ebiten.SetWindowSize(g.Layout(0, 0))
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if msg := g.Outcome().Message(); msg != "" {
		fmt.Println(msg)
	}
}
