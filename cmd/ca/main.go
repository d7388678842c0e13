//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"cellsim/internal/app"
	"cellsim/internal/config"
	"cellsim/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (empty = defaults)")
	seed := flag.Int64("seed", 0, "seed for the first board (0 = config seed, then time based)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = cfg.Simulation.Seed
	}
	if s == 0 {
		s = time.Now().UnixNano()
	}

	sim, err := life.New(cfg.Life())
	if err != nil {
		slog.Error("invalid board", "error", err)
		os.Exit(1)
	}
	if err := sim.Reset(s); err != nil {
		slog.Error("seeding board", "error", err)
		os.Exit(1)
	}

	v := cfg.Viewer
	game := app.New(sim, v.Scale, v.StepsPerSecond, s)
	size := sim.Size()

	ebiten.SetWindowTitle("cellsim - " + sim.Name())
	ebiten.SetTPS(v.TPS)
	ebiten.SetWindowSize(size.W*v.Scale, size.H*v.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
