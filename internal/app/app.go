//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"cellsim/internal/core"
	"cellsim/internal/render"
	"cellsim/internal/ui"
	"cellsim/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a life simulation to the ebiten.Game interface.
type Game struct {
	sim     *life.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	pace    *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
	regions  int
}

// New constructs a Game for the provided simulation, stepping it
// stepsPerSecond times per second.
func New(sim *life.Sim, scale, stepsPerSecond int, seed int64) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(),
		pace:    core.NewFixedStep(stepsPerSecond),
		scale:   scale,
		seed:    seed,
	}
	g.regions = len(sim.Grid().Regions())
	return g
}

// Reset reseeds the simulation.
func (g *Game) Reset(seed int64) {
	if err := g.sim.Reset(seed); err != nil {
		slog.Error("reset failed", "seed", seed, "error", err)
		return
	}
	g.seed = seed
	g.tickOnce = false
	g.pace.Reset()
	g.regions = len(g.sim.Grid().Regions())
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.overlay.Update()

	if (!g.paused && g.pace.ShouldStep()) || g.tickOnce {
		before := g.sim.State()
		g.sim.Step()
		g.tickOnce = false
		if g.sim.State() != before {
			slog.Info("run finished",
				"seed", g.seed,
				"state", g.sim.State().String(),
				"generation", g.sim.Generation(),
			)
		}
		g.regions = len(g.sim.Grid().Regions())
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.overlay.Draw(screen, ui.Status{
		Seed:       g.seed,
		Generation: g.sim.Generation(),
		State:      g.sim.State().String(),
		Regions:    g.regions,
		Paused:     g.paused,
	})
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
