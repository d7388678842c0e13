package life

import (
	"errors"
	"fmt"
	"log/slog"

	"cellsim/pkg/grid"
	"cellsim/pkg/storage"
)

// Attempt summarises one randomly seeded run.
type Attempt struct {
	Index          int
	Seed           int64
	Generations    int
	State          State
	InitialRegions int
	Regions        int
	NewShapes      int
}

// Recorder receives every finished attempt.
type Recorder interface {
	Record(Attempt) error
}

// RunnerConfig controls the search for settled region shapes.
type RunnerConfig struct {
	Sim           Config
	Seed          int64
	TargetRegions int
	MaxAttempts   int
}

// Runner repeatedly seeds a board, runs it to a terminal state and adds every
// surviving region's cropped shape to a Storage.
type Runner struct {
	cfg   RunnerConfig
	sim   *Sim
	store *storage.Storage
	rec   Recorder
	log   *slog.Logger
}

// NewRunner returns a Runner adding shapes to store. rec may be nil; a nil
// logger uses slog.Default.
func NewRunner(cfg RunnerConfig, store *storage.Storage, rec Recorder, logger *slog.Logger) (*Runner, error) {
	if store == nil {
		return nil, errors.New("runner requires a storage")
	}
	if cfg.MaxAttempts <= 0 {
		return nil, errors.New("max attempts must be positive")
	}
	sim, err := New(cfg.Sim)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, sim: sim, store: store, rec: rec, log: logger}, nil
}

// Sim exposes the board driven by the runner.
func (r *Runner) Sim() *Sim { return r.sim }

// Run performs attempts until one ends with at least TargetRegions regions or
// MaxAttempts is reached. It returns every attempt made.
func (r *Runner) Run() ([]Attempt, error) {
	var attempts []Attempt
	for i := 0; i < r.cfg.MaxAttempts; i++ {
		a, err := r.attempt(i, r.cfg.Seed+int64(i))
		if err != nil {
			return attempts, err
		}
		attempts = append(attempts, a)
		if a.Regions >= r.cfg.TargetRegions {
			return attempts, nil
		}
	}
	r.log.Warn("region target not reached",
		"target", r.cfg.TargetRegions,
		"attempts", r.cfg.MaxAttempts,
	)
	return attempts, nil
}

func (r *Runner) attempt(index int, seed int64) (Attempt, error) {
	a := Attempt{Index: index, Seed: seed}
	if err := r.sim.Reset(seed); err != nil {
		return a, err
	}
	a.InitialRegions = len(r.sim.Grid().Regions())

	a.State = r.sim.Run()
	a.Generations = r.sim.Generation()

	g := r.sim.Grid()
	regions := g.Regions()
	a.Regions = len(regions)
	for _, region := range regions {
		if r.store.Add(grid.FromRegion(g, region)) == 1 {
			a.NewShapes++
		}
	}

	r.log.Debug("attempt finished",
		"attempt", a.Index,
		"seed", a.Seed,
		"state", a.State.String(),
		"generations", a.Generations,
		"initial_regions", a.InitialRegions,
		"regions", a.Regions,
		"new_shapes", a.NewShapes,
	)
	if r.rec != nil {
		if err := r.rec.Record(a); err != nil {
			return a, fmt.Errorf("recording attempt %d: %w", index, err)
		}
	}
	return a, nil
}
