package life

import (
	"errors"
	"fmt"

	"cellsim/pkg/core"
	"cellsim/pkg/grid"
)

// State tracks where a run is in its lifecycle.
type State int

const (
	// Running means further steps may change the grid.
	Running State = iota
	// Settled means the last update left the grid unchanged.
	Settled
	// Cyclic means the grid repeated the state from two generations earlier.
	Cyclic
	// Exhausted means the generation limit was reached first.
	Exhausted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Cyclic:
		return "cyclic"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config holds parameters for one simulated board.
type Config struct {
	Rows           int
	Cols           int
	Values         []int
	Probabilities  []float64
	MaxGenerations int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Rows:           7,
		Cols:           7,
		Values:         []int{0, 1},
		Probabilities:  []float64{0.5, 0.5},
		MaxGenerations: 30,
	}
}

// Validate reports configuration errors that would prevent a run.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.MaxGenerations <= 0 {
		return errors.New("max generations must be positive")
	}
	for _, v := range c.Values {
		if v != 0 && v != 1 {
			return fmt.Errorf("fill value %d: cells must be 0 or 1", v)
		}
	}
	return nil
}

// Sim steps a single grid and detects fixed points and period-2 cycles.
type Sim struct {
	cfg        Config
	g          *grid.Grid
	generation int
	state      State
	// prev and prevPrev are the canonical strings after the last two updates.
	prev, prevPrev string
}

// New returns a Sim with an all-zero board.
func New(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sim{cfg: cfg, g: grid.New(cfg.Rows, cfg.Cols)}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "life" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Cols, H: s.cfg.Rows} }

// Grid exposes the current board.
func (s *Sim) Grid() *grid.Grid { return s.g }

// Generation returns the number of updates that changed the board.
func (s *Sim) Generation() int { return s.generation }

// State returns the current lifecycle state.
func (s *Sim) State() State { return s.state }

// Reset fills the board randomly from seed and restarts the run.
func (s *Sim) Reset(seed int64) error {
	return s.ResetFrom(core.NewRNG(seed))
}

// ResetFrom fills the board from rng and restarts the run.
func (s *Sim) ResetFrom(rng grid.Float64Source) error {
	if err := s.g.FillRandom(s.cfg.Values, s.cfg.Probabilities, rng); err != nil {
		return fmt.Errorf("filling grid: %w", err)
	}
	s.restart()
	return nil
}

// Load replaces the board with g and restarts the run.
func (s *Sim) Load(g *grid.Grid) {
	s.g = g.Clone()
	s.cfg.Rows, s.cfg.Cols = g.Rows(), g.Cols()
	s.restart()
}

func (s *Sim) restart() {
	s.generation = 0
	s.state = Running
	s.prev, s.prevPrev = "", ""
}

// Step advances the board by one generation while the run is active.
func (s *Sim) Step() {
	if s.state != Running {
		return
	}
	if !s.g.Update() {
		s.state = Settled
		return
	}
	step := s.generation
	s.generation++

	cur := s.g.String()
	if step >= 2 && cur == s.prevPrev {
		s.state = Cyclic
		return
	}
	s.prevPrev, s.prev = s.prev, cur

	if s.generation >= s.cfg.MaxGenerations {
		s.state = Exhausted
	}
}

// Run steps until the run leaves the Running state.
func (s *Sim) Run() State {
	for s.state == Running {
		s.Step()
	}
	return s.state
}

// Cells returns the region label of every cell in row-major order, 0 for
// background. Labels above 255 saturate.
func (s *Sim) Cells() []uint8 {
	out := make([]uint8, 0, s.g.Rows()*s.g.Cols())
	for _, row := range s.g.RegionLabels() {
		for _, l := range row {
			out = append(out, uint8(min(l, 255)))
		}
	}
	return out
}

var _ core.Sim = (*Sim)(nil)
