// Package grid implements the automaton board: bounds-checked cell storage,
// generation stepping, random seeding and connected-region discovery.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("cell index out of range")
	// ErrInvalidArgument is returned for malformed fill parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Float64Source yields uniform samples in [0, 1). *rand.Rand and core.RNG
// both satisfy it.
type Float64Source interface {
	Float64() float64
}

// Grid stores a rows×cols matrix of cells. A grid with zero rows or columns is
// a valid empty grid. Its shape never changes after construction.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	nb         Neighborhood
	updater    Updater
}

// New allocates a rows×cols grid with every cell set to 0. Non-positive
// dimensions produce the empty grid.
func New(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		rows, cols = 0, 0
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return newWithCells(rows, cols, cells)
}

func newWithCells(rows, cols int, cells [][]Cell) *Grid {
	nb := NewNeighborhood(rows, cols)
	return &Grid{rows: rows, cols: cols, cells: cells, nb: nb, updater: NewUpdater(nb)}
}

// FromValues builds a grid from a rectangular matrix of values.
func FromValues(values [][]int) (*Grid, error) {
	if len(values) == 0 {
		return New(0, 0), nil
	}
	if len(values[0]) == 0 {
		for r, row := range values {
			if len(row) != 0 {
				return nil, fmt.Errorf("row %d has %d values, want 0: %w", r, len(row), ErrInvalidArgument)
			}
		}
		return New(0, 0), nil
	}
	g := New(len(values), len(values[0]))
	for r, row := range values {
		if len(row) != g.cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", r, len(row), g.cols, ErrInvalidArgument)
		}
		for c, v := range row {
			g.cells[r][c].value = v
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool { return g.rows == 0 || g.cols == 0 }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the cell at (row, col) for in-place modification.
func (g *Grid) Cell(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, fmt.Errorf("(%d,%d) in %dx%d grid: %w", row, col, g.rows, g.cols, ErrOutOfRange)
	}
	return &g.cells[row][col], nil
}

// Value returns the value at (row, col).
func (g *Grid) Value(row, col int) (int, error) {
	c, err := g.Cell(row, col)
	if err != nil {
		return 0, err
	}
	return c.Value(), nil
}

// SetValue stores v at (row, col).
func (g *Grid) SetValue(row, col, v int) error {
	c, err := g.Cell(row, col)
	if err != nil {
		return err
	}
	c.SetValue(v)
	return nil
}

// Neighborhood returns the coordinates within distance of (row, col).
func (g *Grid) Neighborhood(row, col int, m Metric, distance int) []Coord {
	return g.nb.ByDistance(row, col, m, distance)
}

// Update advances one generation. It reports false, leaving the grid
// untouched, when the next generation equals the current one.
func (g *Grid) Update() bool {
	next := g.updater.Update(g.cells)
	if equalCells(g.cells, next) {
		return false
	}
	g.cells = next
	return true
}

// FillRandom assigns every cell one of values, drawn with the matching
// probabilities from rng. Probabilities must sum to exactly 1.
func (g *Grid) FillRandom(values []int, probabilities []float64, rng Float64Source) error {
	if len(values) == 0 || len(values) != len(probabilities) {
		return fmt.Errorf("%d values with %d probabilities: %w", len(values), len(probabilities), ErrInvalidArgument)
	}
	total := 0.0
	for _, p := range probabilities {
		total += p
	}
	if total != 1.0 {
		return fmt.Errorf("probabilities sum to %v, must sum to 1: %w", total, ErrInvalidArgument)
	}
	if rng == nil {
		return fmt.Errorf("nil random source: %w", ErrInvalidArgument)
	}

	cumulative := make([]float64, len(probabilities))
	cumulative[0] = probabilities[0]
	for i := 1; i < len(probabilities); i++ {
		cumulative[i] = cumulative[i-1] + probabilities[i]
	}

	last := values[len(values)-1]
	for r := range g.cells {
		for c := range g.cells[r] {
			sample := rng.Float64()
			v := last
			for i, bound := range cumulative {
				if sample <= bound {
					v = values[i]
					break
				}
			}
			g.cells[r][c].value = v
		}
	}
	return nil
}

// Equal reports whether g and o have the same shape and cell values.
func (g *Grid) Equal(o *Grid) bool {
	return g.rows == o.rows && g.cols == o.cols && equalCells(g.cells, o.cells)
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return newWithCells(g.rows, g.cols, cloneCells(g.cells))
}

// Values returns a copy of the cell values in row-major order.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range g.cells {
		out[r] = make([]int, g.cols)
		for c := range g.cells[r] {
			out[r][c] = g.cells[r][c].value
		}
	}
	return out
}

// String returns the canonical form: one line per row, each value followed
// by a space, each row terminated by a newline. It is used as the
// deduplication key and persistence format, so it must stay byte-stable.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for _, cell := range row {
			b.WriteString(strconv.Itoa(cell.value))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
