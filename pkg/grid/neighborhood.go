package grid

import "math"

// Metric selects how the distance between two cells is measured.
type Metric int

const (
	// Euclidean uses sqrt(dr²+dc²).
	Euclidean Metric = iota
	// Manhattan uses |dr|+|dc|.
	Manhattan
	// Chebyshev uses max(|dr|,|dc|).
	Chebyshev
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	}
	return "unknown"
}

func (m Metric) distance(dr, dc int) float64 {
	ar, ac := abs(dr), abs(dc)
	switch m {
	case Euclidean:
		return math.Sqrt(float64(dr*dr + dc*dc))
	case Manhattan:
		return float64(ar + ac)
	default:
		return float64(max(ar, ac))
	}
}

// Neighborhood computes in-bounds coordinate sets around a cell for a grid of
// fixed dimensions.
type Neighborhood struct {
	rows, cols int
}

// NewNeighborhood returns a calculator for a rows×cols grid.
func NewNeighborhood(rows, cols int) Neighborhood {
	return Neighborhood{rows: rows, cols: cols}
}

// ByDistance returns every in-bounds coordinate within distance of (row, col)
// under metric m. The centre cell is always included. Coordinates are
// enumerated by row offset, then column offset.
func (n Neighborhood) ByDistance(row, col int, m Metric, distance int) []Coord {
	var out []Coord
	for dr := -distance; dr <= distance; dr++ {
		for dc := -distance; dc <= distance; dc++ {
			r, c := row+dr, col+dc
			if r < 0 || r >= n.rows || c < 0 || c >= n.cols {
				continue
			}
			if m.distance(dr, dc) <= float64(distance) {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

// Neighbors returns the Moore neighbourhood of (row, col), centre included.
func (n Neighborhood) Neighbors(row, col int) []Coord {
	return n.ByDistance(row, col, Chebyshev, 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
