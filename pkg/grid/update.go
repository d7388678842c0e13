package grid

import "fmt"

const (
	dead  = 0
	alive = 1
)

// Updater applies the transition rule to a snapshot of cells.
//
// The live count includes the cell itself: a live cell survives with 3 or 4
// counted cells (2 or 3 true neighbours) and a dead cell is born with exactly 3.
type Updater struct {
	nb Neighborhood
}

// NewUpdater returns an Updater using nb for neighbour lookup.
func NewUpdater(nb Neighborhood) Updater {
	return Updater{nb: nb}
}

// Update computes the next generation. The input is not modified. Cells must
// hold 0 or 1; any other value panics.
func (u Updater) Update(cells [][]Cell) [][]Cell {
	next := cloneCells(cells)
	for r := range cells {
		for c := range cells[r] {
			count := 0
			for _, p := range u.nb.Neighbors(r, c) {
				if cells[p.Row][p.Col].value == alive {
					count++
				}
			}
			switch cells[r][c].value {
			case alive:
				if count < 3 || count > 4 {
					next[r][c].value = dead
				}
			case dead:
				if count == 3 {
					next[r][c].value = alive
				}
			default:
				panic(fmt.Sprintf("grid: cell (%d,%d) holds %d, update requires 0 or 1", r, c, cells[r][c].value))
			}
		}
	}
	return next
}

func cloneCells(cells [][]Cell) [][]Cell {
	out := make([][]Cell, len(cells))
	for r := range cells {
		out[r] = append([]Cell(nil), cells[r]...)
	}
	return out
}

func equalCells(a, b [][]Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if !a[r][c].Equal(b[r][c]) {
				return false
			}
		}
	}
	return true
}
