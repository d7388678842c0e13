package grid

// Region lists the coordinates of one connected component in discovery order.
// Coordinates are not tied to a particular grid and may fall outside one.
type Region struct {
	Coords []Coord
}

// Add appends (row, col) to the region.
func (r *Region) Add(row, col int) {
	r.Coords = append(r.Coords, Coord{Row: row, Col: col})
}

// Len returns the number of coordinates.
func (r Region) Len() int { return len(r.Coords) }

// Regions partitions the nonzero cells into 8-connected components. Regions
// are ordered by their first cell in row-major scan order; within a region the
// seed comes first, followed by cells in flood-fill discovery order.
func (g *Grid) Regions() []Region {
	var regions []Region
	visited := make([][]bool, g.rows)
	for r := range visited {
		visited[r] = make([]bool, g.cols)
	}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r][c].value != 0 && !visited[r][c] {
				regions = append(regions, g.flood(r, c, visited))
			}
		}
	}
	return regions
}

// flood collects the component containing (row, col) with an explicit stack.
func (g *Grid) flood(row, col int, visited [][]bool) Region {
	var region Region
	visited[row][col] = true
	region.Add(row, col)
	stack := []Coord{{Row: row, Col: col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range g.nb.Neighbors(p.Row, p.Col) {
			if g.cells[n.Row][n.Col].value == 0 || visited[n.Row][n.Col] {
				continue
			}
			visited[n.Row][n.Col] = true
			region.Add(n.Row, n.Col)
			stack = append(stack, n)
		}
	}
	return region
}

// RegionLabels returns a rows×cols matrix where each nonzero cell holds the
// 1-based index of its region in Regions order and background cells hold 0.
func (g *Grid) RegionLabels() [][]int {
	labels := make([][]int, g.rows)
	for r := range labels {
		labels[r] = make([]int, g.cols)
	}
	for i, region := range g.Regions() {
		for _, p := range region.Coords {
			labels[p.Row][p.Col] = i + 1
		}
	}
	return labels
}

// FromRegion crops src to the bounding box of the region's in-bounds
// coordinates. Only cells listed in the region are copied; everything else in
// the box stays 0. An empty region, or one with no coordinate inside src,
// yields the empty grid.
func FromRegion(src *Grid, region Region) *Grid {
	minRow, minCol := src.rows, src.cols
	maxRow, maxCol := -1, -1
	for _, p := range region.Coords {
		if !src.InBounds(p.Row, p.Col) {
			continue
		}
		minRow = min(minRow, p.Row)
		minCol = min(minCol, p.Col)
		maxRow = max(maxRow, p.Row)
		maxCol = max(maxCol, p.Col)
	}
	if maxRow < 0 {
		return New(0, 0)
	}

	out := New(maxRow-minRow+1, maxCol-minCol+1)
	for _, p := range region.Coords {
		if !src.InBounds(p.Row, p.Col) {
			continue
		}
		out.cells[p.Row-minRow][p.Col-minCol] = src.cells[p.Row][p.Col]
	}
	return out
}
