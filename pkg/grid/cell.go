package grid

// Cell holds a single integer state. Cells compare by value.
type Cell struct {
	value int
}

// NewCell returns a cell holding v.
func NewCell(v int) Cell { return Cell{value: v} }

// Value returns the cell state.
func (c *Cell) Value() int { return c.value }

// SetValue replaces the cell state.
func (c *Cell) SetValue(v int) { c.value = v }

// Equal reports whether both cells hold the same value.
func (c Cell) Equal(o Cell) bool { return c.value == o.value }

// Coord addresses a cell by row and column.
type Coord struct {
	Row int
	Col int
}
