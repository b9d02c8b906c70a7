// Package world provides the tile grids, world files and world generation.
package world

import "github.com/samdwyer/tileworld/internal/tile"

const (
	variantCount  = 4
	variantPeriod = 0.5 // Seconds per variant frame
)

// Cell is one tile of a grid. Neighbor fields are cached copies of the
// adjacent cells' types; sides outside the grid hold the zero value.
type Cell[T any] struct {
	Type                  T
	Up, Right, Down, Left T
	AtlasCol, AtlasRow    int

	// Width and Height are the size of a grouped obstacle anchored at this
	// cell. Ungrouped cells are 1x1; cells covered by another anchor are 0x0.
	Width, Height int
}

// Neighbors returns the cached neighbor types in direction order.
func (c Cell[T]) Neighbors() tile.Neighbors[T] {
	return tile.Neighbors[T]{c.Up, c.Right, c.Down, c.Left}
}

func (c *Cell[T]) setNeighbor(d tile.Direction, t T) {
	switch d {
	case tile.Up:
		c.Up = t
	case tile.Right:
		c.Right = t
	case tile.Down:
		c.Down = t
	case tile.Left:
		c.Left = t
	}
}

// Grid is a dense rows x cols matrix of autotiled cells of one tile kind.
// Edits must come from a single goroutine.
type Grid[T tile.Kind[T]] struct {
	Rows  int
	Cols  int
	Atlas string // Atlas identifier handed to the renderer

	cells        [][]Cell[T]
	variant      int
	variantClock float64
}

// NewGrid creates a grid filled with fill and resolves every cell.
func NewGrid[T tile.Kind[T]](rows, cols int, fill T, atlas string) *Grid[T] {
	types := make([][]T, max(rows, 0))
	for r := range types {
		types[r] = make([]T, max(cols, 0))
		for c := range types[r] {
			types[r][c] = fill
		}
	}
	return FromTypes(types, atlas)
}

// FromTypes builds a grid from a type matrix. Short rows are padded with the
// zero value. Neighbors are wired for every cell before any atlas coordinates
// are resolved.
func FromTypes[T tile.Kind[T]](types [][]T, atlas string) *Grid[T] {
	cols := 0
	for _, row := range types {
		cols = max(cols, len(row))
	}

	g := &Grid[T]{
		Rows:  len(types),
		Cols:  cols,
		Atlas: atlas,
		cells: make([][]Cell[T], len(types)),
	}
	for r, row := range types {
		g.cells[r] = make([]Cell[T], cols)
		for c := range g.cells[r] {
			cell := &g.cells[r][c]
			if c < len(row) {
				cell.Type = row[c]
			}
			cell.Width, cell.Height = 1, 1
		}
	}

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := &g.cells[r][c]
			for _, d := range tile.Directions {
				cell.setNeighbor(d, g.Type(r+dr(d), c+dc(d)))
			}
		}
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			g.resolve(r, c)
		}
	}
	return g
}

func dc(d tile.Direction) int {
	c, _ := d.Delta()
	return c
}

func dr(d tile.Direction) int {
	_, r := d.Delta()
	return r
}

// InBounds reports whether (row, col) is inside the grid.
func (g *Grid[T]) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Type returns the tile type at (row, col), or the zero value outside the grid.
func (g *Grid[T]) Type(row, col int) T {
	if !g.InBounds(row, col) {
		var zero T
		return zero
	}
	return g.cells[row][col].Type
}

// At returns a copy of the cell at (row, col).
func (g *Grid[T]) At(row, col int) (Cell[T], bool) {
	if !g.InBounds(row, col) {
		return Cell[T]{}, false
	}
	return g.cells[row][col], true
}

// Edit sets the tile at (row, col) and re-resolves it and its four
// neighbors. Out-of-bounds edits are ignored.
func (g *Grid[T]) Edit(row, col int, t T) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col].Type = t
	g.resolve(row, col)

	for _, d := range tile.Directions {
		nr, nc := row+dr(d), col+dc(d)
		if !g.InBounds(nr, nc) {
			continue
		}
		g.cells[nr][nc].setNeighbor(d.Opposite(), t)
		g.resolve(nr, nc)
	}
}

func (g *Grid[T]) resolve(row, col int) {
	cell := &g.cells[row][col]
	cell.AtlasCol, cell.AtlasRow = cell.Type.Autotile(cell.Neighbors())
}

// Types returns a copy of the type matrix.
func (g *Grid[T]) Types() [][]T {
	out := make([][]T, g.Rows)
	for r := range out {
		out[r] = make([]T, g.Cols)
		for c := range out[r] {
			out[r][c] = g.cells[r][c].Type
		}
	}
	return out
}

// Advance moves the cosmetic variant clock forward by dt seconds.
func (g *Grid[T]) Advance(dt float64) {
	g.variantClock += dt
	for g.variantClock >= variantPeriod {
		g.variantClock -= variantPeriod
		g.variant = (g.variant + 1) % variantCount
	}
}

// Variant returns the current animation variant in [0, 4).
func (g *Grid[T]) Variant() int {
	return g.variant
}

// GroupRects merges cells for which match returns true into greedy
// rectangles, scanning row by row and growing each run downward. Anchor cells
// record the group size; covered cells become 0x0. Previous groups are reset.
func (g *Grid[T]) GroupRects(match func(row, col int) bool) []Rect {
	taken := make([][]bool, g.Rows)
	for r := range taken {
		taken[r] = make([]bool, g.Cols)
		for c := range g.cells[r] {
			g.cells[r][c].Width, g.cells[r][c].Height = 1, 1
		}
	}
	free := func(r, c int) bool {
		return g.InBounds(r, c) && !taken[r][c] && match(r, c)
	}

	var groups []Rect
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !free(r, c) {
				continue
			}
			w := 1
			for free(r, c+w) {
				w++
			}
			h := 1
			for rowFree := true; rowFree; {
				for x := c; x < c+w; x++ {
					if !free(r+h, x) {
						rowFree = false
						break
					}
				}
				if rowFree {
					h++
				}
			}

			for y := r; y < r+h; y++ {
				for x := c; x < c+w; x++ {
					taken[y][x] = true
					g.cells[y][x].Width, g.cells[y][x].Height = 0, 0
				}
			}
			g.cells[r][c].Width, g.cells[r][c].Height = w, h
			groups = append(groups, Rect{X: c, Y: r, W: w, H: h})
		}
	}
	return groups
}
