// Package occupancy builds the per-tick hitmap, weight map and occupant map
// that movement and tile-triggered gameplay read.
package occupancy

import (
	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/world"
)

// Grid holds three same-shaped maps over the world, indexed by tile x, y.
// A Grid belongs to the tick that built it and is never patched afterwards.
type Grid struct {
	Cols, Rows int

	static   []bool
	blocked  []bool
	rigid    []uint16
	weight   []int32
	occupant []entity.ID
	exempt   entity.ID
}

// Build creates the grids for a cols x rows world from the static obstacle
// grid (indexed [row][col]) and the visible entities. exempt names an entity
// that never blocks, normally the player. Footprint cells outside the world
// are skipped. When footprints overlap the occupant map keeps whichever
// entity came last in visible.
func Build(cols, rows int, static [][]bool, visible []*entity.Entity, exempt entity.ID) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	n := cols * rows
	g := &Grid{
		Cols:     cols,
		Rows:     rows,
		static:   make([]bool, n),
		blocked:  make([]bool, n),
		rigid:    make([]uint16, n),
		weight:   make([]int32, n),
		occupant: make([]entity.ID, n),
		exempt:   exempt,
	}

	for y := 0; y < rows && y < len(static); y++ {
		for x := 0; x < cols && x < len(static[y]); x++ {
			g.static[y*cols+x] = static[y][x]
		}
	}
	copy(g.blocked, g.static)

	for _, e := range visible {
		g.stamp(e)
	}
	return g
}

func (g *Grid) stamp(e *entity.Entity) {
	fp := e.Footprint()
	blocks := e.Rigid && !g.exempted(e)

	for y := max(fp.Y, 0); y < min(fp.Y+fp.H, g.Rows); y++ {
		for x := max(fp.X, 0); x < min(fp.X+fp.W, g.Cols); x++ {
			i := y*g.Cols + x
			if blocks {
				g.blocked[i] = true
				g.rigid[i]++
			}
			if e.Weighted {
				g.weight[i]++
			}
			g.occupant[i] = e.ID
		}
	}
}

// exempted reports whether e is the entity that never blocks. An exempt ID of
// 0 exempts nobody.
func (g *Grid) exempted(e *entity.Entity) bool {
	return g.exempt != 0 && e.ID == g.exempt
}

// Bounds returns the world rectangle the grid covers.
func (g *Grid) Bounds() world.Rect {
	return world.Rect{W: g.Cols, H: g.Rows}
}

// InBounds reports whether (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// Blocked reports whether (x, y) blocks movement. Cells outside the world
// are blocked.
func (g *Grid) Blocked(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.blocked[y*g.Cols+x]
}

// Static reports whether (x, y) holds a static obstacle tile.
func (g *Grid) Static(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.static[y*g.Cols+x]
}

// BlockedFor reports whether (x, y) blocks e, ignoring e's own footprint.
func (g *Grid) BlockedFor(x, y int, e *entity.Entity) bool {
	if !g.InBounds(x, y) {
		return true
	}
	i := y*g.Cols + x
	if g.static[i] {
		return true
	}
	others := int(g.rigid[i])
	if e.Rigid && !g.exempted(e) && e.Footprint().Contains(x, y) {
		others--
	}
	return others > 0
}

// Weight returns the number of weighted occupants on (x, y).
func (g *Grid) Weight(x, y int) int32 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.weight[y*g.Cols+x]
}

// Occupant returns the last entity written to (x, y), or 0.
func (g *Grid) Occupant(x, y int) entity.ID {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.occupant[y*g.Cols+x]
}

// BlockedCount returns the number of blocked cells.
func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}
