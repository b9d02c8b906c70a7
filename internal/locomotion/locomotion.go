// Package locomotion advances entities through the world one tick at a time:
// continuous sub-tile motion snapped to the integer tile grid.
package locomotion

import (
	"math"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/occupancy"
)

// Outcome describes what a Step did.
type Outcome int

const (
	// Idle means the entity has no direction or speed.
	Idle Outcome = iota
	// OutOfBounds means the move would leave the world.
	OutOfBounds
	// Blocked means the adjacent destination cell is blocked.
	Blocked
	// Moved means the offset advanced; Crossed tells whether a tile boundary
	// was passed.
	Moved
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case OutOfBounds:
		return "out_of_bounds"
	case Blocked:
		return "blocked"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Result reports the effect of one Step.
type Result struct {
	Outcome  Outcome
	DX, DY   int // Whole tiles crossed this step
	TargetX  int // Destination cell that was checked
	TargetY  int
	Occupant entity.ID // Occupant of the destination cell when blocked
}

// Crossed reports whether the integer frame changed.
func (r Result) Crossed() bool {
	return r.DX != 0 || r.DY != 0
}

// Target returns the single cell checked for a move of e in its current
// direction: the cell just past the leading edge of its footprint.
func Target(e *entity.Entity) (x, y int) {
	fp := e.Footprint()
	sx, sy := sign(e.Direction.X), sign(e.Direction.Y)

	switch {
	case sx > 0:
		x = fp.X + fp.W
	case sx < 0:
		x = fp.X - 1
	default:
		x = fp.X
	}
	switch {
	case sy > 0:
		y = fp.Y + fp.H
	case sy < 0:
		y = fp.Y - 1
	default:
		y = fp.Y + fp.H - 1
	}
	return x, y
}

// Step advances e by dt seconds. tileSize is the number of offset units per
// tile.
//
// Only the cell immediately ahead is checked, once per call. An entity fast
// enough to cross several tiles in one step can pass through an obstacle
// beyond that cell.
func Step(e *entity.Entity, dt float64, grid *occupancy.Grid, tileSize float64) Result {
	if !e.Moving() || dt <= 0 || tileSize <= 0 {
		return Result{Outcome: Idle}
	}

	sx, sy := sign(e.Direction.X), sign(e.Direction.Y)
	next := e.Frame.Translate(sx, sy)
	if next.X < 0 || next.Y < 0 || next.X+next.W > grid.Cols || next.Y+next.H > grid.Rows {
		return Result{Outcome: OutOfBounds}
	}

	tx, ty := Target(e)
	res := Result{TargetX: tx, TargetY: ty}
	if grid.BlockedFor(tx, ty, e) {
		res.Outcome = Blocked
		res.Occupant = grid.Occupant(tx, ty)
		return res
	}

	e.Offset = e.Offset.Add(e.Direction.Scale(e.Speed * dt * tileSize))

	res.DX = int(math.Trunc(e.Offset.X / tileSize))
	res.DY = int(math.Trunc(e.Offset.Y / tileSize))
	if res.Crossed() {
		e.Frame.X += res.DX
		e.Frame.Y += res.DY
		e.Offset.X -= float64(res.DX) * tileSize
		e.Offset.Y -= float64(res.DY) * tileSize
	}
	res.Outcome = Moved
	return res
}

// Push shifts e one whole tile by (dx, dy) if the destination is inside the
// grid and not blocked for e. The sub-tile offset is cleared.
func Push(e *entity.Entity, dx, dy int, grid *occupancy.Grid) bool {
	next := e.Frame.Translate(dx, dy)
	if next.X < 0 || next.Y < 0 || next.X+next.W > grid.Cols || next.Y+next.H > grid.Rows {
		return false
	}
	fp := e.Footprint().Translate(dx, dy)
	for y := fp.Y; y < fp.Y+fp.H; y++ {
		for x := fp.X; x < fp.X+fp.W; x++ {
			if grid.BlockedFor(x, y, e) {
				return false
			}
		}
	}
	e.Frame = next
	e.Offset = entity.Vec{}
	return true
}

// PixelPosition returns the top-left of e in offset units.
func PixelPosition(e *entity.Entity, tileSize float64) entity.Vec {
	return entity.Vec{
		X: float64(e.Frame.X)*tileSize + e.Offset.X,
		Y: float64(e.Frame.Y)*tileSize + e.Offset.Y,
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
