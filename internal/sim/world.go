// Package sim ties the tile map, the entities and the per-tick occupancy
// grid together into one explicitly owned world context.
package sim

import (
	"context"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/locomotion"
	"github.com/samdwyer/tileworld/internal/occupancy"
	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/tile"
	"github.com/samdwyer/tileworld/internal/world"
)

// DefaultTileSize is the number of offset units per tile.
const DefaultTileSize = 16.0

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// World owns everything that outlives a tick. It is driven from a single
// goroutine.
type World struct {
	Map      *world.Map
	Entities *entity.Set
	PlayerID entity.ID
	TileSize float64

	plates []Point
	grid   *occupancy.Grid
}

// New creates a world context around a map.
func New(m *world.Map, tileSize float64) *World {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &World{
		Map:      m,
		Entities: entity.NewSet(),
		TileSize: tileSize,
	}
}

// Player returns the player entity, or nil.
func (w *World) Player() *entity.Entity {
	return w.Entities.Get(w.PlayerID)
}

// SpawnPlayer adds the player standing on (x, y).
func (w *World) SpawnPlayer(x, y int, def *gamedata.SpeciesDef) *entity.Entity {
	if old := w.Player(); old != nil {
		w.Entities.Remove(old.ID)
	}
	p := entity.NewPlayer(x, y, def)
	w.PlayerID = w.Entities.Add(p)
	return p
}

// Populate spawns up to n randomly chosen species on walkable tiles and
// returns how many were placed.
func (w *World) Populate(registry *gamedata.SpeciesRegistry, rng *rand.Rand, n int) int {
	placed := 0
	for attempt := 0; placed < n && attempt < n*20; attempt++ {
		def := registry.SpawnRandom(rng)
		if def == nil {
			return placed
		}
		x, y := rng.Intn(max(w.Map.Cols(), 1)), rng.Intn(max(w.Map.Rows(), 1))

		e := entity.NewFromSpecies(def, x, y)
		e.Frame.Y = y - (e.Frame.H - 1)
		if e.Frame.Y < 0 || !w.free(e.Footprint()) {
			continue
		}
		w.Entities.Add(e)
		placed++
	}
	return placed
}

// free reports whether every tile of r is walkable and unclaimed.
func (w *World) free(r world.Rect) bool {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if w.Map.IsObstacle(y, x) || w.Entities.FirstAt(x, y) != nil {
				return false
			}
		}
	}
	return true
}

// EditBiome applies a terrain edit request.
func (w *World) EditBiome(row, col int, b tile.Biome) {
	w.Map.EditBiome(row, col, b)
}

// EditConstruction applies a structure edit request.
func (w *World) EditConstruction(row, col int, c tile.Construction) {
	w.Map.EditConstruction(row, col, c)
}

// AddPlate registers a pressure plate on (x, y).
func (w *World) AddPlate(x, y int) {
	w.plates = append(w.plates, Point{X: x, Y: y})
}

// Plates returns the registered pressure plates.
func (w *World) Plates() []Point {
	return w.plates
}

// PlatesPressed returns the plates carrying weight in the last tick's grid.
func (w *World) PlatesPressed() []Point {
	if w.grid == nil {
		return nil
	}
	var out []Point
	for _, p := range w.plates {
		if w.grid.Weight(p.X, p.Y) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Occupancy returns the grid built by the last tick, or nil before the first.
func (w *World) Occupancy() *occupancy.Grid {
	return w.grid
}

// TickReport summarizes one tick.
type TickReport struct {
	Visible int // Entities inside the viewport
	Moved   int // Entities whose offset advanced
	Crossed int // Entities that changed tile
	Blocked int // Entities stopped by a blocked cell
	Pushed  int // Pushables shoved by the player
	Pressed int // Pressure plates carrying weight
}

// Tick advances the world by dt seconds. Only entities intersecting the
// viewport take part: the occupancy grid is rebuilt from them and from the
// static obstacles, then each moving visible entity steps against it.
func (w *World) Tick(ctx context.Context, dt float64, viewport world.Rect) TickReport {
	_, span := telemetry.Tracer("sim").Start(ctx, "sim.tick")
	defer span.End()

	w.Map.Biome.Advance(dt)

	visible := w.Entities.Visible(viewport)
	w.grid = occupancy.Build(w.Map.Cols(), w.Map.Rows(), w.Map.StaticObstacles(), visible, w.PlayerID)

	report := TickReport{Visible: len(visible)}
	for _, e := range visible {
		res := locomotion.Step(e, dt, w.grid, w.TileSize)
		switch res.Outcome {
		case locomotion.Moved:
			report.Moved++
			if res.Crossed() {
				report.Crossed++
			}
		case locomotion.Blocked:
			report.Blocked++
			if e.ID == w.PlayerID && w.push(e, res) {
				report.Pushed++
			}
		}
	}
	report.Pressed = len(w.PlatesPressed())

	span.SetAttributes(
		attribute.Int("sim.visible", report.Visible),
		attribute.Int("sim.moved", report.Moved),
		attribute.Int("sim.crossed", report.Crossed),
		attribute.Int("sim.blocked", report.Blocked),
		attribute.Int("sim.pushed", report.Pushed),
		attribute.Int("sim.blocked_cells", w.grid.BlockedCount()),
	)
	return report
}

// push shoves the pushable the mover ran into one tile along its direction.
func (w *World) push(mover *entity.Entity, res locomotion.Result) bool {
	if res.Occupant == 0 {
		return false
	}
	target := w.Entities.Get(res.Occupant)
	if target == nil || !target.Pushable {
		return false
	}
	dx, dy := sign(mover.Direction.X), sign(mover.Direction.Y)
	return locomotion.Push(target, dx, dy, w.grid)
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
