package world

import "github.com/samdwyer/tileworld/internal/tile"

// Default atlas identifiers.
const (
	DefaultBiomeAtlas        = "biomes"
	DefaultConstructionAtlas = "constructions"
)

// Map is the two tile layers of a world: terrain and structures. It caches
// the static obstacle grid derived from both layers and rebuilds it after
// edits on the next request.
type Map struct {
	Biome        *Grid[tile.Biome]
	Construction *Grid[tile.Construction]

	static    [][]bool
	obstacles []Rect
	dirty     bool
}

// NewMap creates a rows x cols map filled with the given biome and no
// structures.
func NewMap(rows, cols int, fill tile.Biome) *Map {
	return NewMapFromGrids(
		NewGrid(rows, cols, fill, DefaultBiomeAtlas),
		NewGrid(rows, cols, tile.ConstructionNothing, DefaultConstructionAtlas),
	)
}

// NewMapFromGrids wraps existing layers. Both layers must share dimensions.
func NewMapFromGrids(biome *Grid[tile.Biome], construction *Grid[tile.Construction]) *Map {
	return &Map{
		Biome:        biome,
		Construction: construction,
		dirty:        true,
	}
}

// Rows returns the map height in tiles.
func (m *Map) Rows() int { return m.Biome.Rows }

// Cols returns the map width in tiles.
func (m *Map) Cols() int { return m.Biome.Cols }

// Bounds returns the map as a rectangle anchored at the origin.
func (m *Map) Bounds() Rect {
	return Rect{W: m.Cols(), H: m.Rows()}
}

// EditBiome changes the terrain at (row, col).
func (m *Map) EditBiome(row, col int, b tile.Biome) {
	if !m.Biome.InBounds(row, col) {
		return
	}
	m.Biome.Edit(row, col, b)
	m.dirty = true
}

// EditConstruction changes the structure at (row, col).
func (m *Map) EditConstruction(row, col int, c tile.Construction) {
	if !m.Construction.InBounds(row, col) {
		return
	}
	m.Construction.Edit(row, col, c)
	m.dirty = true
}

// IsObstacle reports whether the tiles at (row, col) block movement. Cells
// outside the map are obstacles.
func (m *Map) IsObstacle(row, col int) bool {
	if !m.Biome.InBounds(row, col) {
		return true
	}
	c := m.Construction.Type(row, col)
	if c.ClearsObstacle() {
		return false
	}
	return m.Biome.Type(row, col).IsObstacle() || c.IsSomething()
}

// StaticObstacles returns the obstacle grid indexed [row][col]. The slice is
// owned by the map and is replaced after the next edit; callers must not
// modify it.
func (m *Map) StaticObstacles() [][]bool {
	m.refresh()
	return m.static
}

// Obstacles returns the static obstacles merged into rectangles.
func (m *Map) Obstacles() []Rect {
	m.refresh()
	return m.obstacles
}

func (m *Map) refresh() {
	if !m.dirty {
		return
	}
	static := make([][]bool, m.Rows())
	for r := range static {
		static[r] = make([]bool, m.Cols())
		for c := range static[r] {
			static[r][c] = m.IsObstacle(r, c)
		}
	}
	m.static = static
	m.obstacles = m.Biome.GroupRects(func(row, col int) bool {
		return static[row][col]
	})
	m.dirty = false
}
