package world

import (
	"context"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/tile"
)

const (
	// Default world dimensions
	DefaultRows = 64
	DefaultCols = 128

	// Enclosure BSP parameters
	minYardSize = 6  // Minimum enclosure dimension
	maxYardSize = 12 // Maximum enclosure dimension
	minLeafSize = 14 // Minimum BSP leaf size before stopping split

	// Noise sampling
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 0.045

	flowerChance = 12 // One in N grass tiles grows flowers
)

var flowers = []tile.Biome{
	tile.BiomeGrassFlowersRed,
	tile.BiomeGrassFlowersYellow,
	tile.BiomeGrassFlowersBlue,
	tile.BiomeGrassFlowersPurple,
}

// Generator lays out terrain from Perlin noise and places fenced yards and
// walled houses with a BSP split, joined by paths that bridge water.
type Generator struct {
	Rows  int
	Cols  int
	Yards []Rect // Enclosures placed by the last Generate call

	rng       *rand.Rand
	biome     [][]tile.Biome
	structure [][]tile.Construction
}

// NewGenerator creates a generator for a rows x cols world. A nil rng seeds
// from the clock.
func NewGenerator(rows, cols int, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		Rows: rows,
		Cols: cols,
		rng:  rng,
	}
}

// Generate creates a new map. The result is deterministic for a given rng
// seed.
func (g *Generator) Generate(ctx context.Context) *Map {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	g.Yards = g.Yards[:0]
	g.biome = make([][]tile.Biome, g.Rows)
	g.structure = make([][]tile.Construction, g.Rows)
	for r := 0; r < g.Rows; r++ {
		g.biome[r] = make([]tile.Biome, g.Cols)
		g.structure[r] = make([]tile.Construction, g.Cols)
	}

	g.paintTerrain()

	root := &bspNode{
		x:      1,
		y:      1,
		width:  g.Cols - 2,
		height: g.Rows - 2,
	}
	g.splitNode(root)
	g.createYards(root)
	g.connectYards(root)

	m := NewMapFromGrids(
		FromTypes(g.biome, DefaultBiomeAtlas),
		FromTypes(g.structure, DefaultConstructionAtlas),
	)

	span.SetAttributes(
		attribute.Int("world.rows", g.Rows),
		attribute.Int("world.cols", g.Cols),
		attribute.Int("world.yard_count", len(g.Yards)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return m
}

// paintTerrain assigns a biome to every tile from elevation and moisture
// noise fields.
func (g *Generator) paintTerrain() {
	elevation := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, g.rng.Int63())
	moisture := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, g.rng.Int63())

	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			e := elevation.Noise2D(float64(c)*noiseScale, float64(r)*noiseScale)
			m := moisture.Noise2D(float64(c)*noiseScale, float64(r)*noiseScale)
			g.biome[r][c] = g.classify(e, m)
		}
	}
}

func (g *Generator) classify(e, m float64) tile.Biome {
	switch {
	case e < -0.22:
		return tile.BiomeWater
	case e < -0.16:
		if m < 0 {
			return tile.BiomeDesert
		}
		return tile.BiomeGrass
	case e < 0.22:
		switch {
		case m < -0.25:
			return tile.BiomeDesert
		case m > 0.25:
			return tile.BiomeDarkGrass
		case g.rng.Intn(flowerChance) == 0:
			return flowers[g.rng.Intn(len(flowers))]
		default:
			return tile.BiomeGrass
		}
	case e < 0.36:
		if m > 0.2 {
			return tile.BiomeDarkRock
		}
		return tile.BiomeRock
	case e < 0.46:
		if m > 0.15 {
			return tile.BiomeIce
		}
		return tile.BiomeSnow
	default:
		if m < -0.2 {
			return tile.BiomeLava
		}
		return tile.BiomeSnow
	}
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	yard          *Rect
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *Generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	size := node.width
	if splitHorizontally {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + g.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createYards places an enclosure in every leaf that sits on dry land.
func (g *Generator) createYards(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createYards(node.left)
		g.createYards(node.right)
		return
	}
	if node.width < minYardSize+2 || node.height < minYardSize+2 {
		return
	}

	w := minYardSize + g.rng.Intn(min(maxYardSize-minYardSize+1, node.width-minYardSize+1))
	h := minYardSize + g.rng.Intn(min(maxYardSize-minYardSize+1, node.height-minYardSize+1))
	w = min(w, node.width-2)
	h = min(h, node.height-2)
	if w < minYardSize || h < minYardSize {
		return
	}

	yard := Rect{
		X: node.x + 1 + g.rng.Intn(node.width-w-1),
		Y: node.y + 1 + g.rng.Intn(node.height-h-1),
		W: w,
		H: h,
	}
	if !g.dryLand(yard) {
		return
	}

	node.yard = &yard
	g.Yards = append(g.Yards, yard)
	g.buildYard(yard)
}

// dryLand reports whether no tile of r is an obstacle biome.
func (g *Generator) dryLand(r Rect) bool {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if g.biome[y][x].IsObstacle() {
				return false
			}
		}
	}
	return true
}

// buildYard rings the rectangle with a structure, lays the floor and opens a
// gate on a random side.
func (g *Generator) buildYard(r Rect) {
	wall, floor := tile.ConstructionWoodFence, tile.BiomeFarmland
	switch g.rng.Intn(3) {
	case 1:
		wall, floor = tile.ConstructionStoneWall, tile.BiomeLightWood
	case 2:
		wall, floor = tile.ConstructionHedge, tile.BiomeGrass
	}

	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			edge := y == r.Y || y == r.Y+r.H-1 || x == r.X || x == r.X+r.W-1
			if edge {
				g.structure[y][x] = wall
			} else {
				g.biome[y][x] = floor
			}
		}
	}
	if wall == tile.ConstructionStoneWall {
		cx, cy := r.Center()
		g.structure[cy][cx] = tile.ConstructionCounter
	}

	cx, cy := r.Center()
	switch g.rng.Intn(4) {
	case 0:
		g.structure[r.Y][cx] = tile.ConstructionNothing
	case 1:
		g.structure[cy][r.X+r.W-1] = tile.ConstructionNothing
	case 2:
		g.structure[r.Y+r.H-1][cx] = tile.ConstructionNothing
	default:
		g.structure[cy][r.X] = tile.ConstructionNothing
	}
}

// connectYards joins yards of sibling subtrees with paths.
func (g *Generator) connectYards(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectYards(node.left)
	g.connectYards(node.right)

	a, b := g.getYard(node.left), g.getYard(node.right)
	if a != nil && b != nil {
		g.carvePath(*a, *b)
	}
}

// getYard returns a yard from a subtree (any yard will do).
func (g *Generator) getYard(node *bspNode) *Rect {
	if node == nil {
		return nil
	}
	if node.yard != nil {
		return node.yard
	}
	if r := g.getYard(node.left); r != nil {
		return r
	}
	return g.getYard(node.right)
}

// carvePath runs an L-shaped path between two yard centers.
func (g *Generator) carvePath(a, b Rect) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()

	if g.rng.Intn(2) == 0 {
		g.carveHorizontal(x1, x2, y1)
		g.carveVertical(y1, y2, x2)
	} else {
		g.carveVertical(y1, y2, x1)
		g.carveHorizontal(x1, x2, y2)
	}
}

func (g *Generator) carveHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		g.carveTile(x, y)
	}
}

func (g *Generator) carveVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		g.carveTile(x, y)
	}
}

// carveTile makes (x, y) walkable: water and lava get a bridge, walls along
// the path are opened. Counters stay in place.
func (g *Generator) carveTile(x, y int) {
	if x <= 0 || x >= g.Cols-1 || y <= 0 || y >= g.Rows-1 {
		return
	}
	if g.structure[y][x] == tile.ConstructionCounter {
		return
	}
	if g.biome[y][x].IsObstacle() {
		g.structure[y][x] = tile.ConstructionBridge
		return
	}
	g.structure[y][x] = tile.ConstructionNothing
}

// SpawnPoint returns a walkable tile, preferring the first yard's interior.
// Row 0 is skipped when the map has more rows, so the head of a two-tile
// tall entity standing on the tile stays inside the map.
func SpawnPoint(m *Map, yards []Rect, rng *rand.Rand) (int, int) {
	top := min(1, m.Rows()-1)
	for _, yard := range yards {
		for i := 0; i < 100; i++ {
			x := yard.X + 1 + rng.Intn(max(yard.W-2, 1))
			y := yard.Y + 1 + rng.Intn(max(yard.H-2, 1))
			if y >= top && !m.IsObstacle(y, x) {
				return x, y
			}
		}
	}

	for r := max(top, 0); r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if !m.IsObstacle(r, c) {
				return c, r
			}
		}
	}
	return m.Cols() / 2, m.Rows() / 2
}
