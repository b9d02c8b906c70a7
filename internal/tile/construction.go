package tile

// Construction is a structure-layer tile kind drawn over the biome layer.
// The zero value is ConstructionNothing.
type Construction uint8

const (
	ConstructionNothing Construction = iota
	ConstructionWoodFence
	ConstructionStoneWall
	ConstructionHedge
	ConstructionCounter
	ConstructionBridge
	constructionCount
)

// AllConstructions lists every construction kind in declaration order.
func AllConstructions() []Construction {
	out := make([]Construction, 0, constructionCount)
	for c := Construction(0); c < constructionCount; c++ {
		out = append(out, c)
	}
	return out
}

// Column returns the construction's fixed column in the construction atlas.
// ConstructionNothing has no artwork and reports 0.
func (c Construction) Column() int {
	switch c {
	case ConstructionWoodFence:
		return 0
	case ConstructionStoneWall:
		return 1
	case ConstructionHedge:
		return 2
	case ConstructionCounter:
		return 3
	case ConstructionBridge:
		return 4
	default:
		return 0
	}
}

// String returns the construction name.
func (c Construction) String() string {
	switch c {
	case ConstructionNothing:
		return "nothing"
	case ConstructionWoodFence:
		return "wood_fence"
	case ConstructionStoneWall:
		return "stone_wall"
	case ConstructionHedge:
		return "hedge"
	case ConstructionCounter:
		return "counter"
	case ConstructionBridge:
		return "bridge"
	default:
		return "unknown"
	}
}

// Char returns the construction's serialization character.
func (c Construction) Char() byte {
	switch c {
	case ConstructionWoodFence:
		return 'f'
	case ConstructionStoneWall:
		return '#'
	case ConstructionHedge:
		return 'h'
	case ConstructionCounter:
		return 'c'
	case ConstructionBridge:
		return '='
	default:
		return '.'
	}
}

var constructionByChar = func() map[byte]Construction {
	m := make(map[byte]Construction, constructionCount)
	for _, c := range AllConstructions() {
		m[c.Char()] = c
	}
	return m
}()

// ConstructionFromChar decodes a serialization character. Unknown characters
// decode to ConstructionNothing.
func ConstructionFromChar(ch byte) Construction {
	return constructionByChar[ch]
}

// IsSomething reports whether a structure is present.
func (c Construction) IsSomething() bool {
	return c != ConstructionNothing
}

// ClearsObstacle reports whether the structure makes its cell walkable even
// when the biome underneath is an obstacle.
func (c Construction) ClearsObstacle() bool {
	return c == ConstructionBridge
}

// Autotile resolves the construction atlas cell for a tile with neighbors n.
func (c Construction) Autotile(n Neighbors[Construction]) (col, row int) {
	return ResolveConstruction(c, n)
}
