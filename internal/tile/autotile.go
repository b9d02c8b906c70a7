package tile

// BlendColumns is the number of atlas columns reserved per blend target.
const BlendColumns = 15

// Kind is implemented by tile enumerations that can live in a grid. The zero
// value of a Kind is its "Nothing" sentinel, used for off-grid neighbors.
type Kind[T any] interface {
	comparable
	Char() byte
	Autotile(n Neighbors[T]) (col, row int)
}

// Neighbors holds the four adjacent tile kinds indexed by Direction.
type Neighbors[T any] [4]T

// Blend describes the neighbor a biome tile blends toward.
type Blend struct {
	Biome   Biome
	Contact DirSet
}

// DominantNeighbor picks the neighbor a tile should blend toward. Biomes that
// touch at least two sides win over those that touch one; ties go to the
// first in up, right, down, left order. ok is false when every neighbor is
// the same terrain as self.
func DominantNeighbor(self Biome, n Neighbors[Biome]) (blend Blend, ok bool) {
	var contact [4]DirSet
	for _, d := range Directions {
		for _, o := range Directions {
			if n[o] == n[d] {
				contact[d] = contact[d].With(o)
			}
		}
	}

	for _, threshold := range [...]int{2, 1} {
		for _, d := range Directions {
			if contact[d].Len() < threshold {
				continue
			}
			if SameBiome(self, n[d]) {
				continue
			}
			return Blend{Biome: n[d], Contact: contact[d]}, true
		}
	}
	return Blend{}, false
}

// biomeNoBlend lists neighbor biomes a given biome never draws a blend edge
// toward. Grass variants are handled by grassNoBlend.
var biomeNoBlend = map[Biome][]Biome{
	BiomeWater:     {BiomeDesert, BiomeLava},
	BiomeDesert:    {BiomeWater},
	BiomeLava:      {BiomeWater, BiomeIce, BiomeSnow},
	BiomeIce:       {BiomeLava},
	BiomeSnow:      {BiomeLava},
	BiomeLightWood: {BiomeDarkWood},
	BiomeDarkWood:  {BiomeLightWood},
}

var grassNoBlend = []Biome{
	BiomeDesert, BiomeRock, BiomeDarkRock, BiomeSnow, BiomeDarkGrass,
}

// suppressesBlend reports whether self must stay unblended against neighbor.
func suppressesBlend(self, neighbor Biome) bool {
	if neighbor == BiomeNothing {
		return true
	}
	for _, b := range biomeNoBlend[self] {
		if b == neighbor {
			return true
		}
	}
	if self.IsGrass() {
		for _, b := range grassNoBlend {
			if b == neighbor {
				return true
			}
		}
	}
	return false
}

// ResolveBiome returns the biome atlas cell for self surrounded by n.
func ResolveBiome(self Biome, n Neighbors[Biome]) (col, row int) {
	row = self.RowIndex()
	blend, ok := DominantNeighbor(self, n)
	if !ok || suppressesBlend(self, blend.Biome) {
		return 0, row
	}
	return blend.Biome.RowIndex()*BlendColumns + PatternIndex(blend.Contact) + 1, row
}

// Construction atlas rows.
const (
	RowIsolated = 0
	RowInterior = 15
)

// constructionRows is indexed by the mask up<<3 | right<<2 | down<<1 | left,
// where a set bit means the neighbor on that side is the same structure.
var constructionRows = [16]int{
	0b0000: RowIsolated,
	0b1000: 1,
	0b0100: 2,
	0b0010: 3,
	0b0001: 4,
	0b1010: 5,
	0b0101: 6,
	0b0110: 7,
	0b0011: 8,
	0b1100: 9,
	0b1001: 10,
	0b0111: 11,
	0b1011: 12,
	0b1101: 13,
	0b1110: 14,
	0b1111: RowInterior,
}

// ResolveConstruction returns the construction atlas cell for self. Only
// whether each neighbor is exactly the same structure matters.
// ConstructionNothing is transparent and always resolves to (0, 0).
func ResolveConstruction(self Construction, n Neighbors[Construction]) (col, row int) {
	if self == ConstructionNothing {
		return 0, 0
	}
	mask := 0
	for _, d := range Directions {
		mask <<= 1
		if n[d] == self {
			mask |= 1
		}
	}
	return self.Column(), constructionRows[mask]
}
