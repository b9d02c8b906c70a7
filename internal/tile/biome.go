// Package tile defines the biome and construction tile kinds and the
// autotile rules that choose a sprite atlas cell from a tile's neighbors.
package tile

// Biome is a terrain-layer tile kind. The zero value is BiomeNothing.
type Biome uint8

const (
	BiomeNothing Biome = iota
	BiomeWater
	BiomeDesert
	BiomeGrass
	BiomeRock
	BiomeSnow
	BiomeLightWood
	BiomeDarkWood
	BiomeDarkRock
	BiomeIce
	BiomeDarkGrass
	BiomeRockPlates
	BiomeGrassFlowersRed
	BiomeGrassFlowersYellow
	BiomeGrassFlowersBlue
	BiomeGrassFlowersPurple
	BiomeLava
	BiomeFarmland
	biomeCount
)

// AllBiomes lists every biome kind in declaration order.
func AllBiomes() []Biome {
	out := make([]Biome, 0, biomeCount)
	for b := Biome(0); b < biomeCount; b++ {
		out = append(out, b)
	}
	return out
}

// RowIndex returns the biome's fixed row in the biome atlas. These values are
// shared with the atlas artwork and must not be reordered.
func (b Biome) RowIndex() int {
	switch b {
	case BiomeWater:
		return 0
	case BiomeDesert:
		return 1
	case BiomeGrass:
		return 2
	case BiomeRock:
		return 3
	case BiomeSnow:
		return 4
	case BiomeLightWood:
		return 5
	case BiomeDarkWood:
		return 6
	case BiomeNothing:
		return 7
	case BiomeDarkRock:
		return 8
	case BiomeIce:
		return 9
	case BiomeDarkGrass:
		return 10
	case BiomeRockPlates:
		return 11
	case BiomeGrassFlowersRed:
		return 12
	case BiomeGrassFlowersYellow:
		return 13
	case BiomeGrassFlowersBlue:
		return 14
	case BiomeGrassFlowersPurple:
		return 15
	case BiomeLava:
		return 16
	case BiomeFarmland:
		return 17
	default:
		return 7
	}
}

// String returns the biome name.
func (b Biome) String() string {
	switch b {
	case BiomeNothing:
		return "nothing"
	case BiomeWater:
		return "water"
	case BiomeDesert:
		return "desert"
	case BiomeGrass:
		return "grass"
	case BiomeRock:
		return "rock"
	case BiomeSnow:
		return "snow"
	case BiomeLightWood:
		return "light_wood"
	case BiomeDarkWood:
		return "dark_wood"
	case BiomeDarkRock:
		return "dark_rock"
	case BiomeIce:
		return "ice"
	case BiomeDarkGrass:
		return "dark_grass"
	case BiomeRockPlates:
		return "rock_plates"
	case BiomeGrassFlowersRed:
		return "grass_flowers_red"
	case BiomeGrassFlowersYellow:
		return "grass_flowers_yellow"
	case BiomeGrassFlowersBlue:
		return "grass_flowers_blue"
	case BiomeGrassFlowersPurple:
		return "grass_flowers_purple"
	case BiomeLava:
		return "lava"
	case BiomeFarmland:
		return "farmland"
	default:
		return "unknown"
	}
}

// Char returns the biome's serialization character.
func (b Biome) Char() byte {
	switch b {
	case BiomeWater:
		return '~'
	case BiomeDesert:
		return 'd'
	case BiomeGrass:
		return 'g'
	case BiomeRock:
		return 'r'
	case BiomeSnow:
		return 's'
	case BiomeLightWood:
		return 'w'
	case BiomeDarkWood:
		return 'W'
	case BiomeDarkRock:
		return 'R'
	case BiomeIce:
		return 'i'
	case BiomeDarkGrass:
		return 'G'
	case BiomeRockPlates:
		return 'p'
	case BiomeGrassFlowersRed:
		return '1'
	case BiomeGrassFlowersYellow:
		return '2'
	case BiomeGrassFlowersBlue:
		return '3'
	case BiomeGrassFlowersPurple:
		return '4'
	case BiomeLava:
		return 'l'
	case BiomeFarmland:
		return 'f'
	default:
		return '.'
	}
}

var biomeByChar = func() map[byte]Biome {
	m := make(map[byte]Biome, biomeCount)
	for _, b := range AllBiomes() {
		m[b.Char()] = b
	}
	return m
}()

// BiomeFromChar decodes a serialization character. Unknown characters decode
// to BiomeNothing.
func BiomeFromChar(c byte) Biome {
	return biomeByChar[c]
}

// IsGrass reports whether b is plain grass or one of its flower variants.
func (b Biome) IsGrass() bool {
	switch b {
	case BiomeGrass, BiomeGrassFlowersRed, BiomeGrassFlowersYellow,
		BiomeGrassFlowersBlue, BiomeGrassFlowersPurple:
		return true
	default:
		return false
	}
}

// IsObstacle reports whether the biome blocks movement on its own.
func (b Biome) IsObstacle() bool {
	switch b {
	case BiomeWater, BiomeNothing, BiomeLava:
		return true
	default:
		return false
	}
}

// SameBiome reports whether a and b count as the same terrain when deciding
// if a neighbor differs. Grass flower variants are interchangeable with grass.
func SameBiome(a, b Biome) bool {
	if a == b {
		return true
	}
	return a.IsGrass() && b.IsGrass()
}

// Autotile resolves the biome atlas cell for a tile with neighbors n.
func (b Biome) Autotile(n Neighbors[Biome]) (col, row int) {
	return ResolveBiome(b, n)
}
