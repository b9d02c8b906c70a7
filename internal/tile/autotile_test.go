package tile

import "testing"

func TestPatternIndex(t *testing.T) {
	tests := []struct {
		dirs []Direction
		want int
	}{
		{[]Direction{Up}, 0},
		{[]Direction{Right}, 1},
		{[]Direction{Down}, 2},
		{[]Direction{Left}, 3},
		{[]Direction{Up, Left}, 4},
		{[]Direction{Up, Right}, 5},
		{[]Direction{Right, Down}, 6},
		{[]Direction{Down, Left}, 7},
		{[]Direction{Up, Right, Down}, 8},
		{[]Direction{Right, Down, Left}, 9},
		{[]Direction{Up, Down, Left}, 10},
		{[]Direction{Up, Right, Left}, 11},
		{[]Direction{Up, Right, Down, Left}, 12},
		{[]Direction{Up, Down}, 13},
		{[]Direction{Right, Left}, 14},
		{nil, 0},
	}

	for _, tt := range tests {
		if got := PatternIndex(NewDirSet(tt.dirs...)); got != tt.want {
			t.Errorf("PatternIndex(%v) = %d, want %d", tt.dirs, got, tt.want)
		}
	}
}

func TestPatternIndexOrderIndependent(t *testing.T) {
	a := NewDirSet(Left, Down, Up)
	b := NewDirSet(Up, Down, Left)
	if PatternIndex(a) != PatternIndex(b) {
		t.Errorf("PatternIndex depends on insertion order: %d != %d", PatternIndex(a), PatternIndex(b))
	}
}

func TestBiomeRowIndexTable(t *testing.T) {
	want := map[Biome]int{
		BiomeWater:              0,
		BiomeDesert:             1,
		BiomeGrass:              2,
		BiomeRock:               3,
		BiomeSnow:               4,
		BiomeLightWood:          5,
		BiomeDarkWood:           6,
		BiomeNothing:            7,
		BiomeDarkRock:           8,
		BiomeIce:                9,
		BiomeDarkGrass:          10,
		BiomeRockPlates:         11,
		BiomeGrassFlowersRed:    12,
		BiomeGrassFlowersYellow: 13,
		BiomeGrassFlowersBlue:   14,
		BiomeGrassFlowersPurple: 15,
		BiomeLava:               16,
		BiomeFarmland:           17,
	}
	if len(want) != len(AllBiomes()) {
		t.Fatalf("table covers %d biomes, enum has %d", len(want), len(AllBiomes()))
	}
	for b, row := range want {
		if got := b.RowIndex(); got != row {
			t.Errorf("%s.RowIndex() = %d, want %d", b, got, row)
		}
	}
}

func surround(b Biome) Neighbors[Biome] {
	return Neighbors[Biome]{b, b, b, b}
}

func TestResolveBiomeUniformIsUnblended(t *testing.T) {
	for _, b := range AllBiomes() {
		col, row := ResolveBiome(b, surround(b))
		if col != 0 {
			t.Errorf("%s surrounded by itself: col = %d, want 0", b, col)
		}
		if row != b.RowIndex() {
			t.Errorf("%s surrounded by itself: row = %d, want %d", b, row, b.RowIndex())
		}
	}
}

func TestResolveBiomeFlowersCountAsGrass(t *testing.T) {
	n := Neighbors[Biome]{BiomeGrassFlowersRed, BiomeGrass, BiomeGrassFlowersBlue, BiomeGrassFlowersPurple}
	col, row := ResolveBiome(BiomeGrass, n)
	if col != 0 {
		t.Errorf("grass among flowers: col = %d, want 0", col)
	}
	if row != 2 {
		t.Errorf("grass row = %d, want 2", row)
	}

	_, row = ResolveBiome(BiomeGrassFlowersYellow, surround(BiomeGrass))
	if row != 13 {
		t.Errorf("yellow flowers keep their own row: got %d, want 13", row)
	}
}

func TestResolveBiomeBlend(t *testing.T) {
	tests := []struct {
		name string
		self Biome
		n    Neighbors[Biome]
		want int
	}{
		{
			name: "water on top of desert",
			self: BiomeRock,
			n:    Neighbors[Biome]{BiomeWater, BiomeRock, BiomeRock, BiomeRock},
			want: 0*BlendColumns + 0 + 1,
		},
		{
			name: "desert corner up-left",
			self: BiomeRock,
			n:    Neighbors[Biome]{BiomeDesert, BiomeRock, BiomeRock, BiomeDesert},
			want: 1*BlendColumns + 4 + 1,
		},
		{
			name: "two sides beat first side",
			self: BiomeDesert,
			n:    Neighbors[Biome]{BiomeRock, BiomeGrass, BiomeDesert, BiomeGrass},
			want: 2*BlendColumns + 14 + 1,
		},
		{
			name: "single side tie goes to up",
			self: BiomeDesert,
			n:    Neighbors[Biome]{BiomeRock, BiomeSnow, BiomeDesert, BiomeDesert},
			want: 3*BlendColumns + 0 + 1,
		},
		{
			name: "enclosed by lava",
			self: BiomeRock,
			n:    surround(BiomeLava),
			want: 16*BlendColumns + 12 + 1,
		},
		{
			name: "three sides of farmland",
			self: BiomeRock,
			n:    Neighbors[Biome]{BiomeFarmland, BiomeRock, BiomeFarmland, BiomeFarmland},
			want: 17*BlendColumns + 10 + 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, _ := ResolveBiome(tt.self, tt.n)
			if col != tt.want {
				t.Errorf("col = %d, want %d", col, tt.want)
			}
		})
	}
}

func TestResolveBiomeNeverBlendsTowardNothing(t *testing.T) {
	for _, b := range AllBiomes() {
		if b == BiomeNothing {
			continue
		}
		for _, d := range Directions {
			n := surround(b)
			n[d] = BiomeNothing
			if col, _ := ResolveBiome(b, n); col != 0 {
				t.Errorf("%s with nothing %s: col = %d, want 0", b, d, col)
			}
		}
		if col, _ := ResolveBiome(b, surround(BiomeNothing)); col != 0 {
			t.Errorf("%s enclosed by nothing: col = %d, want 0", b, col)
		}
	}
}

func TestResolveBiomeOverrides(t *testing.T) {
	tests := []struct {
		self     Biome
		neighbor Biome
	}{
		{BiomeWater, BiomeDesert},
		{BiomeDesert, BiomeWater},
		{BiomeGrass, BiomeDesert},
		{BiomeGrass, BiomeRock},
		{BiomeGrass, BiomeDarkRock},
		{BiomeGrass, BiomeSnow},
		{BiomeGrass, BiomeDarkGrass},
		{BiomeGrassFlowersRed, BiomeRock},
	}

	for _, tt := range tests {
		n := surround(tt.self)
		n[Up] = tt.neighbor
		if col, _ := ResolveBiome(tt.self, n); col != 0 {
			t.Errorf("%s next to %s: col = %d, want 0", tt.self, tt.neighbor, col)
		}
	}

	// Overrides are directional: rock still blends toward grass.
	n := surround(BiomeRock)
	n[Up] = BiomeGrass
	if col, _ := ResolveBiome(BiomeRock, n); col == 0 {
		t.Error("rock next to grass should blend")
	}
}

func TestDominantNeighborContactSet(t *testing.T) {
	n := Neighbors[Biome]{BiomeWater, BiomeSnow, BiomeWater, BiomeSnow}
	blend, ok := DominantNeighbor(BiomeRock, n)
	if !ok {
		t.Fatal("expected a dominant neighbor")
	}
	if blend.Biome != BiomeWater {
		t.Errorf("dominant = %s, want water", blend.Biome)
	}
	if blend.Contact != NewDirSet(Up, Down) {
		t.Errorf("contact = %b, want up+down", blend.Contact)
	}

	if _, ok := DominantNeighbor(BiomeRock, surround(BiomeRock)); ok {
		t.Error("uniform neighbors should not produce a blend")
	}
}

func TestResolveConstruction(t *testing.T) {
	w := ConstructionStoneWall
	o := ConstructionNothing

	tests := []struct {
		name string
		n    Neighbors[Construction]
		want int
	}{
		{"isolated", Neighbors[Construction]{o, o, o, o}, RowIsolated},
		{"interior", Neighbors[Construction]{w, w, w, w}, RowInterior},
		{"vertical run", Neighbors[Construction]{w, o, w, o}, 5},
		{"horizontal run", Neighbors[Construction]{o, w, o, w}, 6},
		{"different structure counts as different", Neighbors[Construction]{ConstructionWoodFence, o, o, o}, RowIsolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := ResolveConstruction(w, tt.n)
			if col != w.Column() {
				t.Errorf("col = %d, want %d", col, w.Column())
			}
			if row != tt.want {
				t.Errorf("row = %d, want %d", row, tt.want)
			}
		})
	}
}

func TestConstructionRowsDistinct(t *testing.T) {
	seen := make(map[int]int)
	for mask, row := range constructionRows {
		if prev, dup := seen[row]; dup {
			t.Errorf("masks %04b and %04b share row %d", prev, mask, row)
		}
		seen[row] = mask
		if row < 0 || row > 15 {
			t.Errorf("mask %04b maps to out-of-range row %d", mask, row)
		}
	}
}

func TestResolveConstructionNothingIsTransparent(t *testing.T) {
	w := ConstructionWoodFence
	col, row := ResolveConstruction(ConstructionNothing, Neighbors[Construction]{w, w, w, w})
	if col != 0 || row != 0 {
		t.Errorf("nothing resolved to (%d, %d), want (0, 0)", col, row)
	}
}

func TestCharRoundTrip(t *testing.T) {
	for _, b := range AllBiomes() {
		if got := BiomeFromChar(b.Char()); got != b {
			t.Errorf("biome %s: char %q decodes to %s", b, b.Char(), got)
		}
	}
	for _, c := range AllConstructions() {
		if got := ConstructionFromChar(c.Char()); got != c {
			t.Errorf("construction %s: char %q decodes to %s", c, c.Char(), got)
		}
	}
	if BiomeFromChar('?') != BiomeNothing {
		t.Error("unknown biome char should decode to nothing")
	}
	if ConstructionFromChar('?') != ConstructionNothing {
		t.Error("unknown construction char should decode to nothing")
	}
}
