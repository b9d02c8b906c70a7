package gamedata

import "github.com/gdamore/tcell/v2"

// Swatch is one palette entry for a tile kind.
type Swatch struct {
	ID    string `json:"id"`              // Tile name (e.g., "water")
	Color string `json:"color"`           // Hex color code
	Glyph string `json:"glyph,omitempty"` // Optional override glyph
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Biomes        []Swatch `json:"biomes"`
	Constructions []Swatch `json:"constructions"`
}

// Palette resolves tile names to terminal colors.
type Palette struct {
	biomes        map[string]tcell.Color
	constructions map[string]tcell.Color
	glyphs        map[string]rune
}

// NewPalette builds a palette from its file form. Invalid colors are skipped.
func NewPalette(f PaletteFile) *Palette {
	p := &Palette{
		biomes:        make(map[string]tcell.Color, len(f.Biomes)),
		constructions: make(map[string]tcell.Color, len(f.Constructions)),
		glyphs:        make(map[string]rune),
	}
	for _, s := range f.Biomes {
		if c, err := ParseHexColor(s.Color); err == nil {
			p.biomes[s.ID] = c
		}
	}
	for _, s := range f.Constructions {
		if c, err := ParseHexColor(s.Color); err == nil {
			p.constructions[s.ID] = c
		}
		if s.Glyph != "" {
			p.glyphs[s.ID] = rune(s.Glyph[0])
		}
	}
	return p
}

// LoadPalette loads the embedded palette.json.
func LoadPalette() (*Palette, error) {
	f, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return NewPalette(f), nil
}

// Biome returns the color for a biome name.
func (p *Palette) Biome(id string) tcell.Color {
	if c, ok := p.biomes[id]; ok {
		return c
	}
	return tcell.ColorBlack
}

// Construction returns the color for a construction name.
func (p *Palette) Construction(id string) tcell.Color {
	if c, ok := p.constructions[id]; ok {
		return c
	}
	return tcell.ColorWhite
}

// Glyph returns the display glyph for a construction name, or fallback.
func (p *Palette) Glyph(id string, fallback rune) rune {
	if g, ok := p.glyphs[id]; ok {
		return g
	}
	return fallback
}
