package gamedata

import "github.com/gdamore/tcell/v2"

// SpeciesDef defines an entity kind loaded from JSON.
type SpeciesDef struct {
	ID          string  `json:"id"`          // Unique identifier matching entity.Kind (e.g., "villager")
	Name        string  `json:"name"`        // Display name (e.g., "Villager")
	Glyph       string  `json:"glyph"`       // Single character for the terminal viewer (e.g., "v")
	Color       string  `json:"color"`       // Hex color code (e.g., "#E0C090")
	Rigid       bool    `json:"rigid"`       // Blocks other movers
	Weighted    bool    `json:"weighted"`    // Presses pressure plates
	Pushable    bool    `json:"pushable"`    // Can be shoved one tile by the player
	Width       int     `json:"width"`       // Footprint width in tiles
	Height      int     `json:"height"`      // Footprint height in tiles; the top row is visual only when > 1
	Speed       float64 `json:"speed"`       // Tiles per second
	SpawnWeight int     `json:"spawnWeight"` // Relative spawn frequency (0 = never spawned randomly)
}

// GlyphRune returns the glyph as a rune for rendering.
func (s *SpeciesDef) GlyphRune() rune {
	if len(s.Glyph) == 0 {
		return '?'
	}
	return rune(s.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (s *SpeciesDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(s.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// Size returns the footprint size, never smaller than 1x1.
func (s *SpeciesDef) Size() (w, h int) {
	return max(s.Width, 1), max(s.Height, 1)
}

// SpeciesFile represents the structure of species.json.
type SpeciesFile struct {
	Species []SpeciesDef `json:"species"`
}

// LoadSpecies loads species definitions from the embedded species.json file.
func LoadSpecies() ([]SpeciesDef, error) {
	file, err := Load[SpeciesFile]("species.json")
	if err != nil {
		return nil, err
	}
	return file.Species, nil
}
