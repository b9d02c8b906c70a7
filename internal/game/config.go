package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tileworld/internal/sim"
	"github.com/samdwyer/tileworld/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible world generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	// World size in tiles when generating.
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`

	TileSize    float64 `yaml:"tile_size"`    // Offset units per tile
	TickRate    int     `yaml:"tick_rate"`    // Simulation ticks per second
	PlayerSpeed float64 `yaml:"player_speed"` // Tiles per second; 0 uses the species speed
	Population  int     `yaml:"population"`   // Creatures spawned into a fresh world

	// Viewport caps the simulated area in tiles. Zero fields follow the
	// terminal size.
	Viewport ViewportConfig `yaml:"viewport"`

	// WorldPath is loaded at startup when it exists and written by save.
	WorldPath string `yaml:"world"`

	BiomeAtlas        string `yaml:"biome_atlas"`
	ConstructionAtlas string `yaml:"construction_atlas"`
}

// ViewportConfig bounds the visible window.
type ViewportConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Rows:              world.DefaultRows,
		Cols:              world.DefaultCols,
		TileSize:          sim.DefaultTileSize,
		TickRate:          30,
		Population:        24,
		WorldPath:         "world.yaml.zst",
		BiomeAtlas:        world.DefaultBiomeAtlas,
		ConstructionAtlas: world.DefaultConstructionAtlas,
	}
}

// LoadConfig reads a YAML config over the defaults. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the values are usable.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("world size %dx%d must be positive", c.Rows, c.Cols)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size %v must be positive", c.TileSize)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate %d must be positive", c.TickRate)
	}
	if c.PlayerSpeed < 0 {
		return fmt.Errorf("player_speed %v must not be negative", c.PlayerSpeed)
	}
	if c.Population < 0 {
		return fmt.Errorf("population %d must not be negative", c.Population)
	}
	if c.Viewport.Rows < 0 || c.Viewport.Cols < 0 {
		return errors.New("viewport must not be negative")
	}
	return nil
}
