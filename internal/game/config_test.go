package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error = %v", path, err)
		}
		if cfg != DefaultConfig() {
			t.Errorf("LoadConfig(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tileworld.yaml")
	data := "seed: 42\nrows: 20\ncols: 30\nviewport:\n  cols: 40\nworld: town.yaml\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Seed != 42 || cfg.Rows != 20 || cfg.Cols != 30 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Viewport.Cols != 40 || cfg.Viewport.Rows != 0 {
		t.Errorf("Viewport = %+v, want cols 40", cfg.Viewport)
	}
	if cfg.WorldPath != "town.yaml" {
		t.Errorf("WorldPath = %q", cfg.WorldPath)
	}
	if cfg.TickRate != DefaultConfig().TickRate {
		t.Errorf("TickRate = %d, want default", cfg.TickRate)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"zero rows", "rows: 0\n"},
		{"negative tile size", "tile_size: -1\n"},
		{"zero tick rate", "tick_rate: 0\n"},
		{"negative speed", "player_speed: -2\n"},
		{"negative viewport", "viewport:\n  rows: -1\n"},
		{"bad yaml", "rows: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() error = nil, want error")
			}
		})
	}
}
