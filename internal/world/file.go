package world

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/tile"
)

// FileVersion is the current world file format version.
const FileVersion = 1

// File is the on-disk form of a Map. Only tile types are stored.
type File struct {
	Version           int      `yaml:"version"`
	Rows              int      `yaml:"rows"`
	Cols              int      `yaml:"cols"`
	BiomeAtlas        string   `yaml:"biome_atlas"`
	ConstructionAtlas string   `yaml:"construction_atlas"`
	Biome             []string `yaml:"biome"`
	Construction      []string `yaml:"construction"`
}

// Encode converts a map into its file form.
func Encode(m *Map) File {
	return File{
		Version:           FileVersion,
		Rows:              m.Rows(),
		Cols:              m.Cols(),
		BiomeAtlas:        m.Biome.Atlas,
		ConstructionAtlas: m.Construction.Atlas,
		Biome:             EncodeRows(m.Biome),
		Construction:      EncodeRows(m.Construction),
	}
}

// Decode rebuilds a map from its file form. Unknown tile characters become
// Nothing; a missing construction layer is treated as empty.
func Decode(f File) (*Map, error) {
	if f.Version != FileVersion {
		return nil, fmt.Errorf("unsupported world file version %d", f.Version)
	}
	if f.Rows < 0 || f.Cols < 0 {
		return nil, fmt.Errorf("invalid world size %dx%d", f.Rows, f.Cols)
	}
	if len(f.Biome) != f.Rows {
		return nil, fmt.Errorf("biome layer has %d rows, header says %d", len(f.Biome), f.Rows)
	}
	if len(f.Construction) > f.Rows {
		return nil, fmt.Errorf("construction layer has %d rows, header says %d", len(f.Construction), f.Rows)
	}

	biome := DecodeRows(pad(f.Biome, f.Rows, f.Cols), tile.BiomeFromChar, atlasOr(f.BiomeAtlas, DefaultBiomeAtlas))
	construction := DecodeRows(pad(f.Construction, f.Rows, f.Cols), tile.ConstructionFromChar,
		atlasOr(f.ConstructionAtlas, DefaultConstructionAtlas))
	return NewMapFromGrids(biome, construction), nil
}

// pad fixes every row to cols runes so both layers share dimensions.
func pad(rows []string, n, cols int) []string {
	out := make([]string, n)
	for i := range out {
		line := ""
		if i < len(rows) {
			line = rows[i]
		}
		runes := []rune(line)
		if len(runes) > cols {
			runes = runes[:cols]
		}
		out[i] = string(runes) + strings.Repeat(".", cols-len(runes))
	}
	return out
}

func atlasOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// Write encodes m as YAML to w.
func Write(w io.Writer, m *Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(m)); err != nil {
		return fmt.Errorf("encode world: %w", err)
	}
	return enc.Close()
}

// Read decodes a YAML world from r.
func Read(r io.Reader) (*Map, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	return Decode(f)
}

// SaveFile writes m to path. Paths ending in .zst are zstd-compressed.
func SaveFile(ctx context.Context, path string, m *Map) error {
	_, span := telemetry.Tracer("world").Start(ctx, "world.save")
	defer span.End()
	span.SetAttributes(
		attribute.String("world.path", path),
		attribute.Int("world.rows", m.Rows()),
		attribute.Int("world.cols", m.Cols()),
	)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create world directory: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		return err
	}

	data := buf.Bytes()
	if compressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write world %s: %w", path, err)
	}
	span.SetAttributes(attribute.Int("world.bytes", len(data)))
	return nil
}

// LoadFile reads a world written by SaveFile.
func LoadFile(ctx context.Context, path string) (*Map, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "world.load")
	defer span.End()
	span.SetAttributes(attribute.String("world.path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open world %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	m, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("load world %s: %w", path, err)
	}
	span.SetAttributes(
		attribute.Int("world.rows", m.Rows()),
		attribute.Int("world.cols", m.Cols()),
	)
	return m, nil
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}
