package game

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tileworld/internal/sim"
	"github.com/samdwyer/tileworld/internal/tile"
	"github.com/samdwyer/tileworld/internal/world"
)

func testGame(t *testing.T) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.WorldPath = filepath.Join(t.TempDir(), "world.yaml")

	g := newGame(cfg)
	g.world = sim.New(world.NewMap(10, 10, tile.BiomeGrass), cfg.TileSize)
	g.world.SpawnPlayer(4, 4, nil)
	return g
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestArrowWalksUntilHoldExpires(t *testing.T) {
	g := testGame(t)
	ctx := context.Background()
	now := time.Now()

	g.handleEvent(ctx, key(tcell.KeyRight), now)
	p := g.world.Player()
	if p.Direction.X != 1 || p.Direction.Y != 0 {
		t.Fatalf("Direction = %+v, want right", p.Direction)
	}

	g.tick(ctx, now.Add(holdWindow/2), 0.1)
	if !p.Moving() || p.Offset.X <= 0 {
		t.Errorf("player should walk while the key is held, offset %+v", p.Offset)
	}

	g.tick(ctx, now.Add(2*holdWindow), 0.1)
	if p.Moving() {
		t.Error("player still walking after the hold window")
	}
}

func TestEditModePaintsUnderCursor(t *testing.T) {
	g := testGame(t)
	ctx := context.Background()
	now := time.Now()

	g.handleEvent(ctx, runeKey('e'), now)
	if g.state != StateEdit {
		t.Fatalf("state = %s, want edit", g.state)
	}
	if g.cursorX != 4 || g.cursorY != 4 {
		t.Errorf("cursor = (%d,%d), want player feet (4,4)", g.cursorX, g.cursorY)
	}

	g.handleEvent(ctx, key(tcell.KeyUp), now)
	if g.cursorY != 3 {
		t.Errorf("cursorY = %d, want 3", g.cursorY)
	}
	if g.world.Player().Moving() {
		t.Error("arrow keys in edit mode should not walk the player")
	}

	// First brush is water.
	g.handleEvent(ctx, key(tcell.KeyEnter), now)
	if got := g.world.Map.Biome.Type(3, 4); got != tile.BiomeWater {
		t.Errorf("painted biome = %s, want water", got)
	}

	for g.CurrentBrush() != (Brush{Construction: tile.ConstructionStoneWall, Structure: true}) {
		g.handleEvent(ctx, key(tcell.KeyTab), now)
	}
	g.handleEvent(ctx, runeKey(' '), now)
	if got := g.world.Map.Construction.Type(3, 4); got != tile.ConstructionStoneWall {
		t.Errorf("painted structure = %s, want stone_wall", got)
	}

	g.handleEvent(ctx, runeKey('x'), now)
	if got := g.world.Map.Construction.Type(3, 4); got.IsSomething() {
		t.Errorf("structure after clear = %s", got)
	}

	g.handleEvent(ctx, runeKey('p'), now)
	if plates := g.world.Plates(); len(plates) != 1 || plates[0] != (sim.Point{X: 4, Y: 3}) {
		t.Errorf("Plates = %v", plates)
	}

	g.handleEvent(ctx, runeKey('e'), now)
	if g.state != StateExplore {
		t.Errorf("state = %s, want explore", g.state)
	}
}

func TestPaintIgnoredOutsideEditMode(t *testing.T) {
	g := testGame(t)
	g.handleEvent(context.Background(), key(tcell.KeyEnter), time.Now())
	if got := g.world.Map.Biome.Type(4, 4); got != tile.BiomeGrass {
		t.Errorf("biome = %s, want grass untouched", got)
	}
}

func TestBrushCyclesBothWays(t *testing.T) {
	g := testGame(t)
	n := len(Brushes())

	g.handleEvent(context.Background(), key(tcell.KeyBacktab), time.Now())
	if g.brush != n-1 {
		t.Errorf("brush = %d, want %d", g.brush, n-1)
	}
	g.handleEvent(context.Background(), key(tcell.KeyTab), time.Now())
	if g.brush != 0 {
		t.Errorf("brush = %d, want 0", g.brush)
	}
}

func TestSaveWritesWorldFile(t *testing.T) {
	g := testGame(t)
	ctx := context.Background()
	g.world.EditBiome(2, 2, tile.BiomeLava)

	g.handleEvent(ctx, runeKey('s'), time.Now())
	if g.message != "saved "+g.cfg.WorldPath {
		t.Fatalf("message = %q", g.message)
	}

	m, err := world.LoadFile(ctx, g.cfg.WorldPath)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if m.Biome.Type(2, 2) != tile.BiomeLava {
		t.Error("saved world lost the edit")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{runeKey('q'), key(tcell.KeyEscape)} {
		g := testGame(t)
		g.handleEvent(context.Background(), ev, time.Now())
		if !g.Quit() {
			t.Errorf("key %v did not quit", ev.Name())
		}
	}
}

func TestInitGeneratesWhenNoWorldFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Rows, cfg.Cols = 32, 48
	cfg.PlayerSpeed = 9
	cfg.WorldPath = filepath.Join(t.TempDir(), "missing.yaml.zst")

	g := newGame(cfg)
	if err := g.init(context.Background()); err != nil {
		t.Fatalf("init() error = %v", err)
	}
	if g.world.Map.Rows() != 32 || g.world.Map.Cols() != 48 {
		t.Errorf("world = %dx%d, want 32x48", g.world.Map.Rows(), g.world.Map.Cols())
	}
	p := g.world.Player()
	if p == nil {
		t.Fatal("no player spawned")
	}
	if p.Speed != 9 {
		t.Errorf("player speed = %v, want 9", p.Speed)
	}
	if x, y := p.Feet(); g.world.Map.IsObstacle(y, x) {
		t.Errorf("player spawned on an obstacle at (%d,%d)", x, y)
	}
}

func TestInitLoadsExistingWorld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "town.yaml")
	m := world.NewMap(6, 9, tile.BiomeDesert)
	if err := world.SaveFile(context.Background(), path, m); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Seed = 3
	cfg.Population = 0
	cfg.WorldPath = path

	g := newGame(cfg)
	if err := g.init(context.Background()); err != nil {
		t.Fatalf("init() error = %v", err)
	}
	if g.world.Map.Cols() != 9 || g.world.Map.Biome.Type(0, 0) != tile.BiomeDesert {
		t.Error("init did not load the saved world")
	}
	if g.world.Entities.Len() != 1 {
		t.Errorf("entities = %d, want only the player", g.world.Entities.Len())
	}
}

func TestStatusShowsBrushInEditMode(t *testing.T) {
	g := testGame(t)
	g.toggleEdit()
	lines := g.status()
	if len(lines) != 2 {
		t.Fatalf("status lines = %d, want 2", len(lines))
	}
	if want := "brush " + Brushes()[0].String(); !strings.Contains(lines[0], want) {
		t.Errorf("status = %q, want %q", lines[0], want)
	}
}
