package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/sim"
	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/tile"
	"github.com/samdwyer/tileworld/internal/ui"
	"github.com/samdwyer/tileworld/internal/world"
)

// holdWindow is how long a direction key keeps the player walking. Terminals
// report key repeats but no releases.
const holdWindow = 250 * time.Millisecond

// Brush is a tile that edit mode paints.
type Brush struct {
	Biome        tile.Biome
	Construction tile.Construction
	Structure    bool // Paints the construction layer
}

// String returns the painted tile name.
func (b Brush) String() string {
	if b.Structure {
		return b.Construction.String()
	}
	return b.Biome.String()
}

// Brushes lists every paintable tile: biomes first, then structures.
func Brushes() []Brush {
	var out []Brush
	for _, b := range tile.AllBiomes() {
		if b != tile.BiomeNothing {
			out = append(out, Brush{Biome: b})
		}
	}
	for _, c := range tile.AllConstructions() {
		if c.IsSomething() {
			out = append(out, Brush{Construction: c, Structure: true})
		}
	}
	return out
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *sim.World
	species  *gamedata.SpeciesRegistry
	rng      *rand.Rand

	state     State
	running   bool
	hitmap    bool
	brushes   []Brush
	brush     int
	cursorX   int
	cursorY   int
	walkUntil time.Time
	viewport  world.Rect
	report    sim.TickReport
	message   string
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	palette, err := gamedata.LoadPalette()
	if err != nil {
		log.Printf("Warning: palette not loaded: %v", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g := newGame(cfg)
	g.screen = screen
	g.renderer = ui.NewRenderer(screen, palette)
	return g, nil
}

func newGame(cfg Config) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		state:   StateExplore,
		running: true,
		brushes: Brushes(),
	}
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if err := g.init(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.cfg.TickRate))
	defer ticker.Stop()

	events := g.screen.Events()
	last := time.Now()
	g.render()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev, time.Now())
		case now := <-ticker.C:
			g.tick(ctx, now, now.Sub(last).Seconds())
			last = now
			g.render()
		}
	}
	return nil
}

// init loads or generates the world and places the player and creatures.
func (g *Game) init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	species, err := gamedata.LoadSpeciesRegistry()
	if err != nil {
		return fmt.Errorf("load species: %w", err)
	}
	g.species = species

	m, yards, loaded, err := g.loadOrGenerate(ctx)
	if err != nil {
		return err
	}

	g.world = sim.New(m, g.cfg.TileSize)
	x, y := world.SpawnPoint(m, yards, g.rng)
	p := g.world.SpawnPlayer(x, y, species.GetByID("player"))
	if g.cfg.PlayerSpeed > 0 {
		p.Speed = g.cfg.PlayerSpeed
	}
	g.cursorX, g.cursorY = x, y

	for _, yard := range yards {
		cx, cy := yard.Center()
		if !m.IsObstacle(cy, cx) {
			g.world.AddPlate(cx, cy)
		}
	}
	placed := g.world.Populate(species, g.rng, g.cfg.Population)

	span.SetAttributes(
		attribute.Bool("world.loaded", loaded),
		attribute.Int("world.rows", m.Rows()),
		attribute.Int("world.cols", m.Cols()),
		attribute.Int("world.plates", len(g.world.Plates())),
		attribute.Int("world.obstacle_groups", len(m.Obstacles())),
		attribute.Int("entities.spawned", placed),
		attribute.Int("player.start_x", x),
		attribute.Int("player.start_y", y),
	)
	return nil
}

// loadOrGenerate reads the configured world file, or generates a world when
// there is none.
func (g *Game) loadOrGenerate(ctx context.Context) (*world.Map, []world.Rect, bool, error) {
	if g.cfg.WorldPath != "" {
		m, err := world.LoadFile(ctx, g.cfg.WorldPath)
		if err == nil {
			return m, nil, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, false, fmt.Errorf("load world: %w", err)
		}
	}

	gen := world.NewGenerator(g.cfg.Rows, g.cfg.Cols, g.rng)
	m := gen.Generate(ctx)
	m.Biome.Atlas = g.cfg.BiomeAtlas
	m.Construction.Atlas = g.cfg.ConstructionAtlas
	return m, gen.Yards, false, nil
}

// tick advances the simulation around the player.
func (g *Game) tick(ctx context.Context, now time.Time, dt float64) {
	p := g.world.Player()
	if p == nil {
		return
	}
	if now.After(g.walkUntil) {
		p.Stop()
	}

	fx, fy := p.Feet()
	if g.state == StateEdit {
		fx, fy = g.cursorX, g.cursorY
	}
	if g.renderer != nil {
		g.viewport = g.renderer.Viewport(g.world.Map, fx, fy, g.cfg.Viewport.Cols, g.cfg.Viewport.Rows)
	} else {
		g.viewport = g.world.Map.Bounds()
	}

	g.report = g.world.Tick(ctx, dt, g.viewport)
}

func (g *Game) render() {
	if g.renderer == nil || g.world == nil {
		return
	}
	v := ui.View{
		Map:        g.world.Map,
		Entities:   g.world.Entities.Visible(g.viewport),
		Viewport:   g.viewport,
		ShowCursor: g.state == StateEdit,
		CursorX:    g.cursorX,
		CursorY:    g.cursorY,
		Status:     g.status(),
	}
	if g.hitmap {
		v.Hitmap = g.world.Occupancy()
	}
	g.renderer.Render(v)
}

// status returns the lines shown under the map.
func (g *Game) status() []string {
	x, y := g.cursorX, g.cursorY
	if g.state == StateExplore {
		if p := g.world.Player(); p != nil {
			x, y = p.Feet()
		}
	}
	head := fmt.Sprintf("%s | visible %d moved %d blocked %d | plates %d/%d",
		g.state, g.report.Visible, g.report.Moved, g.report.Blocked,
		g.report.Pressed, len(g.world.Plates()))
	if g.state == StateEdit {
		head += " | brush " + g.CurrentBrush().String()
	}
	if g.message != "" {
		head += " | " + g.message
	}
	return []string{head, ui.DescribeCell(g.world.Map, x, y, g.world.Occupancy())}
}

// CurrentBrush returns the tile edit mode paints.
func (g *Game) CurrentBrush() Brush {
	return g.brushes[g.brush]
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev, now)
	case *tcell.EventResize:
		if g.screen != nil {
			g.screen.Sync()
		}
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.direct(tile.Up, now)
	case tcell.KeyDown:
		g.direct(tile.Down, now)
	case tcell.KeyLeft:
		g.direct(tile.Left, now)
	case tcell.KeyRight:
		g.direct(tile.Right, now)

	case tcell.KeyTab:
		g.brush = (g.brush + 1) % len(g.brushes)
	case tcell.KeyBacktab:
		g.brush = (g.brush + len(g.brushes) - 1) % len(g.brushes)
	case tcell.KeyEnter:
		g.paint()

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'e':
			g.toggleEdit()
		case 'h':
			g.hitmap = !g.hitmap
		case 's':
			g.save(ctx)
		case ' ':
			g.paint()
		case 'x':
			g.clear()
		case 'p':
			if g.state == StateEdit {
				g.world.AddPlate(g.cursorX, g.cursorY)
			}
		}
	}
}

// direct walks the player in explore mode or moves the cursor in edit mode.
func (g *Game) direct(d tile.Direction, now time.Time) {
	dx, dy := d.Delta()
	if g.state == StateEdit {
		nx, ny := g.cursorX+dx, g.cursorY+dy
		if g.world.Map.Bounds().Contains(nx, ny) {
			g.cursorX, g.cursorY = nx, ny
		}
		return
	}
	if p := g.world.Player(); p != nil {
		p.Direction = entity.Vec{X: float64(dx), Y: float64(dy)}
		g.walkUntil = now.Add(holdWindow)
	}
}

func (g *Game) toggleEdit() {
	if g.state == StateEdit {
		g.state = StateExplore
		return
	}
	g.state = StateEdit
	if p := g.world.Player(); p != nil {
		p.Stop()
		g.cursorX, g.cursorY = p.Feet()
	}
}

// paint applies the current brush under the cursor.
func (g *Game) paint() {
	if g.state != StateEdit {
		return
	}
	b := g.CurrentBrush()
	if b.Structure {
		g.world.EditConstruction(g.cursorY, g.cursorX, b.Construction)
	} else {
		g.world.EditBiome(g.cursorY, g.cursorX, b.Biome)
	}
}

// clear removes the structure under the cursor.
func (g *Game) clear() {
	if g.state == StateEdit {
		g.world.EditConstruction(g.cursorY, g.cursorX, tile.ConstructionNothing)
	}
}

func (g *Game) save(ctx context.Context) {
	if g.cfg.WorldPath == "" {
		g.message = "no world path configured"
		return
	}
	if err := world.SaveFile(ctx, g.cfg.WorldPath, g.world.Map); err != nil {
		g.message = "save failed: " + err.Error()
		return
	}
	g.message = "saved " + g.cfg.WorldPath
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}

// Quit reports whether the loop has been asked to stop.
func (g *Game) Quit() bool {
	return !g.running
}
