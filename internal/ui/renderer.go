package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tileworld/internal/entity"
	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/occupancy"
	"github.com/samdwyer/tileworld/internal/tile"
	"github.com/samdwyer/tileworld/internal/world"
)

// StatusLines is the number of terminal rows reserved below the map.
const StatusLines = 2

// View is everything drawn in one frame.
type View struct {
	Map      *world.Map
	Entities []*entity.Entity
	Viewport world.Rect

	// Hitmap, when set, is overlaid on the terrain: blocked cells are tinted
	// and weighted cells show their weight.
	Hitmap *occupancy.Grid

	ShowCursor       bool
	CursorX, CursorY int

	Status []string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	if palette == nil {
		palette = gamedata.NewPalette(gamedata.PaletteFile{})
	}
	return &Renderer{screen: screen, palette: palette}
}

// Viewport returns the map rectangle that fits the current terminal, centered
// on (fx, fy). maxCols and maxRows cap the size when positive.
func (r *Renderer) Viewport(m *world.Map, fx, fy, maxCols, maxRows int) world.Rect {
	w, h := r.screen.Size()
	h -= StatusLines
	if maxCols > 0 {
		w = min(w, maxCols)
	}
	if maxRows > 0 {
		h = min(h, maxRows)
	}
	return Camera(m.Bounds(), w, h, fx, fy)
}

// Camera centers a w x h window on (fx, fy) and clamps it inside bounds.
func Camera(bounds world.Rect, w, h, fx, fy int) world.Rect {
	w = max(min(w, bounds.W), 0)
	h = max(min(h, bounds.H), 0)
	x := min(max(fx-w/2, bounds.X), bounds.X+bounds.W-w)
	y := min(max(fy-h/2, bounds.Y), bounds.Y+bounds.H-h)
	return world.Rect{X: x, Y: y, W: w, H: h}
}

// Render draws the view to the screen.
func (r *Renderer) Render(v View) {
	r.screen.Clear()

	vp := v.Viewport
	variant := v.Map.Biome.Variant()
	for y := vp.Y; y < vp.Y+vp.H; y++ {
		for x := vp.X; x < vp.X+vp.W; x++ {
			ch, style := r.tileCell(v.Map, y, x, variant)
			if v.Hitmap != nil {
				ch, style = overlay(v.Hitmap, x, y, ch, style)
			}
			r.screen.SetContent(x-vp.X, y-vp.Y, ch, style)
		}
	}

	for _, e := range v.Entities {
		r.drawEntity(e, vp)
	}

	if v.ShowCursor && vp.Contains(v.CursorX, v.CursorY) {
		sx, sy := v.CursorX-vp.X, v.CursorY-vp.Y
		ch, style := r.screen.Content(sx, sy)
		r.screen.SetContent(sx, sy, ch, style.Reverse(true))
	}

	for i, line := range v.Status {
		r.RenderMessage(line, vp.H+i)
	}

	r.screen.Show()
}

func (r *Renderer) tileCell(m *world.Map, row, col, variant int) (rune, tcell.Style) {
	b := m.Biome.Type(row, col)
	style := tcell.StyleDefault.Background(r.palette.Biome(b.String())).Foreground(tcell.ColorWhite)

	if c := m.Construction.Type(row, col); c.IsSomething() {
		fg := r.palette.Construction(c.String())
		return r.palette.Glyph(c.String(), rune(c.Char())), style.Foreground(fg).Bold(true)
	}
	return biomeGlyph(b, variant), style
}

// biomeGlyph returns the terrain character. Liquids alternate with the
// animation variant.
func biomeGlyph(b tile.Biome, variant int) rune {
	switch {
	case b == tile.BiomeWater, b == tile.BiomeLava:
		if variant%2 == 0 {
			return '~'
		}
		return '-'
	case b.IsGrass() && b != tile.BiomeGrass:
		return '*'
	case b == tile.BiomeRock, b == tile.BiomeDarkRock:
		return '^'
	case b == tile.BiomeFarmland:
		return ','
	default:
		return ' '
	}
}

func overlay(g *occupancy.Grid, x, y int, ch rune, style tcell.Style) (rune, tcell.Style) {
	if g.Blocked(x, y) {
		style = style.Background(tcell.ColorDarkRed)
	}
	if w := g.Weight(x, y); w > 0 {
		ch = rune('0' + min(w, 9))
	}
	return ch, style
}

func (r *Renderer) drawEntity(e *entity.Entity, vp world.Rect) {
	fg := tcell.ColorYellow
	if e.Species != nil {
		fg = e.Species.TCellColor()
	}
	style := tcell.StyleDefault.Foreground(fg).Bold(true)

	fp := e.Footprint()
	for y := e.Frame.Y; y < e.Frame.Y+e.Frame.H; y++ {
		for x := e.Frame.X; x < e.Frame.X+e.Frame.W; x++ {
			if !vp.Contains(x, y) {
				continue
			}
			ch := e.Symbol
			if !fp.Contains(x, y) {
				ch = 'o'
			}
			_, under := r.screen.Content(x-vp.X, y-vp.Y)
			_, bg, _ := under.Decompose()
			r.screen.SetContent(x-vp.X, y-vp.Y, ch, style.Background(bg))
		}
	}
}

// RenderMessage displays a message at the bottom of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}

// DescribeCell summarizes the tiles at (x, y) with their resolved atlas
// cells and, when g is set, the occupancy there.
func DescribeCell(m *world.Map, x, y int, g *occupancy.Grid) string {
	bc, ok := m.Biome.At(y, x)
	if !ok {
		return fmt.Sprintf("(%d,%d) outside", x, y)
	}
	cc, _ := m.Construction.At(y, x)

	s := fmt.Sprintf("(%d,%d) %s [%s %d,%d]", x, y, bc.Type, m.Biome.Atlas, bc.AtlasCol, bc.AtlasRow)
	if cc.Type.IsSomething() {
		s += fmt.Sprintf(" %s [%s %d,%d]", cc.Type, m.Construction.Atlas, cc.AtlasCol, cc.AtlasRow)
	}
	if g != nil {
		s += fmt.Sprintf(" blocked=%t weight=%d", g.Blocked(x, y), g.Weight(x, y))
		if id := g.Occupant(x, y); id != 0 {
			s += fmt.Sprintf(" occupant=%d", id)
		}
	}
	return s
}
