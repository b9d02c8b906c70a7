// Package entity provides world entities and the collection that owns them.
package entity

import (
	"math"

	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/world"
)

// ID identifies an entity. Zero means "no entity".
type ID uint32

// Kind represents what sort of creature or object an entity is.
type Kind int

const (
	KindPlayer Kind = iota
	KindVillager
	KindChicken
	KindGhost
	KindCrate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindVillager:
		return "Villager"
	case KindChicken:
		return "Chicken"
	case KindGhost:
		return "Ghost"
	case KindCrate:
		return "Crate"
	default:
		return "Unknown"
	}
}

// ID returns the kind identifier for species lookup.
func (k Kind) ID() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindVillager:
		return "villager"
	case KindChicken:
		return "chicken"
	case KindGhost:
		return "ghost"
	case KindCrate:
		return "crate"
	default:
		return "unknown"
	}
}

// KindFromID maps a species identifier back to its kind.
func KindFromID(id string) (Kind, bool) {
	for _, k := range []Kind{KindPlayer, KindVillager, KindChicken, KindGhost, KindCrate} {
		if k.ID() == id {
			return k, true
		}
	}
	return 0, false
}

// Symbol returns the default display symbol for a kind.
func (k Kind) Symbol() rune {
	switch k {
	case KindPlayer:
		return '@'
	case KindVillager:
		return 'v'
	case KindChicken:
		return 'c'
	case KindGhost:
		return 'g'
	case KindCrate:
		return 'x'
	default:
		return '?'
	}
}

// Vec is a 2D vector in pixel-equivalent units or a direction.
type Vec struct {
	X, Y float64
}

// Scale returns v multiplied by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{X: v.X * s, Y: v.Y * s}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector in the direction of v, or the zero vector.
func (v Vec) Normalize() Vec {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Vec{}
	}
	return Vec{X: v.X / l, Y: v.Y / l}
}

// Entity is anything that occupies tiles: creatures, the player, crates.
type Entity struct {
	ID     ID
	Kind   Kind
	Name   string
	Symbol rune

	// Frame is the tile-aligned position and size. For entities taller than
	// one tile the top row is drawn but does not collide.
	Frame world.Rect

	// Offset is the continuous displacement inside the current tile.
	Offset Vec

	Direction Vec     // Unit vector of travel, zero when idle
	Speed     float64 // Tiles per second

	Rigid    bool // Blocks movement of others
	Weighted bool // Counts toward the weight map
	Pushable bool // Can be shoved by the player

	Species *gamedata.SpeciesDef // Definition this entity came from (nil for ad hoc entities)
}

// New creates an entity of the given kind at (x, y) with kind defaults.
func New(kind Kind, x, y int) *Entity {
	e := &Entity{
		Kind:   kind,
		Name:   kind.String(),
		Symbol: kind.Symbol(),
		Frame:  world.Rect{X: x, Y: y, W: 1, H: 1},
		Speed:  4,
	}
	switch kind {
	case KindPlayer, KindVillager:
		e.Rigid, e.Weighted = true, true
		e.Frame.H = 2
	case KindCrate:
		e.Rigid, e.Weighted, e.Pushable = true, true, true
	case KindChicken:
	case KindGhost:
		e.Frame.H = 2
	}
	return e
}

// NewFromSpecies creates an entity from a data-driven definition.
func NewFromSpecies(def *gamedata.SpeciesDef, x, y int) *Entity {
	kind, _ := KindFromID(def.ID)
	w, h := def.Size()
	return &Entity{
		Kind:     kind,
		Name:     def.Name,
		Symbol:   def.GlyphRune(),
		Frame:    world.Rect{X: x, Y: y, W: w, H: h},
		Speed:    def.Speed,
		Rigid:    def.Rigid,
		Weighted: def.Weighted,
		Pushable: def.Pushable,
		Species:  def,
	}
}

// Feet returns the tile the entity stands on: its bottom-left tile.
func (e *Entity) Feet() (int, int) {
	return e.Frame.X, e.Frame.Y + e.Frame.H - 1
}

// Footprint returns the rectangle of tiles the entity collides with. An
// entity taller than one tile does not collide with its top row.
func (e *Entity) Footprint() world.Rect {
	f := e.Frame
	if f.H > 1 {
		f.Y++
		f.H--
	}
	return f
}

// Moving reports whether the entity has a direction and a speed.
func (e *Entity) Moving() bool {
	return !e.Direction.IsZero() && e.Speed > 0
}

// Stop clears the direction of travel. The sub-tile offset is kept.
func (e *Entity) Stop() {
	e.Direction = Vec{}
}
