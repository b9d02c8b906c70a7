package entity

import (
	"testing"

	"github.com/samdwyer/tileworld/internal/gamedata"
	"github.com/samdwyer/tileworld/internal/world"
)

func TestFootprintSkipsTopRow(t *testing.T) {
	tall := &Entity{Frame: world.Rect{X: 5, Y: 5, W: 1, H: 2}}
	if got := tall.Footprint(); got != (world.Rect{X: 5, Y: 6, W: 1, H: 1}) {
		t.Errorf("tall footprint = %+v", got)
	}

	short := &Entity{Frame: world.Rect{X: 5, Y: 5, W: 2, H: 1}}
	if got := short.Footprint(); got != short.Frame {
		t.Errorf("short footprint = %+v, want frame %+v", got, short.Frame)
	}
}

func TestNewFromSpecies(t *testing.T) {
	def := &gamedata.SpeciesDef{
		ID:       "villager",
		Name:     "Villager",
		Glyph:    "v",
		Rigid:    true,
		Weighted: true,
		Width:    1,
		Height:   2,
		Speed:    3,
	}
	e := NewFromSpecies(def, 2, 3)

	if e.Kind != KindVillager {
		t.Errorf("Kind = %s, want Villager", e.Kind)
	}
	if e.Frame != (world.Rect{X: 2, Y: 3, W: 1, H: 2}) {
		t.Errorf("Frame = %+v", e.Frame)
	}
	if !e.Rigid || !e.Weighted || e.Pushable {
		t.Errorf("flags = rigid %v weighted %v pushable %v", e.Rigid, e.Weighted, e.Pushable)
	}
	if e.Symbol != 'v' || e.Speed != 3 {
		t.Errorf("Symbol %c Speed %v", e.Symbol, e.Speed)
	}
}

func TestNewPlayerStandsOnTile(t *testing.T) {
	p := NewPlayer(4, 7, nil)
	if x, y := p.Feet(); x != 4 || y != 7 {
		t.Errorf("Feet() = (%d,%d), want (4,7)", x, y)
	}
	if p.Kind != KindPlayer {
		t.Errorf("Kind = %s", p.Kind)
	}
}

func TestKindFromID(t *testing.T) {
	for _, k := range []Kind{KindPlayer, KindVillager, KindChicken, KindGhost, KindCrate} {
		got, ok := KindFromID(k.ID())
		if !ok || got != k {
			t.Errorf("KindFromID(%q) = %s, %v", k.ID(), got, ok)
		}
	}
	if _, ok := KindFromID("dragon"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 3, Y: 4}.Normalize()
	if v.X != 0.6 || v.Y != 0.8 {
		t.Errorf("Normalize = %+v", v)
	}
	if !(Vec{}).Normalize().IsZero() {
		t.Error("zero vector should stay zero")
	}
}

func TestSetVisible(t *testing.T) {
	s := NewSet()
	inside := New(KindChicken, 2, 2)
	outside := New(KindChicken, 50, 50)
	edge := New(KindVillager, 9, 9) // frame rows 9-10 straddle the viewport edge

	s.Add(inside)
	s.Add(outside)
	s.Add(edge)

	visible := s.Visible(world.Rect{X: 0, Y: 0, W: 10, H: 10})
	seen := make(map[ID]bool)
	for _, e := range visible {
		seen[e.ID] = true
	}
	if len(visible) != 2 || !seen[inside.ID] || !seen[edge.ID] {
		t.Errorf("visible = %v, want inside and edge", seen)
	}
}

func TestSetIDs(t *testing.T) {
	s := NewSet()
	a := s.Add(New(KindCrate, 0, 0))
	b := s.Add(New(KindCrate, 1, 0))
	if a == 0 || b == 0 || a == b {
		t.Errorf("IDs = %d, %d; want distinct non-zero", a, b)
	}

	s.Remove(a)
	if s.Get(a) != nil || s.Len() != 1 {
		t.Error("Remove did not delete the entity")
	}
	if got := s.FirstAt(1, 0); got == nil || got.ID != b {
		t.Errorf("FirstAt(1,0) = %v", got)
	}
}

func TestSetVisibleEmptyViewport(t *testing.T) {
	s := NewSet()
	s.Add(New(KindChicken, 0, 0))
	if got := s.Visible(world.Rect{}); len(got) != 0 {
		t.Errorf("Visible(empty) = %d entities, want 0", len(got))
	}
}
