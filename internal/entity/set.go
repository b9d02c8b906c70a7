package entity

import "github.com/samdwyer/tileworld/internal/world"

// Set owns the entities of a world. It is not safe for concurrent use.
type Set struct {
	entities map[ID]*Entity
	nextID   ID
}

// NewSet creates an empty set. IDs start at 1; 0 is reserved for "none".
func NewSet() *Set {
	return &Set{
		entities: make(map[ID]*Entity),
		nextID:   1,
	}
}

// Add assigns e a fresh ID and stores it.
func (s *Set) Add(e *Entity) ID {
	e.ID = s.nextID
	s.nextID++
	s.entities[e.ID] = e
	return e.ID
}

// Remove deletes the entity with the given ID.
func (s *Set) Remove(id ID) {
	delete(s.entities, id)
}

// Get returns the entity with the given ID, or nil.
func (s *Set) Get(id ID) *Entity {
	return s.entities[id]
}

// Len returns the number of entities.
func (s *Set) Len() int {
	return len(s.entities)
}

// All returns every entity. Order is unspecified.
func (s *Set) All() []*Entity {
	out := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e)
	}
	return out
}

// Visible returns the entities whose frame intersects the viewport. Order
// follows map iteration and differs between calls; consumers that keep the
// last writer per cell inherit that nondeterminism.
func (s *Set) Visible(viewport world.Rect) []*Entity {
	if viewport.Empty() {
		return nil
	}
	out := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if e.Frame.Intersects(viewport) {
			out = append(out, e)
		}
	}
	return out
}

// FirstAt returns an entity whose footprint covers (x, y), or nil.
func (s *Set) FirstAt(x, y int) *Entity {
	for _, e := range s.entities {
		if e.Footprint().Contains(x, y) {
			return e
		}
	}
	return nil
}
