package gamedata

import (
	"errors"
	"math/rand"
)

// SpeciesRegistry holds loaded species definitions and provides spawning
// utilities.
type SpeciesRegistry struct {
	species     []SpeciesDef
	byID        map[string]int
	totalWeight int
}

// NewSpeciesRegistry creates a registry from loaded species definitions.
func NewSpeciesRegistry(species []SpeciesDef) *SpeciesRegistry {
	r := &SpeciesRegistry{
		species: species,
		byID:    make(map[string]int, len(species)),
	}
	for i, s := range species {
		r.byID[s.ID] = i
		r.totalWeight += max(s.SpawnWeight, 0)
	}
	return r
}

// LoadSpeciesRegistry loads and creates a registry from the embedded
// species.json.
func LoadSpeciesRegistry() (*SpeciesRegistry, error) {
	species, err := LoadSpecies()
	if err != nil {
		return nil, err
	}
	if len(species) == 0 {
		return nil, errors.New("no species loaded from species.json")
	}
	return NewSpeciesRegistry(species), nil
}

// Count returns the number of species.
func (r *SpeciesRegistry) Count() int {
	return len(r.species)
}

// GetByID returns the species with the given ID, or nil.
func (r *SpeciesRegistry) GetByID(id string) *SpeciesDef {
	i, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &r.species[i]
}

// SpawnRandom selects a species using weighted probability. Species with a
// spawnWeight of 0 are never selected.
func (r *SpeciesRegistry) SpawnRandom(rng *rand.Rand) *SpeciesDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.species {
		cumulative += max(r.species[i].SpawnWeight, 0)
		if roll < cumulative {
			return &r.species[i]
		}
	}
	return nil
}
