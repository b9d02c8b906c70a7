package entity

import "github.com/samdwyer/tileworld/internal/gamedata"

// NewPlayer creates the player-controlled entity at the given tile. The
// player stands on (x, y); its frame extends one tile above.
func NewPlayer(x, y int, def *gamedata.SpeciesDef) *Entity {
	var p *Entity
	if def != nil {
		p = NewFromSpecies(def, x, y)
	} else {
		p = New(KindPlayer, x, y)
	}
	p.Kind = KindPlayer
	p.Frame.Y = y - (p.Frame.H - 1)
	return p
}
