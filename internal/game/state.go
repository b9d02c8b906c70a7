// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where arrow keys walk the player.
	StateExplore State = iota
	// StateEdit moves a cursor and paints tiles under it.
	StateEdit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateEdit:
		return "edit"
	default:
		return "unknown"
	}
}
