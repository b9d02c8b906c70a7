package tile

// Direction is one of the four sides of a tile.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the sides in scan order.
var Directions = [4]Direction{Up, Right, Down, Left}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the column and row step for the direction.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the facing side.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// DirSet is a set of directions stored as a bitmask.
type DirSet uint8

// NewDirSet builds a set from the given directions.
func NewDirSet(dirs ...Direction) DirSet {
	var s DirSet
	for _, d := range dirs {
		s = s.With(d)
	}
	return s
}

// With returns the set with d added.
func (s DirSet) With(d Direction) DirSet {
	return s | 1<<uint(d)
}

// Has reports whether d is in the set.
func (s DirSet) Has(d Direction) bool {
	return s&(1<<uint(d)) != 0
}

// Len returns the number of directions in the set.
func (s DirSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

var (
	setU    = NewDirSet(Up)
	setR    = NewDirSet(Right)
	setD    = NewDirSet(Down)
	setL    = NewDirSet(Left)
	setUL   = NewDirSet(Up, Left)
	setUR   = NewDirSet(Up, Right)
	setRD   = NewDirSet(Right, Down)
	setDL   = NewDirSet(Down, Left)
	setUD   = NewDirSet(Up, Down)
	setRL   = NewDirSet(Right, Left)
	setURD  = NewDirSet(Up, Right, Down)
	setRDL  = NewDirSet(Right, Down, Left)
	setUDL  = NewDirSet(Up, Down, Left)
	setURL  = NewDirSet(Up, Right, Left)
	setURDL = NewDirSet(Up, Right, Down, Left)
)

// PatternIndex maps a contact set to its blend sprite offset (0-14) inside a
// neighbor's block of 15 atlas columns. The empty set falls back to 0.
func PatternIndex(s DirSet) int {
	switch s {
	case setU:
		return 0
	case setR:
		return 1
	case setD:
		return 2
	case setL:
		return 3
	case setUL:
		return 4
	case setUR:
		return 5
	case setRD:
		return 6
	case setDL:
		return 7
	case setURD:
		return 8
	case setRDL:
		return 9
	case setUDL:
		return 10
	case setURL:
		return 11
	case setURDL:
		return 12
	case setUD:
		return 13
	case setRL:
		return 14
	default:
		return 0
	}
}
