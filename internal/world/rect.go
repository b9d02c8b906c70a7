package world

// Rect is a tile-aligned rectangle.
type Rect struct {
	X, Y int // Top-left tile
	W, H int // Size in tiles
}

// Center returns the center tile of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains returns true if the given tile is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects returns true if this rectangle overlaps with another one.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Empty reports whether the rectangle covers no tiles.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Translate returns the rectangle moved by the given delta.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}
