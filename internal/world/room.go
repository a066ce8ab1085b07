package world

// Room is a square walled area. All rooms of a level share one width.
type Room struct {
	Origin Point // lower-left corner, on the outer wall
	Width  int
}

// Max returns the upper-right corner of the room, on the outer wall.
func (r Room) Max() Point {
	return Point{r.Origin.X + r.Width - 1, r.Origin.Y + r.Width - 1}
}

// Contains returns true if the given point is inside the room, walls included.
func (r Room) Contains(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.Origin.X+r.Width &&
		p.Y >= r.Origin.Y && p.Y < r.Origin.Y+r.Width
}

// Intersects returns true if this room overlaps with another room.
func (r Room) Intersects(other Room) bool {
	return r.Origin.X < other.Origin.X+other.Width &&
		r.Origin.X+r.Width > other.Origin.X &&
		r.Origin.Y < other.Origin.Y+other.Width &&
		r.Origin.Y+r.Width > other.Origin.Y
}

// Inset returns the interior corner cell selected by corner, where each
// coordinate of corner is 0 (near edge) or 1 (far edge).
func (r Room) Inset(corner Point) Point {
	return Point{
		X: r.Origin.X + 1 + (r.Width-3)*corner.X,
		Y: r.Origin.Y + 1 + (r.Width-3)*corner.Y,
	}
}
