package world

// Point is a cell coordinate. The origin is the lower-left corner of the
// grid and y grows upward.
type Point struct {
	X, Y int
}

// Up returns the point one cell above p.
func (p Point) Up() Point { return Point{p.X, p.Y + 1} }

// Down returns the point one cell below p.
func (p Point) Down() Point { return Point{p.X, p.Y - 1} }

// Left returns the point one cell to the left of p.
func (p Point) Left() Point { return Point{p.X - 1, p.Y} }

// Right returns the point one cell to the right of p.
func (p Point) Right() Point { return Point{p.X + 1, p.Y} }

// Add returns p offset by d.
func (p Point) Add(d Direction) Point {
	return Point{p.X + d.DX, p.Y + d.DY}
}

// Direction is a unit step along one axis.
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{0, 1}
	Down  = Direction{0, -1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}
