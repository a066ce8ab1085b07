package ui

import "github.com/samdwyer/scavenger/internal/world"

// Camera maps world cells to terminal cells. Each world cell is two columns
// wide, and world y grows upward while screen rows grow downward.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera of the given view size centered on p.
func NewCamera(p world.Point, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(p)
	return c
}

// Resize changes the view size without moving the offsets.
func (c *Camera) Resize(viewW, viewH int) {
	c.ViewWidth, c.ViewHeight = viewW, viewH
}

// Center moves the camera so p sits in the middle of the view.
func (c *Camera) Center(p world.Point) {
	c.OffsetX = p.X - (c.ViewWidth/2)/2
	c.OffsetY = p.Y - c.ViewHeight/2
}

// Follow centers on p, or on the middle of the grid when the whole grid
// fits in the view.
func (c *Camera) Follow(p world.Point, gridW, gridH int) {
	c.Center(p)
	if gridW*2 <= c.ViewWidth {
		c.OffsetX = -(c.ViewWidth/2-gridW)/2
	}
	if gridH <= c.ViewHeight {
		c.OffsetY = -(c.ViewHeight - gridH) / 2
	}
}

// WorldToScreen converts p to a screen position. visible is false when the
// result falls outside the view.
func (c *Camera) WorldToScreen(p world.Point) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * 2
	sy = c.ViewHeight - 1 - (p.Y - c.OffsetY)
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts a screen position back to a world cell.
func (c *Camera) ScreenToWorld(sx, sy int) world.Point {
	return world.Point{X: sx/2 + c.OffsetX, Y: c.ViewHeight - 1 - sy + c.OffsetY}
}
