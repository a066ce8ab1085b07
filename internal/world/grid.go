package world

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a grid operation is given a point
	// outside the grid.
	ErrOutOfBounds = errors.New("point out of bounds")
	// ErrInvariant marks a cell whose flags break the tile invariants.
	ErrInvariant = errors.New("tile invariant violated")
)

// Grid is the authoritative occupancy store for one level.
type Grid struct {
	width  int
	height int
	cells  []TileFlags
}

// NewGrid creates an empty grid. Every cell starts with no flags.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]TileFlags, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p is a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Get returns the flags at p.
func (g *Grid) Get(p Point) (TileFlags, error) {
	if err := g.check(p); err != nil {
		return 0, err
	}
	return g.at(p), nil
}

// Set merges flag into the cell at p. With invariant assertions on, a merge
// that would break a tile invariant returns ErrInvariant and leaves the cell
// unchanged.
func (g *Grid) Set(p Point, flag TileFlags) error {
	if err := g.check(p); err != nil {
		return err
	}
	return g.store(p, g.at(p)|flag)
}

// Clear removes flag from the cell at p, with the same invariant check as
// Set.
func (g *Grid) Clear(p Point, flag TileFlags) error {
	if err := g.check(p); err != nil {
		return err
	}
	return g.store(p, g.at(p)&^flag)
}

func (g *Grid) store(p Point, t TileFlags) error {
	if !t.Valid() && assertInvariants.Load() {
		return invariantError(p, t)
	}
	g.put(p, t)
	return nil
}

// Validate checks every cell against the tile invariants and returns all
// violations joined, or nil.
func (g *Grid) Validate() error {
	var errs []error
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Point{x, y}
			if t := g.at(p); !t.Valid() {
				errs = append(errs, invariantError(p, t))
			}
		}
	}
	return errors.Join(errs...)
}

func (g *Grid) check(p Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: (%d,%d) not in %dx%d grid", ErrOutOfBounds, p.X, p.Y, g.width, g.height)
	}
	return nil
}

// at and put skip the bounds check; callers guarantee p is in bounds.
func (g *Grid) at(p Point) TileFlags {
	return g.cells[p.Y*g.width+p.X]
}

func (g *Grid) put(p Point, t TileFlags) {
	g.cells[p.Y*g.width+p.X] = t
}

func invariantError(p Point, t TileFlags) error {
	return fmt.Errorf("%w at (%d,%d): %s", ErrInvariant, p.X, p.Y, t)
}
