package world

import "github.com/cespare/xxhash/v2"

// GridSnapshot is a read-only copy of a grid handed to presentation code.
type GridSnapshot struct {
	Width, Height int
	cells         []TileFlags
}

// Snapshot copies the current grid state.
func (g *Grid) Snapshot() GridSnapshot {
	cells := make([]TileFlags, len(g.cells))
	copy(cells, g.cells)
	return GridSnapshot{Width: g.width, Height: g.height, cells: cells}
}

// InBounds reports whether p lies inside the snapshot.
func (s GridSnapshot) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// At returns the flags at p, or zero when p is out of bounds.
func (s GridSnapshot) At(p Point) TileFlags {
	if !s.InBounds(p) {
		return 0
	}
	return s.cells[p.Y*s.Width+p.X]
}

// Hash returns a digest of the dimensions and every cell.
func (s GridSnapshot) Hash() uint64 {
	buf := make([]byte, 0, 8+len(s.cells))
	buf = append(buf,
		byte(s.Width>>24), byte(s.Width>>16), byte(s.Width>>8), byte(s.Width),
		byte(s.Height>>24), byte(s.Height>>16), byte(s.Height>>8), byte(s.Height))
	for _, c := range s.cells {
		buf = append(buf, byte(c))
	}
	return xxhash.Sum64(buf)
}
