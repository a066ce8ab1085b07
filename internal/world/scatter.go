package world

// scatterRoom fills room i with food, breakable walls and enemies. Items only
// land on the inner area one cell in from the walls, so corridors, the exit
// and the player spawn are never covered.
func (b *build) scatterRoom(i int) {
	side := b.width - 4
	b.scatterOrigin = b.origins[i]
	b.scatterPool = side * side

	b.scatter(i, b.params.Food.PickRandom(b.rng, side), Food)
	b.scatter(i, b.params.Walls.PickRandom(b.rng, side), Wall)
	b.scatter(i, b.level-1, Zombie)
}

func (b *build) scatter(room, count int, flag TileFlags) {
	for n := 0; n < count; n++ {
		p, ok := b.pickFreeCell()
		if !ok {
			b.layout.Undershoot++
			b.logger.V(1).Info("scatter exhausted, skipping placement",
				"level", b.level, "room", room, "flag", flag.String())
			continue
		}
		b.grid.put(p, b.grid.at(p)|flag)
	}
}

// pickFreeCell draws an index into the shrinking pool of free cells and walks
// the scatter area to the cell with that index. Only cells holding nothing but
// ground count, so a cell filled by an earlier pick is skipped by the walk
// rather than picked twice. The pool shrinks by one per draw, which keeps it
// equal to the number of bare ground cells left.
func (b *build) pickFreeCell() (Point, bool) {
	if b.scatterPool <= 0 {
		return Point{}, false
	}
	offset := b.rng.Intn(b.scatterPool)
	b.scatterPool--

	minX, endX := b.scatterOrigin.X+2, b.scatterOrigin.X+b.width-2
	minY, endY := b.scatterOrigin.Y+2, b.scatterOrigin.Y+b.width-2
	for x := minX; x < endX; x++ {
		for y := minY; y < endY; y++ {
			p := Point{x, y}
			if b.grid.at(p) != Ground {
				continue
			}
			if offset == 0 {
				return p, true
			}
			offset--
		}
	}
	return Point{}, false
}
