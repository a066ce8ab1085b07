package world

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// minRoomWidth leaves a non-empty scatter area inside the walls.
	minRoomWidth = 5

	walkLeft  = -1
	walkUp    = 0
	walkRight = 1

	// tracerName matches the scavenger/<package> naming of the other tracers.
	// world sits below telemetry in the import graph and names its own.
	tracerName = "scavenger/world"
)

var (
	// ErrInvalidLevel is returned for level numbers below 1.
	ErrInvalidLevel = errors.New("level must be at least 1")
	// ErrInvalidParams is returned when generation parameters cannot produce
	// a valid dungeon.
	ErrInvalidParams = errors.New("invalid dungeon parameters")
)

// Count picks how many items of one kind go into a room, scaled by the
// area of the room's scatter region.
type Count struct {
	MinCoefficient float64 `json:"min"`
	MaxCoefficient float64 `json:"max"`
}

// PickRandom returns a uniform count in [round(min*n*n), round(max*n*n)].
func (c Count) PickRandom(rng *rand.Rand, n int) int {
	area := float64(n * n)
	lo := roundInt(c.MinCoefficient * area)
	hi := roundInt(c.MaxCoefficient * area)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Params controls dungeon generation.
type Params struct {
	RoomWidthConstant   float64 `json:"roomWidthConstant"`
	RoomWidthMultiplier float64 `json:"roomWidthMultiplier"`
	CorridorLength      int     `json:"corridorLength"`
	Food                Count   `json:"food"`
	Walls               Count   `json:"walls"`
}

// DefaultParams returns the stock generation parameters.
func DefaultParams() Params {
	return Params{
		RoomWidthConstant:   9,
		RoomWidthMultiplier: 1.0 / 9.0,
		CorridorLength:      1,
		Food:                Count{MinCoefficient: 1.0 / 36.0, MaxCoefficient: 5.0 / 36.0},
		Walls:               Count{MinCoefficient: 5.0 / 36.0, MaxCoefficient: 9.0 / 36.0},
	}
}

// RoomWidth returns the shared room width for a level.
func (p Params) RoomWidth(level int) int {
	return roundInt(p.RoomWidthConstant + p.RoomWidthMultiplier*float64(level))
}

// KindPicker chooses the kind of each spawned enemy.
type KindPicker interface {
	PickKind(rng *rand.Rand) string
}

// EnemySpawn is an enemy placed by the generator.
type EnemySpawn struct {
	At   Point
	Kind string
}

// Layout is the result of generating one level.
type Layout struct {
	Level       int
	Grid        *Grid
	Rooms       []Room
	RoomWidth   int
	PlayerSpawn Point
	Exit        Point
	Enemies     []EnemySpawn
	Walls       []Point
	// Undershoot counts scatter placements skipped because the room ran out
	// of free cells.
	Undershoot int
}

// Generator builds levels from a single random stream.
type Generator struct {
	params Params
	kinds  KindPicker
	rng    *rand.Rand
	logger logr.Logger
}

// NewGenerator creates a generator. kinds may be nil, in which case every
// enemy gets an empty kind.
func NewGenerator(params Params, kinds KindPicker, rng *rand.Rand, logger logr.Logger) *Generator {
	return &Generator{
		params: params,
		kinds:  kinds,
		rng:    rng,
		logger: logger.WithName("dungeon"),
	}
}

// build holds the working state of one Generate call.
type build struct {
	*Generator
	level   int
	width   int
	origins []Point
	grid    *Grid
	layout  *Layout

	scatterOrigin Point
	scatterPool   int
}

// Generate creates the dungeon for the given level: a chain of level rooms
// joined by corridors, with the exit in the last room and the player in the
// first.
func (g *Generator) Generate(ctx context.Context, level int) (*Layout, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if level < 1 {
		return nil, fmt.Errorf("generate level %d: %w", level, ErrInvalidLevel)
	}
	width := g.params.RoomWidth(level)
	if width < minRoomWidth || g.params.CorridorLength < 1 {
		return nil, fmt.Errorf("generate level %d: room width %d, corridor length %d: %w",
			level, width, g.params.CorridorLength, ErrInvalidParams)
	}

	b := &build{Generator: g, level: level, width: width}
	b.createRoomOrigins()
	b.initializeGrid()
	b.placeRooms()
	b.placePlayer()
	b.collectActors()

	if err := b.grid.Validate(); err != nil {
		if assertInvariants.Load() {
			panic(err)
		}
		g.logger.Error(err, "generated grid breaks tile invariants", "level", level)
	}

	snap := b.grid.Snapshot()
	span.SetAttributes(
		attribute.Int("dungeon.level", level),
		attribute.Int("dungeon.room_width", width),
		attribute.Int("dungeon.width", b.grid.Width()),
		attribute.Int("dungeon.height", b.grid.Height()),
		attribute.Int("dungeon.room_count", len(b.layout.Rooms)),
		attribute.Int("dungeon.enemy_count", len(b.layout.Enemies)),
		attribute.Int("dungeon.undershoot", b.layout.Undershoot),
		attribute.String("dungeon.hash", fmt.Sprintf("%016x", snap.Hash())),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	g.logger.V(1).Info("level generated",
		"level", level, "width", b.grid.Width(), "height", b.grid.Height(),
		"enemies", len(b.layout.Enemies), "walls", len(b.layout.Walls))

	return b.layout, nil
}

// createRoomOrigins walks from the origin one room at a time. From "up" the
// walk turns left below 0.4 and right above 0.6; from left or right it goes
// back up below 0.8 and otherwise keeps its heading.
func (b *build) createRoomOrigins() {
	b.origins = make([]Point, b.level)
	delta := b.width + b.params.CorridorLength

	var last Point
	dir := walkUp
	for i := 1; i < b.level; i++ {
		r := b.rng.Float64()
		if dir == walkUp {
			switch {
			case r < 0.4:
				dir = walkLeft
			case r > 0.6:
				dir = walkRight
			}
		} else if r < 0.8 {
			dir = walkUp
		}

		switch dir {
		case walkLeft:
			last.X -= delta
		case walkUp:
			last.Y += delta
		case walkRight:
			last.X += delta
		}
		b.origins[i] = last
	}
}

// initializeGrid shifts the origins so the leftmost room starts at x = 0
// and sizes the grid to the rooms' bounding box.
func (b *build) initializeGrid() {
	minX := 0
	for _, o := range b.origins {
		minX = min(minX, o.X)
	}
	maxX, maxY := 0, 0
	b.layout = &Layout{Level: b.level, RoomWidth: b.width}
	for i := range b.origins {
		b.origins[i].X -= minX
		maxX = max(maxX, b.origins[i].X)
		maxY = max(maxY, b.origins[i].Y)
		b.layout.Rooms = append(b.layout.Rooms, Room{Origin: b.origins[i], Width: b.width})
	}
	b.grid = NewGrid(maxX+b.width, maxY+b.width)
	b.layout.Grid = b.grid
}

func (b *build) placeRooms() {
	b.placeRoom(0)
	final := b.level - 1
	for i := 1; i <= final; i++ {
		b.placeRoom(i)
		b.connectRooms(b.origins[i-1], b.origins[i], i == final)
	}
	if b.level == 1 {
		b.placeExit(0, Point{1, 1})
	}
}

// placeRoom draws the outer wall ring, fills the interior with ground and
// scatters the room's contents.
func (b *build) placeRoom(i int) {
	origin := b.origins[i]
	maxX := origin.X + b.width - 1
	maxY := origin.Y + b.width - 1

	for x := origin.X; x <= maxX; x++ {
		b.grid.put(Point{x, origin.Y}, OuterWall)
		b.grid.put(Point{x, maxY}, OuterWall)
	}
	for y := origin.Y + 1; y < maxY; y++ {
		b.grid.put(Point{origin.X, y}, OuterWall)
		b.grid.put(Point{maxX, y}, OuterWall)
	}
	for x := origin.X + 1; x < maxX; x++ {
		for y := origin.Y + 1; y < maxY; y++ {
			b.grid.put(Point{x, y}, Ground)
		}
	}

	b.scatterRoom(i)
}

// connectRooms carves a one-wide corridor with walls on both sides from the
// earlier room to the later one and, for the final room, places the exit in
// the corner picked by the corridor's offset.
func (b *build) connectRooms(from, to Point, placeExit bool) {
	w := b.width
	offset := 1 + b.rng.Intn(w-2)
	nearHalf := 0
	if offset < w/2 {
		nearHalf = 1
	}
	last := len(b.origins) - 1

	if from.X == to.X {
		x := from.X + offset
		for y := from.Y + w - 1; y <= to.Y; y++ {
			b.grid.put(Point{x - 1, y}, OuterWall)
			b.grid.put(Point{x, y}, Ground)
			b.grid.put(Point{x + 1, y}, OuterWall)
		}
		if placeExit {
			b.placeExit(last, Point{nearHalf, 1})
		}
		return
	}

	y := from.Y + offset
	var minX, maxX, farX int
	if from.X < to.X {
		minX, maxX, farX = from.X+w-1, to.X, 1
	} else {
		minX, maxX, farX = to.X+w-1, from.X, 0
	}
	for x := minX; x <= maxX; x++ {
		b.grid.put(Point{x, y - 1}, OuterWall)
		b.grid.put(Point{x, y}, Ground)
		b.grid.put(Point{x, y + 1}, OuterWall)
	}
	if placeExit {
		b.placeExit(last, Point{farX, nearHalf})
	}
}

// placeExit marks the exit one cell in from the inner border of room i at
// the given corner: (0,0) lower left, (1,0) lower right, (0,1) upper left,
// (1,1) upper right.
func (b *build) placeExit(i int, corner Point) {
	p := b.layout.Rooms[i].Inset(corner)
	b.grid.put(p, b.grid.at(p)|Exit)
	b.layout.Exit = p
}

func (b *build) placePlayer() {
	p := b.layout.Rooms[0].Inset(Point{0, 0})
	b.grid.put(p, b.grid.at(p)|Player)
	b.layout.PlayerSpawn = p
}

// collectActors scans the finished grid column by column and records every
// breakable wall and enemy, drawing each enemy's kind as it is found.
func (b *build) collectActors() {
	for x := 0; x < b.grid.Width(); x++ {
		for y := 0; y < b.grid.Height(); y++ {
			p := Point{x, y}
			t := b.grid.at(p)
			if t.HasWall() {
				b.layout.Walls = append(b.layout.Walls, p)
			}
			if t.HasZombie() {
				spawn := EnemySpawn{At: p}
				if b.kinds != nil {
					spawn.Kind = b.kinds.PickKind(b.rng)
				}
				b.layout.Enemies = append(b.layout.Enemies, spawn)
			}
		}
	}
}

// roundInt rounds half to even.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}
